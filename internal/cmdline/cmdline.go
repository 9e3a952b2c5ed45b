// Package cmdline splits Windows-style command lines.
//
// Lengths are counted in UTF-16 code units because that is how the OS
// reports the length of a process's image path.
package cmdline

import (
	"strings"
	"unicode/utf16"
)

const quote = '"'

// Arguments returns the part of commandLine that follows the program path
// token, assuming the token is imagePathLen UTF-16 units long, optionally
// wrapped in a pair of quotes. Leading spaces of the result are dropped.
//
// The token itself is never compared to anything; see Verify.
func Arguments(commandLine string, imagePathLen int) string {
	if imagePathLen < 0 {
		imagePathLen = 0
	}
	units := utf16.Encode([]rune(commandLine))

	start := imagePathLen
	if len(units) > 0 && units[0] == quote {
		start += 2
	}
	length := len(units) - start
	if length <= 0 {
		return ""
	}
	for length > 0 && units[start] == ' ' {
		start++
		length--
	}
	return string(utf16.Decode(units[start : start+length]))
}

// ArgumentsOf is Arguments with the length taken from imagePath.
func ArgumentsOf(commandLine, imagePath string) string {
	return Arguments(commandLine, Len(imagePath))
}

// Len returns the length of s in UTF-16 code units.
func Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// PathToken returns the program path token of commandLine using the
// program-name rule: a leading quoted run up to the next quote, otherwise
// everything up to the first space or tab. No escape processing applies.
func PathToken(commandLine string) string {
	if commandLine == "" {
		return ""
	}
	if commandLine[0] == quote {
		rest := commandLine[1:]
		if i := strings.IndexByte(rest, quote); i >= 0 {
			return rest[:i]
		}
		return rest
	}
	if i := strings.IndexAny(commandLine, " \t"); i >= 0 {
		return commandLine[:i]
	}
	return commandLine
}

// Verify reports whether the program path token of commandLine names
// imagePath. Windows paths compare case-insensitively.
func Verify(commandLine, imagePath string) bool {
	return strings.EqualFold(PathToken(commandLine), imagePath)
}
