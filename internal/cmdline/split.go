package cmdline

import "strings"

// Split tokenizes commandLine the way the Microsoft C runtime builds argv.
//
// argv[0] follows the program-name rule (see PathToken). For the remaining
// arguments:
//   - 2n backslashes followed by a quote produce n backslashes and the quote
//     toggles quoted mode
//   - 2n+1 backslashes followed by a quote produce n backslashes and a
//     literal quote
//   - backslashes not followed by a quote are literal
//   - "" inside a quoted run produces a literal quote
func Split(commandLine string) []string {
	if commandLine == "" {
		return nil
	}

	argv := []string{PathToken(commandLine)}

	i := len(argv[0])
	if commandLine[0] == quote {
		i += 2
	}
	if i > len(commandLine) {
		return argv
	}
	s := commandLine[i:]

	var (
		b        strings.Builder
		inQuotes bool
		inToken  bool
	)
	for j := 0; j < len(s); j++ {
		c := s[j]
		switch {
		case (c == ' ' || c == '\t') && !inQuotes:
			if inToken {
				argv = append(argv, b.String())
				b.Reset()
				inToken = false
			}
		case c == '\\':
			n := 0
			for j < len(s) && s[j] == '\\' {
				n++
				j++
			}
			inToken = true
			if j < len(s) && s[j] == quote {
				b.WriteString(strings.Repeat(`\`, n/2))
				if n%2 == 1 {
					b.WriteByte(quote)
				} else {
					inQuotes = !inQuotes
				}
			} else {
				b.WriteString(strings.Repeat(`\`, n))
				j--
			}
		case c == quote:
			inToken = true
			if inQuotes && j+1 < len(s) && s[j+1] == quote {
				b.WriteByte(quote)
				j++
				continue
			}
			inQuotes = !inQuotes
		default:
			inToken = true
			b.WriteByte(c)
		}
	}
	if inToken {
		argv = append(argv, b.String())
	}
	return argv
}

// Program returns argv0 as Join writes it: without quote characters,
// which the program-name rule cannot carry.
func Program(argv0 string) string {
	return strings.ReplaceAll(argv0, `"`, "")
}

// Join builds a command line that Split turns back into argv. argv[0] is
// normalised by Program and wrapped in quotes when it is empty or has
// blanks, so the command line always starts with Program(argv[0]).
func Join(argv []string) string {
	if len(argv) == 0 {
		return ""
	}
	parts := make([]string, 0, len(argv))
	prog := Program(argv[0])
	if prog == "" || strings.ContainsAny(prog, " \t") {
		prog = `"` + prog + `"`
	}
	parts = append(parts, prog)
	for _, a := range argv[1:] {
		parts = append(parts, escape(a))
	}
	return strings.Join(parts, " ")
}

func escape(s string) string {
	if s == "" {
		return `""`
	}
	if !strings.ContainsAny(s, " \t\"") {
		return s
	}

	wrap := strings.ContainsAny(s, " \t")
	var b strings.Builder
	if wrap {
		b.WriteByte(quote)
	}
	slashes := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			slashes++
		case quote:
			// double the run already written, then escape the quote
			b.WriteString(strings.Repeat(`\`, slashes+1))
			slashes = 0
		default:
			slashes = 0
		}
		b.WriteByte(c)
	}
	if wrap {
		b.WriteString(strings.Repeat(`\`, slashes))
		b.WriteByte(quote)
	}
	return b.String()
}
