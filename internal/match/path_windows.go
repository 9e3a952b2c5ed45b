package match

import "strings"

// EqualFilePath compares paths the way the file system does: ignoring case.
func EqualFilePath(got, want string) bool {
	return got != "" && strings.EqualFold(got, want)
}
