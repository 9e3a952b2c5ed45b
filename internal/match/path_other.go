//go:build !windows

package match

// EqualFilePath compares paths exactly; the file system is case sensitive.
func EqualFilePath(got, want string) bool {
	return got != "" && got == want
}
