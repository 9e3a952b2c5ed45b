//go:build !windows

package proc

// prepareDebugPrivilege is a no-op: argv is read through the OS process
// table, which needs no extra privilege beyond normal permission checks.
func prepareDebugPrivilege() error {
	return nil
}
