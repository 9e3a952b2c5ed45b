//go:build windows

package proc

import (
	"fmt"

	"golang.org/x/sys/windows"
)

const processReadAccess = windows.PROCESS_QUERY_INFORMATION | windows.PROCESS_VM_READ

// processHandle is a read-only handle to another process. A failed open is
// kept in err and returned from every use.
type processHandle struct {
	pid    int
	handle windows.Handle
	err    error
}

func openReadonly(pid int) *processHandle {
	h, err := windows.OpenProcess(processReadAccess, false, uint32(pid))
	if err != nil {
		return &processHandle{pid: pid, err: fmt.Errorf("open process %d: %w", pid, err)}
	}
	return &processHandle{pid: pid, handle: h}
}

func (p *processHandle) ReadMemory(addr uint64, size int) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	if err := checkRead(addr, size, MaxReadSize); err != nil {
		return nil, err
	}

	buf := make([]byte, size)
	var read uintptr
	err := windows.ReadProcessMemory(p.handle, uintptr(addr), &buf[0], uintptr(size), &read)
	if err != nil {
		return nil, fmt.Errorf("read %d bytes at %#x: %w", size, addr, err)
	}
	if int(read) != size {
		return nil, fmt.Errorf("%w: %d of %d bytes at %#x", ErrPartialRead, read, size, addr)
	}
	return buf, nil
}

func (p *processHandle) Close() error {
	if p.handle == 0 {
		return nil
	}
	err := windows.CloseHandle(p.handle)
	p.handle = 0
	return err
}
