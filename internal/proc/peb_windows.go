//go:build windows

package proc

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

const processBasicInformationClass = 0

type processBasicInformation struct {
	ExitStatus                   uintptr
	PebBaseAddress               uintptr
	AffinityMask                 uintptr
	BasePriority                 uintptr
	UniqueProcessId              uintptr
	InheritedFromUniqueProcessId uintptr
}

// ntQuery owns ntdll.dll and the resolved NtQueryInformationProcess for the
// lifetime of an Extractor. Calls are serialised.
type ntQuery struct {
	mu   sync.Mutex
	dll  *windows.DLL
	proc *windows.Proc
}

func loadNtQuery() (*ntQuery, error) {
	dll, err := windows.LoadDLL("ntdll.dll")
	if err != nil {
		return nil, fmt.Errorf("load ntdll.dll: %w", err)
	}
	proc, err := dll.FindProc("NtQueryInformationProcess")
	if err != nil {
		dll.Release()
		return nil, fmt.Errorf("resolve NtQueryInformationProcess: %w", err)
	}
	return &ntQuery{dll: dll, proc: proc}, nil
}

// pebAddress asks the kernel where the target's PEB lives.
func (q *ntQuery) pebAddress(p *processHandle) (uint64, error) {
	if p.err != nil {
		return 0, p.err
	}

	var pbi processBasicInformation
	var returnLength uint32

	q.mu.Lock()
	status, _, _ := q.proc.Call(
		uintptr(p.handle),
		processBasicInformationClass,
		uintptr(unsafe.Pointer(&pbi)),
		unsafe.Sizeof(pbi),
		uintptr(unsafe.Pointer(&returnLength)),
	)
	q.mu.Unlock()

	// NT_SUCCESS: severity bits clear
	if int32(status) < 0 {
		return 0, fmt.Errorf("%w: NtQueryInformationProcess status %#x", ErrNoControlBlock, uint32(status))
	}
	if pbi.PebBaseAddress == 0 {
		return 0, ErrNoControlBlock
	}
	return uint64(pbi.PebBaseAddress), nil
}

func (q *ntQuery) release() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.dll == nil {
		return nil
	}
	err := q.dll.Release()
	q.dll, q.proc = nil, nil
	return err
}
