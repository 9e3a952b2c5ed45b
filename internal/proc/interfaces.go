package proc

import "github.com/pranshuparmar/procargs/pkg/model"

//go:generate mockgen -destination=mocks/mock_memory.go -package=mocks github.com/pranshuparmar/procargs/internal/proc MemoryReader

// MemoryReader copies a region of another process's address space.
// Implementations return exactly size bytes or an error.
type MemoryReader interface {
	ReadMemory(addr uint64, size int) ([]byte, error)
}

// parameterSource is the OS-specific half of an Extractor.
type parameterSource interface {
	parameters(pid int) (model.Parameters, error)
	Close() error
}
