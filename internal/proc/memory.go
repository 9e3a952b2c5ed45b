package proc

import (
	"errors"
	"fmt"
	"math"
)

// MaxReadSize bounds a single remote copy.
const MaxReadSize = 1 << 16

var (
	ErrNullAddress = errors.New("null remote address")
	ErrReadSize    = errors.New("remote read size out of range")
	ErrPartialRead = errors.New("partial remote read")
	ErrInvalidPID  = errors.New("invalid pid")
)

// checkPID rejects pids the OS process APIs would truncate or misread.
func checkPID(pid int) error {
	if pid <= 0 || pid > math.MaxInt32 {
		return fmt.Errorf("%w %d", ErrInvalidPID, pid)
	}
	return nil
}

func checkRead(addr uint64, size, limit int) error {
	if addr == 0 {
		return ErrNullAddress
	}
	if size <= 0 || size > limit {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrReadSize, size, limit)
	}
	return nil
}
