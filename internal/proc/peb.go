package proc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf16"
	"unsafe"

	"github.com/pranshuparmar/procargs/pkg/model"
)

// ErrNoControlBlock means the target's PEB address could not be obtained.
var ErrNoControlBlock = errors.New("process environment block unavailable")

// Stage names the step of the pointer walk that failed.
type Stage string

const (
	StageOpen        Stage = "open"
	StageLocate      Stage = "locate"
	StagePEB         Stage = "peb"
	StageParameters  Stage = "parameters"
	StageCommandLine Stage = "command line"
	StageImagePath   Stage = "image path"
)

// StageError wraps a failure with the stage it happened in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Layout holds the offsets of the fields read from the PEB and
// RTL_USER_PROCESS_PARAMETERS for one pointer width.
type Layout struct {
	PointerSize             int
	ProcessParametersOffset int // PEB.ProcessParameters
	ImagePathNameOffset     int // RTL_USER_PROCESS_PARAMETERS.ImagePathName
	CommandLineOffset       int // RTL_USER_PROCESS_PARAMETERS.CommandLine
}

var (
	Layout64 = Layout{PointerSize: 8, ProcessParametersOffset: 0x20, ImagePathNameOffset: 0x60, CommandLineOffset: 0x70}
	Layout32 = Layout{PointerSize: 4, ProcessParametersOffset: 0x10, ImagePathNameOffset: 0x38, CommandLineOffset: 0x40}
)

// NativeLayout returns the layout matching this binary's pointer size.
func NativeLayout() Layout {
	if unsafe.Sizeof(uintptr(0)) == 4 {
		return Layout32
	}
	return Layout64
}

// UNICODE_STRING is Length, MaximumLength, then the buffer pointer at the
// next pointer-aligned offset.
func (l Layout) unicodeStringSize() int {
	return 2 * l.PointerSize
}

func (l Layout) pointer(b []byte) uint64 {
	if l.PointerSize == 4 {
		return uint64(binary.LittleEndian.Uint32(b))
	}
	return binary.LittleEndian.Uint64(b)
}

type unicodeString struct {
	Length        uint16
	MaximumLength uint16
	Buffer        uint64
}

func (l Layout) unicodeString(b []byte) unicodeString {
	return unicodeString{
		Length:        binary.LittleEndian.Uint16(b[0:]),
		MaximumLength: binary.LittleEndian.Uint16(b[2:]),
		Buffer:        l.pointer(b[l.PointerSize:]),
	}
}

// ReadParameters follows pebAddr to the process parameters block and copies
// out the command line and image path. Nothing read from the target is
// trusted: every pointer is checked and every string length is bounded by
// maxString. Either both strings are returned or neither.
func ReadParameters(r MemoryReader, pebAddr uint64, l Layout, maxString int) (model.Parameters, error) {
	if pebAddr == 0 {
		return model.Parameters{}, &StageError{Stage: StageLocate, Err: ErrNoControlBlock}
	}

	peb, err := readExact(r, pebAddr, l.ProcessParametersOffset+l.PointerSize)
	if err != nil {
		return model.Parameters{}, &StageError{Stage: StagePEB, Err: err}
	}
	paramsAddr := l.pointer(peb[l.ProcessParametersOffset:])
	if paramsAddr == 0 {
		return model.Parameters{}, &StageError{Stage: StagePEB, Err: ErrNullAddress}
	}

	params, err := readExact(r, paramsAddr, l.CommandLineOffset+l.unicodeStringSize())
	if err != nil {
		return model.Parameters{}, &StageError{Stage: StageParameters, Err: err}
	}
	cmdDesc := l.unicodeString(params[l.CommandLineOffset:])
	imageDesc := l.unicodeString(params[l.ImagePathNameOffset:])

	commandLine, err := readString(r, cmdDesc, maxString)
	if err != nil {
		return model.Parameters{}, &StageError{Stage: StageCommandLine, Err: err}
	}
	imagePath, err := readString(r, imageDesc, maxString)
	if err != nil {
		return model.Parameters{}, &StageError{Stage: StageImagePath, Err: err}
	}

	return model.Parameters{CommandLine: commandLine, ImagePathName: imagePath}, nil
}

// readString copies MaximumLength bytes of the descriptor's buffer and
// decodes them up to the first NUL.
func readString(r MemoryReader, us unicodeString, maxString int) (string, error) {
	size := int(us.MaximumLength)
	if size == 0 {
		return "", nil
	}
	if size > maxString {
		return "", fmt.Errorf("%w: descriptor claims %d bytes (limit %d)", ErrReadSize, size, maxString)
	}
	if us.Buffer == 0 {
		return "", ErrNullAddress
	}
	b, err := readExact(r, us.Buffer, size)
	if err != nil {
		return "", err
	}
	return decodeUTF16(b), nil
}

func readExact(r MemoryReader, addr uint64, size int) ([]byte, error) {
	b, err := r.ReadMemory(addr, size)
	if err != nil {
		return nil, err
	}
	if len(b) != size {
		return nil, fmt.Errorf("%w: %d of %d bytes at %#x", ErrPartialRead, len(b), size, addr)
	}
	return b, nil
}

func decodeUTF16(b []byte) string {
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		u := binary.LittleEndian.Uint16(b[i:])
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return string(utf16.Decode(units))
}
