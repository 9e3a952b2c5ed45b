//go:build !windows

package proc

import (
	"errors"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/pranshuparmar/procargs/internal/cmdline"
	"github.com/pranshuparmar/procargs/pkg/model"
)

// ErrNoCommandLine is returned for processes with an empty argv, such as
// kernel threads.
var ErrNoCommandLine = errors.New("empty argv")

// argvSource reads argv from the OS process table. There is no pointer
// chain to walk; the command line is rebuilt with Windows quoting and
// starts with argv[0], which is kept as Parameters.Program whenever it
// differs from the resolved executable.
type argvSource struct{}

func newSource(Options) (parameterSource, error) {
	if err := prepareDebugPrivilege(); err != nil {
		return nil, err
	}
	return argvSource{}, nil
}

func (argvSource) parameters(pid int) (model.Parameters, error) {
	if err := checkPID(pid); err != nil {
		return model.Parameters{}, &StageError{Stage: StageOpen, Err: err}
	}

	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return model.Parameters{}, &StageError{Stage: StageOpen, Err: err}
	}
	argv, err := p.CmdlineSlice()
	if err != nil {
		return model.Parameters{}, &StageError{Stage: StageCommandLine, Err: err}
	}
	if len(argv) == 0 {
		return model.Parameters{}, &StageError{Stage: StageCommandLine, Err: ErrNoCommandLine}
	}

	// Exe needs more access than argv; fall back to argv[0] without it.
	exe, err := p.Exe()
	if err != nil || exe == "" {
		exe = argv[0]
	}
	return argvParameters(argv, exe), nil
}

func argvParameters(argv []string, exe string) model.Parameters {
	params := model.Parameters{
		CommandLine:   cmdline.Join(argv),
		ImagePathName: exe,
	}
	if prog := cmdline.Program(argv[0]); prog != exe {
		params.Program = prog
	}
	return params
}

func (argvSource) Close() error {
	return nil
}
