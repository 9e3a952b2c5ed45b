//go:build windows

package proc

import "github.com/pranshuparmar/procargs/pkg/model"

// pebSource reads parameters by walking the target's PEB.
type pebSource struct {
	query     *ntQuery
	layout    Layout
	maxString int
}

func newSource(opts Options) (parameterSource, error) {
	query, err := loadNtQuery()
	if err != nil {
		return nil, err
	}
	if err := prepareDebugPrivilege(); err != nil {
		query.release()
		return nil, err
	}
	return &pebSource{query: query, layout: NativeLayout(), maxString: opts.MaxStringBytes}, nil
}

func (s *pebSource) parameters(pid int) (model.Parameters, error) {
	if err := checkPID(pid); err != nil {
		return model.Parameters{}, &StageError{Stage: StageOpen, Err: err}
	}

	h := openReadonly(pid)
	defer h.Close()

	if h.err != nil {
		return model.Parameters{}, &StageError{Stage: StageOpen, Err: h.err}
	}
	addr, err := s.query.pebAddress(h)
	if err != nil {
		return model.Parameters{}, &StageError{Stage: StageLocate, Err: err}
	}
	return ReadParameters(h, addr, s.layout, s.maxString)
}

func (s *pebSource) Close() error {
	return s.query.release()
}
