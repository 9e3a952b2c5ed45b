package proc

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/pranshuparmar/procargs/internal/cmdline"
	"github.com/pranshuparmar/procargs/pkg/model"
)

// DefaultMaxStringBytes is the largest UNICODE_STRING buffer copied from a
// target: a full 32767-character command line.
const DefaultMaxStringBytes = 0xFFFE

var ErrClosed = errors.New("extractor closed")

// Options configures an Extractor.
type Options struct {
	// MaxStringBytes bounds each string buffer read from a target.
	// Larger descriptors are treated as unreadable.
	MaxStringBytes int

	// VerifyPathToken checks that the command line's leading token names
	// the image path before splitting off the arguments. When it does not,
	// the token's own length is used instead.
	VerifyPathToken bool

	Logger *logrus.Entry
}

func (o Options) withDefaults() Options {
	if o.MaxStringBytes <= 0 || o.MaxStringBytes > DefaultMaxStringBytes+1 {
		o.MaxStringBytes = DefaultMaxStringBytes
	}
	if o.Logger == nil {
		o.Logger = logrus.WithField("component", "proc")
	}
	return o
}

// Extractor reads the command line of other processes. Every lookup is
// best effort: failures are logged at debug level and reported as empty
// text, which callers must read as "unknown".
type Extractor struct {
	mu   sync.RWMutex
	src  parameterSource
	opts Options
	log  *logrus.Entry
}

// NewExtractor prepares the current process for reading other processes.
// It fails when the debug privilege cannot be enabled or the OS query
// routine cannot be resolved; the returned error wraps the OS error code.
func NewExtractor(opts Options) (*Extractor, error) {
	opts = opts.withDefaults()
	src, err := newSource(opts)
	if err != nil {
		return nil, fmt.Errorf("initialize extractor: %w", err)
	}
	return newExtractor(src, opts), nil
}

func newExtractor(src parameterSource, opts Options) *Extractor {
	opts = opts.withDefaults()
	return &Extractor{src: src, opts: opts, log: opts.Logger}
}

// Parameters returns the raw command line and image path of pid, or empty
// Parameters if either could not be read.
func (e *Extractor) Parameters(pid int) model.Parameters {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.src == nil {
		e.logFailure(pid, ErrClosed)
		return model.Parameters{}
	}
	p, err := e.src.parameters(pid)
	if err != nil {
		e.logFailure(pid, err)
		return model.Parameters{}
	}
	return p
}

// CommandLine returns the full command line of pid, or "".
func (e *Extractor) CommandLine(pid int) string {
	return e.Parameters(pid).CommandLine
}

// Arguments returns the command line of pid without its program path, or "".
func (e *Extractor) Arguments(pid int) string {
	return e.ArgumentsOf(e.Parameters(pid))
}

// ArgumentsOf splits the program path off already extracted parameters.
func (e *Extractor) ArgumentsOf(p model.Parameters) string {
	if p.CommandLine == "" {
		return ""
	}
	expected := p.PathToken()
	if e.opts.VerifyPathToken && !cmdline.Verify(p.CommandLine, expected) {
		token := cmdline.PathToken(p.CommandLine)
		e.log.WithFields(logrus.Fields{
			"image_path": expected,
			"token":      token,
		}).Debug("command line does not start with image path")
		return cmdline.ArgumentsOf(p.CommandLine, token)
	}
	return cmdline.ArgumentsOf(p.CommandLine, expected)
}

// Result gathers everything known about pid into one record.
func (e *Extractor) Result(pid int) model.Result {
	p := e.Parameters(pid)
	return model.Result{
		PID:         pid,
		CommandLine: p.CommandLine,
		ImagePath:   p.ImagePathName,
		Arguments:   e.ArgumentsOf(p),
		Argv:        cmdline.Split(p.CommandLine),
	}
}

// Close releases the OS query routine. Later lookups return empty text.
func (e *Extractor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.src == nil {
		return nil
	}
	err := e.src.Close()
	e.src = nil
	return err
}

func (e *Extractor) logFailure(pid int, err error) {
	entry := e.log.WithField("pid", pid).WithError(err)
	var se *StageError
	if errors.As(err, &se) {
		entry = entry.WithField("stage", string(se.Stage))
	}
	entry.Debug("process parameters unavailable")
}
