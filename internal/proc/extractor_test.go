package proc

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranshuparmar/procargs/pkg/model"
)

type fakeSource struct {
	mu     sync.Mutex
	params map[int]model.Parameters
	errs   map[int]error
	closed int
}

func (s *fakeSource) parameters(pid int) (model.Parameters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.errs[pid]; ok {
		return model.Parameters{}, err
	}
	p, ok := s.params[pid]
	if !ok {
		return model.Parameters{}, &StageError{Stage: StageOpen, Err: errors.New("no such process")}
	}
	return p, nil
}

func (s *fakeSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

func newTestExtractor(t *testing.T, opts Options) (*Extractor, *fakeSource, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	opts.Logger = logrus.NewEntry(logger)

	src := &fakeSource{
		params: map[int]model.Parameters{
			100: {CommandLine: `"C:\Program Files\app.exe" --port 80`, ImagePathName: `C:\Program Files\app.exe`},
			200: {CommandLine: `C:\tool.exe`, ImagePathName: `C:\tool.exe`},
			300: {CommandLine: `short.exe -x`, ImagePathName: `C:\Windows\System32\short.exe`},
		},
		errs: map[int]error{
			400: &StageError{Stage: StageCommandLine, Err: ErrReadSize},
		},
	}
	return newExtractor(src, opts), src, hook
}

func TestExtractorParameters(t *testing.T) {
	e, _, _ := newTestExtractor(t, Options{})

	p := e.Parameters(100)
	assert.Equal(t, `"C:\Program Files\app.exe" --port 80`, p.CommandLine)
	assert.Equal(t, `C:\Program Files\app.exe`, p.ImagePathName)

	assert.Equal(t, `"C:\Program Files\app.exe" --port 80`, e.CommandLine(100))
	assert.Equal(t, "--port 80", e.Arguments(100))
	assert.Equal(t, "", e.Arguments(200))
}

func TestExtractorFailureIsEmptyAndLogged(t *testing.T) {
	e, _, hook := newTestExtractor(t, Options{})

	assert.True(t, e.Parameters(400).Empty())
	assert.Equal(t, "", e.CommandLine(400))
	assert.Equal(t, "", e.Arguments(400))

	require.NotEmpty(t, hook.AllEntries())
	last := hook.LastEntry()
	assert.Equal(t, logrus.DebugLevel, last.Level)
	assert.Equal(t, 400, last.Data["pid"])
	assert.Equal(t, "command line", last.Data["stage"])
}

func TestExtractorTrustsImagePathByDefault(t *testing.T) {
	e, _, _ := newTestExtractor(t, Options{})

	// The image path is longer than the whole command line.
	assert.Equal(t, "", e.Arguments(300))
}

func TestExtractorVerifyPathToken(t *testing.T) {
	e, _, hook := newTestExtractor(t, Options{VerifyPathToken: true})

	assert.Equal(t, "-x", e.Arguments(300))
	assert.Equal(t, "--port 80", e.Arguments(100))

	var mismatches int
	for _, entry := range hook.AllEntries() {
		if entry.Message == "command line does not start with image path" {
			mismatches++
			assert.Equal(t, "short.exe", entry.Data["token"])
		}
	}
	assert.Equal(t, 1, mismatches)
}

func TestExtractorResult(t *testing.T) {
	e, _, _ := newTestExtractor(t, Options{})

	r := e.Result(100)
	assert.Equal(t, 100, r.PID)
	assert.True(t, r.Known())
	assert.Equal(t, `C:\Program Files\app.exe`, r.ImagePath)
	assert.Equal(t, "--port 80", r.Arguments)
	if !reflect.DeepEqual(r.Argv, []string{`C:\Program Files\app.exe`, "--port", "80"}) {
		t.Errorf("Argv = %q", r.Argv)
	}

	unknown := e.Result(999)
	assert.Equal(t, 999, unknown.PID)
	assert.False(t, unknown.Known())
	assert.Empty(t, unknown.Arguments)
}

func TestExtractorClose(t *testing.T) {
	e, src, hook := newTestExtractor(t, Options{})

	require.NoError(t, e.Close())
	require.NoError(t, e.Close())
	assert.Equal(t, 1, src.closed)

	assert.Equal(t, "", e.CommandLine(100))
	assert.ErrorIs(t, hook.LastEntry().Data[logrus.ErrorKey].(error), ErrClosed)
}

func TestExtractorConcurrentLookups(t *testing.T) {
	e, _, _ := newTestExtractor(t, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pid := []int{100, 200, 300, 400}[i%4]
			_ = e.Arguments(pid)
		}(i)
	}
	wg.Wait()
}

func TestOptionsDefaults(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, DefaultMaxStringBytes},
		{-5, DefaultMaxStringBytes},
		{1 << 20, DefaultMaxStringBytes},
		{512, 512},
	}
	for _, tt := range tests {
		got := Options{MaxStringBytes: tt.in}.withDefaults()
		if got.MaxStringBytes != tt.want {
			t.Errorf("withDefaults(%d).MaxStringBytes = %d, want %d", tt.in, got.MaxStringBytes, tt.want)
		}
		if got.Logger == nil {
			t.Error("withDefaults did not set a logger")
		}
	}
}
