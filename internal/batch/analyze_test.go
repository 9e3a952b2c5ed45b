package batch

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranshuparmar/procargs/pkg/model"
)

type stubSource struct {
	delay    time.Duration
	running  atomic.Int32
	maxSeen  atomic.Int32
	mu       sync.Mutex
	requests []int
}

func (s *stubSource) Result(pid int) model.Result {
	n := s.running.Add(1)
	defer s.running.Add(-1)
	for {
		m := s.maxSeen.Load()
		if n <= m || s.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	s.mu.Lock()
	s.requests = append(s.requests, pid)
	s.mu.Unlock()

	time.Sleep(s.delay)
	if pid%2 == 0 {
		return model.Result{PID: pid}
	}
	return model.Result{PID: pid, CommandLine: fmt.Sprintf("app.exe --id %d", pid), Arguments: fmt.Sprintf("--id %d", pid)}
}

func TestExtractAsyncStreamsEveryPID(t *testing.T) {
	src := &stubSource{}
	pids := []int{1, 2, 3, 4, 5}

	seen := map[int]bool{}
	for r := range ExtractAsync(src, pids, 2) {
		seen[r.PID] = true
	}
	assert.Len(t, seen, len(pids))
	for _, pid := range pids {
		assert.True(t, seen[pid], "missing pid %d", pid)
	}
}

func TestExtractAsyncBoundsConcurrency(t *testing.T) {
	src := &stubSource{delay: 10 * time.Millisecond}
	pids := make([]int, 20)
	for i := range pids {
		pids[i] = i + 1
	}

	for range ExtractAsync(src, pids, 3) {
	}
	assert.LessOrEqual(t, src.maxSeen.Load(), int32(3))
	assert.Len(t, src.requests, 20)
}

func TestExtractAsyncZeroConcurrency(t *testing.T) {
	src := &stubSource{}
	var got int
	for range ExtractAsync(src, []int{7, 9}, 0) {
		got++
	}
	assert.Equal(t, 2, got)
	assert.Equal(t, int32(1), src.maxSeen.Load())
}

func TestCollectKeepsInputOrder(t *testing.T) {
	src := &stubSource{delay: time.Millisecond}
	pids := []int{9, 3, 4, 1, 8}

	summary := Collect(src, pids, 4)
	require.Equal(t, len(pids), summary.Total)
	for i, pid := range pids {
		assert.Equal(t, pid, summary.Results[i].PID)
	}
	assert.Equal(t, 2, summary.Unknown)
	assert.Equal(t, "--id 9", summary.Results[0].Arguments)
}

func TestCollectEmpty(t *testing.T) {
	summary := Collect(&stubSource{}, nil, 4)
	assert.Equal(t, 0, summary.Total)
	assert.Empty(t, summary.Results)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is far too long", 10, "this is..."},
		{"données longues", 8, "donné..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.max))
	}
}

func TestShortenPathEmpty(t *testing.T) {
	assert.Equal(t, "-", ShortenPath(""))
}

func TestShortenPathHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	assert.Equal(t, "~/bin/tool", ShortenPath(home+"/bin/tool"))
	assert.Equal(t, "/usr/bin/tool", ShortenPath("/usr/bin/tool"))
}
