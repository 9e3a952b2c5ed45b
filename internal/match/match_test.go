package match

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranshuparmar/procargs/internal/cmdline"
	"github.com/pranshuparmar/procargs/pkg/model"
)

type stubReader map[int]model.Parameters

func (s stubReader) Parameters(pid int) model.Parameters { return s[pid] }

func (s stubReader) ArgumentsOf(p model.Parameters) string {
	return cmdline.ArgumentsOf(p.CommandLine, p.ImagePathName)
}

const editor = `/opt/editor/bin/editor`

func newTestMatcher() *Matcher {
	return NewMatcher(stubReader{
		10: {CommandLine: `"/opt/editor/bin/editor" --Project Alpha`, ImagePathName: editor},
		20: {CommandLine: `/opt/editor/bin/editor`, ImagePathName: editor},
		30: {CommandLine: `/usr/bin/other --project alpha`, ImagePathName: `/usr/bin/other`},
	}, nil)
}

func TestMatch(t *testing.T) {
	m := newTestMatcher()
	tests := []struct {
		name string
		pid  int
		path string
		args string
		want bool
	}{
		{"blank args match anything", 10, editor, "", true},
		{"whitespace args match anything", 10, editor, "   ", true},
		{"arguments ignore case", 10, editor, "--project alpha", true},
		{"different arguments", 10, editor, "--project beta", false},
		{"no arguments wanted none given", 20, editor, "", true},
		{"arguments wanted none given", 20, editor, "--project alpha", false},
		{"different program", 30, editor, "--project alpha", false},
		{"unknown process", 99, editor, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Match(tt.pid, tt.path, tt.args))
		})
	}
}

func TestMatchResult(t *testing.T) {
	m := newTestMatcher()

	r := m.Result(10, editor, "--PROJECT ALPHA")
	require.NotNil(t, r.Matched)
	assert.True(t, *r.Matched)
	assert.Equal(t, "--Project Alpha", r.Arguments)

	r = m.Result(99, editor, "")
	require.NotNil(t, r.Matched)
	assert.False(t, *r.Matched)
	assert.False(t, r.Known())
}

func TestEqualFilePath(t *testing.T) {
	assert.True(t, EqualFilePath(editor, editor))
	assert.False(t, EqualFilePath("", ""))
	assert.False(t, EqualFilePath(editor, "/opt/editor/bin/other"))

	upper := "/OPT/EDITOR/BIN/EDITOR"
	assert.Equal(t, runtime.GOOS == "windows", EqualFilePath(editor, upper))
}

func TestEqualArguments(t *testing.T) {
	assert.True(t, EqualArguments("", ""))
	assert.True(t, EqualArguments("/Role=Host", "/role=host"))
	assert.False(t, EqualArguments("-a", "-a "))
}
