// Package match decides whether a running process is the same launch as a
// wanted program path and argument string.
package match

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pranshuparmar/procargs/pkg/model"
)

var ErrNoMatch = errors.New("process does not match")

// Reader is the part of *proc.Extractor a Matcher needs.
type Reader interface {
	Parameters(pid int) model.Parameters
	ArgumentsOf(p model.Parameters) string
}

type Matcher struct {
	r   Reader
	log *logrus.Entry
}

func NewMatcher(r Reader, log *logrus.Entry) *Matcher {
	if log == nil {
		log = logrus.WithField("component", "match")
	}
	return &Matcher{r: r, log: log}
}

// Match reports whether pid was started from filePath with args. Blank args
// match any arguments. An unreadable process never matches.
func (m *Matcher) Match(pid int, filePath, args string) bool {
	return m.matches(pid, m.r.Parameters(pid), filePath, args)
}

// Result is Match expressed on the full record of pid.
func (m *Matcher) Result(pid int, filePath, args string) model.Result {
	p := m.r.Parameters(pid)
	matched := m.matches(pid, p, filePath, args)
	return model.Result{
		PID:         pid,
		CommandLine: p.CommandLine,
		ImagePath:   p.ImagePathName,
		Arguments:   m.r.ArgumentsOf(p),
		Matched:     &matched,
	}
}

func (m *Matcher) matches(pid int, p model.Parameters, filePath, args string) bool {
	log := m.log.WithField("pid", pid)
	if p.CommandLine == "" {
		log.Debug("command line unknown, no match")
		return false
	}
	if !EqualFilePath(p.ImagePathName, filePath) {
		log.WithField("image_path", p.ImagePathName).Debug("image path differs")
		return false
	}
	if strings.TrimSpace(args) == "" {
		return true
	}
	got := m.r.ArgumentsOf(p)
	if !EqualArguments(got, args) {
		log.WithField("arguments", got).Debug("arguments differ")
		return false
	}
	return true
}

// EqualArguments compares argument strings ignoring case.
func EqualArguments(got, want string) bool {
	return strings.EqualFold(got, want)
}
