package batch

import (
	"time"

	"github.com/pranshuparmar/procargs/pkg/model"
)

// Source produces the record for one PID. *proc.Extractor satisfies it.
type Source interface {
	Result(pid int) model.Result
}

// Summary holds the complete batch operation result
type Summary struct {
	Results []model.Result
	Total   int
	Unknown int // PIDs whose command line could not be read
	Elapsed time.Duration
}
