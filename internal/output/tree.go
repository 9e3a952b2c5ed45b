package output

import (
	"fmt"
	"io"

	"github.com/pranshuparmar/procargs/pkg/model"
)

// PrintTree shows the program path with its split arguments beneath it.
func PrintTree(w io.Writer, r model.Result, colorEnabled bool) {
	pid := paint(pidStyle, fmt.Sprintf("pid %d", r.PID), colorEnabled)
	if len(r.Argv) == 0 {
		fmt.Fprintf(w, "%s (%s)\n", paint(unknownStyle, unknownText, colorEnabled), pid)
		return
	}
	fmt.Fprintf(w, "%s (%s)\n", paint(pathStyle, r.Argv[0], colorEnabled), pid)
	for i, arg := range r.Argv[1:] {
		branch := "├─ "
		if i == len(r.Argv)-2 {
			branch = "└─ "
		}
		fmt.Fprintf(w, "  %s%s\n", paint(branchStyle, branch, colorEnabled), quoteIfBlank(arg))
	}
}

func quoteIfBlank(s string) string {
	if s == "" {
		return `""`
	}
	return s
}
