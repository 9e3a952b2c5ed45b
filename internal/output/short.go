package output

import (
	"fmt"
	"io"

	"github.com/pranshuparmar/procargs/pkg/model"
)

// RenderShort prints one line per process: the pid, then its arguments.
func RenderShort(w io.Writer, r model.Result, colorEnabled bool) {
	pid := paint(pidStyle, fmt.Sprintf("pid %d", r.PID), colorEnabled)
	if !r.Known() {
		fmt.Fprintf(w, "%s → %s\n", pid, paint(unknownStyle, unknownText, colorEnabled))
		return
	}
	fmt.Fprintf(w, "%s → %s\n", pid, paint(argStyle, r.Arguments, colorEnabled))
}

// RenderField prints a single field of r with no decoration, for scripts.
// Unknown values print as an empty line.
func RenderField(w io.Writer, r model.Result, field string) {
	switch field {
	case "cmdline":
		fmt.Fprintln(w, r.CommandLine)
	case "image":
		fmt.Fprintln(w, r.ImagePath)
	default:
		fmt.Fprintln(w, r.Arguments)
	}
}
