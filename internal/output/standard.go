package output

import (
	"fmt"
	"io"

	"github.com/pranshuparmar/procargs/pkg/model"
)

func formatLabel(label string) string {
	return fmt.Sprintf("%-10s", label+":")
}

// RenderStandard prints the full record for one process.
func RenderStandard(w io.Writer, r model.Result, colorEnabled bool) {
	line := func(label, value string, style func(string) string) {
		fmt.Fprintf(w, "%s %s\n", paint(labelStyle, formatLabel(label), colorEnabled), style(value))
	}
	plain := func(s string) string { return s }
	styled := func(s string) string { return paint(argStyle, s, colorEnabled) }
	unknown := func(string) string { return paint(unknownStyle, unknownText, colorEnabled) }

	line("PID", fmt.Sprintf("%d", r.PID), plain)
	if !r.Known() {
		line("Command", "", unknown)
		return
	}
	line("Image", r.ImagePath, func(s string) string { return paint(pathStyle, s, colorEnabled) })
	line("Command", r.CommandLine, plain)
	if r.Arguments == "" {
		line("Arguments", "(none)", plain)
	} else {
		line("Arguments", r.Arguments, styled)
	}
	if r.Matched != nil {
		verdict := "no"
		if *r.Matched {
			verdict = "yes"
		}
		line("Matched", verdict, plain)
	}
}
