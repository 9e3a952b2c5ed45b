package output

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/pranshuparmar/procargs/internal/batch"
	"github.com/pranshuparmar/procargs/pkg/model"
)

// TableRenderer handles streaming table output
type TableRenderer struct {
	out          io.Writer
	writer       *tabwriter.Writer
	colorEnabled bool
	rowCount     int
	rows         []model.Result // Buffer for sorting
	sortBy       string
}

// NewTableRenderer creates a new streaming table renderer
func NewTableRenderer(w io.Writer, colorEnabled bool, sortBy string) *TableRenderer {
	return &TableRenderer{
		out:          w,
		writer:       tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
		colorEnabled: colorEnabled,
		sortBy:       sortBy,
		rows:         make([]model.Result, 0),
	}
}

// PrintHeader outputs the table header
func (t *TableRenderer) PrintHeader() {
	header := " PID\tIMAGE\tARGUMENTS"
	fmt.Fprintln(t.writer, paint(headerStyle, header, t.colorEnabled))

	// Separator line
	fmt.Fprintln(t.writer, " ───\t─────\t─────────")
	t.writer.Flush()
}

// AddRow buffers a row (for sorting) or prints immediately (no sorting)
func (t *TableRenderer) AddRow(r model.Result) {
	if t.sortBy != "" {
		t.rows = append(t.rows, r)
	} else {
		t.printRow(r)
	}
	t.rowCount++
}

func (t *TableRenderer) printRow(r model.Result) {
	image := batch.Truncate(batch.ShortenPath(r.ImagePath), 40)
	args := batch.Truncate(r.Arguments, 60)
	if !r.Known() {
		image = "-"
		args = paint(unknownStyle, unknownText, t.colorEnabled)
	} else if args == "" {
		args = "-"
	}

	fmt.Fprintf(t.writer, " %d\t%s\t%s\n", r.PID, image, args)
	t.writer.Flush()
}

// Flush sorts (if needed) and prints all buffered rows
func (t *TableRenderer) Flush() {
	if t.sortBy != "" && len(t.rows) > 0 {
		sort.SliceStable(t.rows, func(i, j int) bool {
			switch t.sortBy {
			case "pid":
				return t.rows[i].PID < t.rows[j].PID
			case "image":
				return t.rows[i].ImagePath < t.rows[j].ImagePath
			default:
				return false
			}
		})
		for _, row := range t.rows {
			t.printRow(row)
		}
	}
}

// Rows returns the buffered rows
func (t *TableRenderer) Rows() []model.Result {
	return t.rows
}

// PrintFooter outputs the summary line
func (t *TableRenderer) PrintFooter(total, unknown int, elapsed time.Duration) {
	fmt.Fprintln(t.out)
	fmt.Fprint(t.out, paint(argStyle, fmt.Sprintf("Read %d processes", total), t.colorEnabled))
	if unknown > 0 {
		fmt.Fprintf(t.out, " (%s)", paint(unknownStyle, fmt.Sprintf("%d unknown", unknown), t.colorEnabled))
	}
	fmt.Fprintf(t.out, " (%.1fs)\n", elapsed.Seconds())
}
