package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	defaultTermWidth = 100
	columnGap        = 2
	minLastColumn    = 20
)

// Table renders aligned columnar output. The last column is truncated to the
// terminal width so descriptions don't wrap mid-cell.
type Table struct {
	headers []string
	rows    [][]string
	width   int
}

// NewTable creates a table with the given header row.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, width: terminalWidth()}
}

// AddRow appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
	}
	t.rows = append(t.rows, row)
}

// Render writes the table to w.
func (t *Table) Render(w io.Writer) {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(t.headers)-1 && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	// Budget for the final column: whatever the terminal has left.
	used := 0
	for i := 0; i < len(widths)-1; i++ {
		used += widths[i] + columnGap
	}
	last := t.width - used
	if last < minLastColumn {
		last = minLastColumn
	}
	widths[len(widths)-1] = last

	headerCells := make([]string, len(t.headers))
	for i, h := range t.headers {
		headerCells[i] = Header(pad(h, widths[i]))
	}
	fmt.Fprintln(w, strings.Join(headerCells, strings.Repeat(" ", columnGap)))

	for _, row := range t.rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cell = truncate(cell, widths[i])
			}
			cells[i] = pad(cell, widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, strings.Repeat(" ", columnGap)), " "))
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultTermWidth
}
