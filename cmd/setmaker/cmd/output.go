package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
)

// outputWriter is used for printing output, can be overridden in tests
var outputWriter io.Writer = os.Stdout

// setOutputWriter sets the output writer (used for testing)
func setOutputWriter(w io.Writer) {
	outputWriter = w
}

// resetOutputWriter resets output to stdout (used for testing)
func resetOutputWriter() {
	outputWriter = os.Stdout
}

// printHeader prints a formatted header
func printHeader(format string, args ...interface{}) {
	title := fmt.Sprintf(format, args...)
	width := runewidth.StringWidth(title) + 4
	fmt.Fprintln(outputWriter, strings.Repeat("=", width))
	fmt.Fprintf(outputWriter, "  %s\n", color.Bold.Sprint(title))
	fmt.Fprintln(outputWriter, strings.Repeat("=", width))
}

// printSection prints a section header
func printSection(title string) {
	fmt.Fprintf(outputWriter, "[%s]\n", title)
	fmt.Fprintln(outputWriter, strings.Repeat("-", runewidth.StringWidth(title)+2))
}

// printField prints an aligned "label: value" line
func printField(label string, value interface{}) {
	fmt.Fprintf(outputWriter, "  %s %v\n", runewidth.FillRight(label+":", 16), value)
}

// table collects rows and prints them with aligned columns. Cells are padded
// on their plain text; style is applied after padding so escape codes do not
// skew the widths.
type table struct {
	headers []string
	rows    [][]string
	style   func(row, col int, cell string) string
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) print() {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && runewidth.StringWidth(cell) > widths[i] {
				widths[i] = runewidth.StringWidth(cell)
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(" ")
	for i, h := range t.headers {
		sb.WriteString(" ")
		sb.WriteString(color.Bold.Sprint(runewidth.FillRight(h, widths[i])))
	}
	fmt.Fprintln(outputWriter, strings.TrimRight(sb.String(), " "))

	for r, row := range t.rows {
		sb.Reset()
		sb.WriteString(" ")
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			padded := runewidth.FillRight(cell, widths[i])
			if t.style != nil {
				padded = t.style(r, i, padded)
			}
			sb.WriteString(" ")
			sb.WriteString(padded)
		}
		fmt.Fprintln(outputWriter, strings.TrimRight(sb.String(), " "))
	}
}

// truncate shortens s to at most width display cells.
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}
