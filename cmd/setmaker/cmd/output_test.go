package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withPlainOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	setOutputWriter(&buf)
	enabled := color.Enable
	color.Enable = false
	t.Cleanup(func() {
		resetOutputWriter()
		color.Enable = enabled
	})
	return &buf
}

func TestPrintHeader(t *testing.T) {
	buf := withPlainOutput(t)

	printHeader("Test Header %d", 1)

	output := buf.String()
	assert.Contains(t, output, "Test Header 1")
	assert.Contains(t, output, strings.Repeat("=", len("Test Header 1")+4))
}

func TestPrintSection(t *testing.T) {
	buf := withPlainOutput(t)

	printSection("Test Section")

	output := buf.String()
	assert.Contains(t, output, "[Test Section]")
	assert.Contains(t, output, strings.Repeat("-", len("Test Section")+2))
}

func TestPrintField(t *testing.T) {
	buf := withPlainOutput(t)

	printField("Rows", 12)
	printField("Validation pool", 3)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Index(lines[0], "12"), strings.Index(lines[1], "3"))
}

func TestTableAlignment(t *testing.T) {
	buf := withPlainOutput(t)

	tbl := newTable("SET", "ROWS")
	tbl.add("set-1", "10")
	tbl.add("validation-set-12", "3")
	tbl.print()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	col := strings.Index(lines[0], "ROWS")
	assert.Equal(t, col, strings.Index(lines[1], "10"))
	assert.Equal(t, col, strings.Index(lines[2], "3"))
}

func TestTableStyle(t *testing.T) {
	buf := withPlainOutput(t)

	tbl := newTable("A", "B")
	tbl.add("x", "y")
	tbl.style = func(row, col int, cell string) string {
		if col == 1 {
			return "<" + cell + ">"
		}
		return cell
	}
	tbl.print()

	assert.Contains(t, buf.String(), "<y>")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := truncate(strings.Repeat("9,", 50), 20)
	assert.LessOrEqual(t, len(long), 20)
	assert.True(t, strings.HasSuffix(long, "..."))
}
