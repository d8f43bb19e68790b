// Package synth writes synthetic original files whose cells name their own
// position, so generated sets can be checked by eye or by test.
package synth

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Cell returns the value Generate writes at row r, column c (both 1-based).
func Cell(r, c int) string {
	return strconv.Itoa(r) + "." + strconv.Itoa(c)
}

// Generate writes a header line "c1..cN" followed by rows data lines in which
// cell (r,c) holds "r.c".
func Generate(w io.Writer, rows, cols int, delim byte) error {
	if rows < 0 || cols < 1 {
		return fmt.Errorf("invalid synthetic file shape %dx%d", rows, cols)
	}

	bw := bufio.NewWriter(w)
	for c := 1; c <= cols; c++ {
		if c > 1 {
			bw.WriteByte(delim)
		}
		bw.WriteString("c" + strconv.Itoa(c))
	}
	bw.WriteByte('\n')

	var buf []byte
	for r := 1; r <= rows; r++ {
		buf = buf[:0]
		for c := 1; c <= cols; c++ {
			if c > 1 {
				buf = append(buf, delim)
			}
			buf = strconv.AppendInt(buf, int64(r), 10)
			buf = append(buf, '.')
			buf = strconv.AppendInt(buf, int64(c), 10)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// GenerateFile writes a synthetic file to path.
func GenerateFile(path string, rows, cols int, delim byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create synthetic file: %w", err)
	}
	if err := Generate(f, rows, cols, delim); err != nil {
		f.Close()
		return fmt.Errorf("failed to write synthetic file: %w", err)
	}
	return f.Close()
}
