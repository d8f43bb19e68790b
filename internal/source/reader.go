package source

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

const readBufferSize = 1 << 20

// Reader splits a delimited text stream into fields, one line at a time.
//
// The field slices returned by Read alias an internal buffer and are only
// valid until the next call to Read.
type Reader struct {
	br     *bufio.Reader
	delim  byte
	line   []byte
	fields [][]byte
	count  int64
}

// NewReader returns a Reader splitting fields on delim.
func NewReader(r io.Reader, delim byte) *Reader {
	return &Reader{
		br:    bufio.NewReaderSize(r, readBufferSize),
		delim: delim,
	}
}

// Read returns the fields of the next line. It returns io.EOF once the input
// is exhausted. A final line without a trailing newline is still returned.
func (r *Reader) Read() ([][]byte, error) {
	line, err := r.readLine()
	if err != nil {
		return nil, err
	}
	r.count++
	r.fields = splitFields(r.fields[:0], line, r.delim)
	return r.fields, nil
}

// Lines returns the number of lines returned by Read so far.
func (r *Reader) Lines() int64 {
	return r.count
}

func (r *Reader) readLine() ([]byte, error) {
	r.line = r.line[:0]
	for {
		chunk, err := r.br.ReadSlice('\n')
		switch {
		case err == nil:
			if len(r.line) == 0 {
				return trimEOL(chunk), nil
			}
			r.line = append(r.line, chunk...)
			return trimEOL(r.line), nil
		case errors.Is(err, bufio.ErrBufferFull):
			r.line = append(r.line, chunk...)
		case errors.Is(err, io.EOF):
			r.line = append(r.line, chunk...)
			if len(r.line) == 0 {
				return nil, io.EOF
			}
			return trimEOL(r.line), nil
		default:
			return nil, err
		}
	}
}

func trimEOL(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte{'\n'})
	return bytes.TrimSuffix(line, []byte{'\r'})
}

// splitFields appends the delim-separated fields of line to dst.
func splitFields(dst [][]byte, line []byte, delim byte) [][]byte {
	for {
		i := bytes.IndexByte(line, delim)
		if i < 0 {
			return append(dst, line)
		}
		dst = append(dst, line[:i])
		line = line[i+1:]
	}
}
