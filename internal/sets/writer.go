package sets

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dbsmedya/setmaker/internal/logger"
	"github.com/dbsmedya/setmaker/internal/source"
)

const (
	// outputDelimiter separates fields in every set file regardless of the
	// original file's delimiter.
	outputDelimiter = ','
	// generatedCaseHeader names the first column when row ordinals stand in
	// for a case column.
	generatedCaseHeader = "case_id"

	sinkBufferSize   = 32 << 10
	progressInterval = 8192
)

// OpenFunc opens the original file for one sequential scan.
type OpenFunc func() (io.ReadCloser, error)

// CreateFunc creates an output file.
type CreateFunc func(path string) (io.WriteCloser, error)

func createFile(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// WriterState is the position of a Writer in its pass loop.
type WriterState int

const (
	StateIdle WriterState = iota
	StateOpenBatch
	StateScanning
	StateCloseBatch
	StateDone
	StateFailed
)

func (s WriterState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOpenBatch:
		return "open-batch"
	case StateScanning:
		return "scanning"
	case StateCloseBatch:
		return "close-batch"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Progress receives scan progress. Implementations must be cheap; Advance is
// called every few thousand rows.
type Progress interface {
	StartPass(pass, passes int)
	Advance(rows int)
	FinishPass()
}

type nopProgress struct{}

func (nopProgress) StartPass(int, int) {}
func (nopProgress) Advance(int)        {}
func (nopProgress) FinishPass()        {}

// PassStats summarises one completed pass.
type PassStats struct {
	Pass         int
	Sets         int
	RowsScanned  int
	LinesWritten int64
	Duration     time.Duration
}

// Writer performs the scan passes. For each pass it opens the batch's data
// files, reads the original file once from its first data row to its last,
// appends every sampled row to the sets that include it and closes the batch.
//
// A failure aborts the current pass. Files of earlier passes are complete;
// files of the failing pass are left on disk and must be treated as invalid.
type Writer struct {
	open      OpenFunc
	create    CreateFunc
	dir       string
	delim     byte
	rows      int
	columns   int
	header    bool
	logger    *logger.Logger
	progress  Progress
	afterPass func(Pass) error
	state     WriterState
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithCreateFunc replaces os.Create for data files.
func WithCreateFunc(create CreateFunc) WriterOption {
	return func(w *Writer) { w.create = create }
}

// WithHeader makes every data file start with a header line.
func WithHeader(header bool) WriterOption {
	return func(w *Writer) { w.header = header }
}

// WithLogger sets the writer's logger.
func WithLogger(log *logger.Logger) WriterOption {
	return func(w *Writer) { w.logger = log }
}

// WithProgress sets the progress receiver.
func WithProgress(p Progress) WriterOption {
	return func(w *Writer) { w.progress = p }
}

// WithPassHook registers fn to run after each pass has closed its files.
// An error from fn stops the run.
func WithPassHook(fn func(Pass) error) WriterOption {
	return func(w *Writer) { w.afterPass = fn }
}

// NewWriter returns a Writer for an original file with the given data row
// and column counts, writing data files into dir.
func NewWriter(open OpenFunc, dir string, delim byte, rows, columns int, opts ...WriterOption) *Writer {
	w := &Writer{
		open:     open,
		create:   createFile,
		dir:      dir,
		delim:    delim,
		rows:     rows,
		columns:  columns,
		logger:   logger.NewNop(),
		progress: nopProgress{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns the writer's current state.
func (w *Writer) State() WriterState {
	return w.state
}

// Run writes every pass in order. The context is checked between passes
// only; a scan in progress always runs to completion or failure.
func (w *Writer) Run(ctx context.Context, passes []Pass) ([]PassStats, error) {
	if w.state != StateIdle {
		return nil, fmt.Errorf("writer is %s, not idle", w.state)
	}

	stats := make([]PassStats, 0, len(passes))
	for _, pass := range passes {
		if err := ctx.Err(); err != nil {
			w.state = StateFailed
			return stats, err
		}

		st, err := w.writePass(pass, len(passes))
		if err != nil {
			w.state = StateFailed
			return stats, err
		}
		stats = append(stats, st)

		if w.afterPass != nil {
			if err := w.afterPass(pass); err != nil {
				w.state = StateFailed
				return stats, err
			}
		}
	}

	w.state = StateDone
	return stats, nil
}

type sink struct {
	spec  *SetSpec
	path  string
	file  io.WriteCloser
	buf   *bufio.Writer
	line  []byte
	lines int64
}

func (w *Writer) writePass(pass Pass, passes int) (PassStats, error) {
	start := time.Now()
	log := w.logger.WithPass(pass.Number)

	w.state = StateOpenBatch
	sinks, err := w.openBatch(pass)
	if err != nil {
		return PassStats{}, err
	}
	log.Debugw("Opened pass batch", "files", len(sinks))

	w.state = StateScanning
	w.progress.StartPass(pass.Number, passes)
	rowsScanned, err := w.scan(pass, sinks)
	w.progress.FinishPass()
	if err != nil {
		closeQuietly(sinks)
		return PassStats{}, err
	}

	w.state = StateCloseBatch
	if err := w.closeBatch(pass, sinks); err != nil {
		return PassStats{}, err
	}
	w.state = StateIdle

	st := PassStats{
		Pass:        pass.Number,
		Sets:        len(sinks),
		RowsScanned: rowsScanned,
		Duration:    time.Since(start),
	}
	for _, s := range sinks {
		st.LinesWritten += s.lines
	}

	log.Infow("Pass complete",
		"sets", st.Sets,
		"rows_scanned", st.RowsScanned,
		"lines_written", st.LinesWritten,
		"duration", st.Duration,
	)
	return st, nil
}

func (w *Writer) openBatch(pass Pass) ([]*sink, error) {
	sinks := make([]*sink, 0, len(pass.Sets))
	for _, spec := range pass.Sets {
		path := filepath.Join(w.dir, spec.DataFile())
		f, err := w.create(path)
		if err != nil {
			closeQuietly(sinks)
			return nil, &IOError{Op: "create", Set: spec.ID, Pass: pass.Number, Path: path, Err: err}
		}
		sinks = append(sinks, &sink{
			spec: spec,
			path: path,
			file: f,
			buf:  bufio.NewWriterSize(f, sinkBufferSize),
		})
	}
	return sinks, nil
}

// route maps a row ordinal to the indices of the sinks sampling it.
func route(sinks []*sink) map[int][]int32 {
	total := 0
	for _, s := range sinks {
		total += len(s.spec.Rows)
	}
	r := make(map[int][]int32, total)
	for i, s := range sinks {
		for _, row := range s.spec.Rows {
			r[row] = append(r[row], int32(i))
		}
	}
	return r
}

func (w *Writer) scan(pass Pass, sinks []*sink) (int, error) {
	rc, err := w.open()
	if err != nil {
		return 0, &IOError{Op: "open", Pass: pass.Number, Path: "original file", Err: err}
	}
	defer rc.Close()

	routes := route(sinks)
	reader := source.NewReader(rc, w.delim)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return 0, &InputFormatError{Pass: pass.Number, Message: "original file is empty"}
	}
	if err != nil {
		return 0, &IOError{Op: "read", Pass: pass.Number, Path: "original file", Err: err}
	}
	if len(header) != w.columns {
		return 0, &InputFormatError{Pass: pass.Number,
			Message: fmt.Sprintf("header has %d columns, file info records %d", len(header), w.columns)}
	}

	if w.header {
		for _, s := range sinks {
			if err := s.writeHeader(header); err != nil {
				return 0, &IOError{Op: "write", Set: s.spec.ID, Pass: pass.Number, Path: s.path, Err: err}
			}
		}
	}

	row := 0
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return row, &IOError{Op: "read", Pass: pass.Number, Path: "original file", Err: err}
		}

		row++
		if row > w.rows {
			return row, &InputFormatError{Pass: pass.Number, Row: row,
				Message: fmt.Sprintf("file has more than the %d data rows recorded in its info", w.rows)}
		}
		if len(fields) != w.columns {
			return row, &InputFormatError{Pass: pass.Number, Row: row,
				Message: fmt.Sprintf("row has %d fields, header has %d", len(fields), w.columns)}
		}

		for _, i := range routes[row] {
			s := sinks[i]
			if err := s.writeRow(row, fields); err != nil {
				return row, &IOError{Op: "write", Set: s.spec.ID, Pass: pass.Number, Path: s.path, Err: err}
			}
		}

		if row%progressInterval == 0 {
			w.progress.Advance(progressInterval)
		}
	}
	w.progress.Advance(row % progressInterval)

	if row != w.rows {
		return row, &InputFormatError{Pass: pass.Number,
			Message: fmt.Sprintf("file has %d data rows, file info records %d", row, w.rows)}
	}
	return row, nil
}

func (w *Writer) closeBatch(pass Pass, sinks []*sink) error {
	var first error
	for _, s := range sinks {
		err := s.buf.Flush()
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
		if err != nil && first == nil {
			first = &IOError{Op: "close", Set: s.spec.ID, Pass: pass.Number, Path: s.path, Err: err}
		}
	}
	return first
}

func closeQuietly(sinks []*sink) {
	for _, s := range sinks {
		_ = s.buf.Flush()
		_ = s.file.Close()
	}
}

func (s *sink) writeRow(row int, fields [][]byte) error {
	line := s.line[:0]
	if c, ok := s.spec.Case.Get(); ok {
		line = append(line, fields[c-1]...)
	} else {
		line = strconv.AppendInt(line, int64(row), 10)
	}
	if o, ok := s.spec.Outcome.Get(); ok {
		line = append(line, outputDelimiter)
		line = append(line, fields[o-1]...)
	}
	for _, c := range s.spec.Columns {
		line = append(line, outputDelimiter)
		line = append(line, fields[c-1]...)
	}
	line = append(line, '\n')
	s.line = line

	if _, err := s.buf.Write(line); err != nil {
		return err
	}
	s.lines++
	return nil
}

func (s *sink) writeHeader(header [][]byte) error {
	line := s.line[:0]
	if c, ok := s.spec.Case.Get(); ok {
		line = append(line, header[c-1]...)
	} else {
		line = append(line, generatedCaseHeader...)
	}
	if o, ok := s.spec.Outcome.Get(); ok {
		line = append(line, outputDelimiter)
		line = append(line, header[o-1]...)
	}
	for _, c := range s.spec.Columns {
		line = append(line, outputDelimiter)
		line = append(line, header[c-1]...)
	}
	line = append(line, '\n')
	s.line = line

	_, err := s.buf.Write(line)
	return err
}
