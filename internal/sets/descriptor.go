package sets

import (
	"bufio"
	"io"
	"path/filepath"
	"strconv"
)

// Emitter writes the ordinal sidecars of finished sets.
type Emitter struct {
	dir    string
	create CreateFunc
}

// NewEmitter returns an Emitter writing into dir. A nil create uses os.Create.
func NewEmitter(dir string, create CreateFunc) *Emitter {
	if create == nil {
		create = createFile
	}
	return &Emitter{dir: dir, create: create}
}

// Emit writes the row ordinal file of spec and, except for training sets,
// its column ordinal file. Ordinals are written one per line in the order the
// plan realized them; case and outcome columns are never listed.
func (e *Emitter) Emit(pass int, spec *SetSpec) error {
	if err := e.writeOrdinals(pass, spec, spec.RowOrdinalsFile(), spec.Rows); err != nil {
		return err
	}
	if name, ok := spec.ColumnOrdinalsFile(); ok {
		return e.writeOrdinals(pass, spec, name, spec.Columns)
	}
	return nil
}

// EmitPass emits the sidecars of every set in a completed pass.
func (e *Emitter) EmitPass(pass Pass) error {
	for _, spec := range pass.Sets {
		if err := e.Emit(pass.Number, spec); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) writeOrdinals(pass int, spec *SetSpec, name string, ordinals []int) error {
	path := filepath.Join(e.dir, name)
	f, err := e.create(path)
	if err != nil {
		return &IOError{Op: "create", Set: spec.ID, Pass: pass, Path: path, Err: err}
	}

	err = writeOrdinalLines(f, ordinals)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &IOError{Op: "write", Set: spec.ID, Pass: pass, Path: path, Err: err}
	}
	return nil
}

func writeOrdinalLines(w io.Writer, ordinals []int) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, o := range ordinals {
		buf = strconv.AppendInt(buf[:0], int64(o), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
