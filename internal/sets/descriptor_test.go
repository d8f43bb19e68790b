package sets

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitter_Emit(t *testing.T) {
	dir := t.TempDir()
	e := NewEmitter(dir, nil)

	training := newSetSpec(KindTraining, 3, []int{2, 5, 9}, []int{8, 4}, Column(1), Column(10))
	validation := newSetSpec(KindValidation, 3, []int{1, 7}, []int{8, 4}, Column(1), Column(10))

	require.NoError(t, e.EmitPass(Pass{Number: 1, Sets: []*SetSpec{training, validation}}))

	assert.Equal(t, "2\n5\n9\n", readFile(t, filepath.Join(dir, "training-set-3-row-ordinals")))
	assert.NoFileExists(t, filepath.Join(dir, "training-set-3-column-ordinals"))
	assert.Equal(t, "1\n7\n", readFile(t, filepath.Join(dir, "validation-set-3-row-ordinals")))
	assert.Equal(t, "8\n4\n", readFile(t, filepath.Join(dir, "validation-set-3-column-ordinals")))
}

func TestEmitter_Generic(t *testing.T) {
	dir := t.TempDir()
	spec := newSetSpec(KindGeneric, 12, []int{4}, []int{2, 3}, NoColumn, NoColumn)

	require.NoError(t, NewEmitter(dir, nil).Emit(1, spec))
	assert.Equal(t, "4\n", readFile(t, filepath.Join(dir, "set-12-row-ordinals")))
	assert.Equal(t, "2\n3\n", readFile(t, filepath.Join(dir, "set-12-column-ordinals")))
}

func TestEmitter_CreateFailure(t *testing.T) {
	denied := errors.New("permission denied")
	e := NewEmitter(t.TempDir(), func(string) (io.WriteCloser, error) { return nil, denied })

	err := e.Emit(2, newSetSpec(KindGeneric, 1, []int{1}, []int{1}, NoColumn, NoColumn))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, denied)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, 2, ioErr.Pass)
	assert.Equal(t, "set-1", ioErr.Set)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("short write") }
func (failingWriter) Close() error              { return nil }

func TestEmitter_WriteFailure(t *testing.T) {
	e := NewEmitter(t.TempDir(), func(string) (io.WriteCloser, error) { return failingWriter{}, nil })

	err := e.Emit(1, newSetSpec(KindGeneric, 1, []int{1}, []int{1}, NoColumn, NoColumn))
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "write", ioErr.Op)
}
