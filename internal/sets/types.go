// Package sets plans and writes training, validation and generic sample sets
// drawn from one large delimited file.
//
// Planning (row partition, column selection, per-set samples and the pass
// schedule) completes before any file is opened. Writing then makes the
// fewest sequential scans of the original file the open file capacity allows.
package sets

import (
	"strconv"
)

// Kind is the role of a generated set.
type Kind int

const (
	KindTraining Kind = iota + 1
	KindValidation
	KindGeneric
)

func (k Kind) String() string {
	switch k {
	case KindTraining:
		return "training"
	case KindValidation:
		return "validation"
	case KindGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// filePrefix is the stem prefix of every file of a set of this kind.
func (k Kind) filePrefix() string {
	switch k {
	case KindTraining:
		return "training-set-"
	case KindValidation:
		return "validation-set-"
	default:
		return "set-"
	}
}

// OptionalColumn is a column ordinal that may be absent. The zero value is
// absent.
type OptionalColumn struct {
	ordinal int
	present bool
}

// Column returns a present column with the given 1-based ordinal.
func Column(ordinal int) OptionalColumn {
	return OptionalColumn{ordinal: ordinal, present: true}
}

// NoColumn is the absent column.
var NoColumn = OptionalColumn{}

// Get returns the ordinal and whether the column is present.
func (c OptionalColumn) Get() (int, bool) {
	return c.ordinal, c.present
}

// Present reports whether the column is set.
func (c OptionalColumn) Present() bool {
	return c.present
}

// Is reports whether the column is present and equals ordinal.
func (c OptionalColumn) Is(ordinal int) bool {
	return c.present && c.ordinal == ordinal
}

func (c OptionalColumn) String() string {
	if !c.present {
		return "none"
	}
	return strconv.Itoa(c.ordinal)
}

// SetSpec fully determines one output set.
type SetSpec struct {
	ID      string // file stem, e.g. "validation-set-4"
	Number  int
	Kind    Kind
	Rows    []int // row ordinals, ascending, no duplicates
	Columns []int // attribute column ordinals in emitted order
	Case    OptionalColumn
	Outcome OptionalColumn
}

func newSetSpec(kind Kind, number int, rows, columns []int, caseCol, outcome OptionalColumn) *SetSpec {
	return &SetSpec{
		ID:      kind.filePrefix() + strconv.Itoa(number),
		Number:  number,
		Kind:    kind,
		Rows:    rows,
		Columns: columns,
		Case:    caseCol,
		Outcome: outcome,
	}
}

// DataFile is the name of the set's data file.
func (s *SetSpec) DataFile() string {
	return s.ID + ".csv"
}

// RowOrdinalsFile is the name of the row ordinal sidecar.
func (s *SetSpec) RowOrdinalsFile() string {
	return s.ID + "-row-ordinals"
}

// ColumnOrdinalsFile is the name of the column ordinal sidecar. Training sets
// have none: they share the columns of their validation set.
func (s *SetSpec) ColumnOrdinalsFile() (string, bool) {
	if s.Kind == KindTraining {
		return "", false
	}
	return s.ID + "-column-ordinals", true
}

// Fields is the number of fields on each data line of the set.
func (s *SetSpec) Fields() int {
	n := 1 + len(s.Columns)
	if s.Outcome.Present() {
		n++
	}
	return n
}

// Group is a scheduling unit: sets whose data files must share a pass.
// A training/validation pair is one group; each generic set is its own.
type Group []*SetSpec
