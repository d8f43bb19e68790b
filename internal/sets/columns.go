package sets

import (
	"math/rand/v2"
)

// ColumnSpec describes the original file's columns from the point of view of
// selection: the optional case and outcome columns, and every other column
// as a candidate, in file order.
type ColumnSpec struct {
	Case       OptionalColumn
	Outcome    OptionalColumn
	Candidates []int
}

// NewColumnSpec builds the ColumnSpec of a file with the given column count.
func NewColumnSpec(columns int, caseCol, outcome OptionalColumn) (ColumnSpec, error) {
	if columns < 1 {
		return ColumnSpec{}, configErrorf("columns", "original file has no columns")
	}
	if o, ok := caseCol.Get(); ok && (o < 1 || o > columns) {
		return ColumnSpec{}, configErrorf("case_column",
			"case column ordinal %d is outside the file's %d columns", o, columns)
	}
	if o, ok := outcome.Get(); ok && (o < 1 || o > columns) {
		return ColumnSpec{}, configErrorf("outcome_column",
			"outcome column ordinal %d is outside the file's %d columns", o, columns)
	}
	if o, ok := caseCol.Get(); ok && outcome.Is(o) {
		return ColumnSpec{}, configErrorf("outcome_column", "case column and outcome column are the same, %d", o)
	}

	spec := ColumnSpec{Case: caseCol, Outcome: outcome}
	for c := 1; c <= columns; c++ {
		if spec.Excluded(c) {
			continue
		}
		spec.Candidates = append(spec.Candidates, c)
	}
	return spec, nil
}

// Excluded reports whether ordinal is the case or outcome column.
func (s ColumnSpec) Excluded(ordinal int) bool {
	return s.Case.Is(ordinal) || s.Outcome.Is(ordinal)
}

// SelectColumns draws count distinct candidate columns uniformly and returns
// them in original file order.
func SelectColumns(rng *rand.Rand, spec ColumnSpec, count int) ([]int, error) {
	if count < 1 {
		return nil, configErrorf("column_count", "column count %d is less than 1", count)
	}
	if count > len(spec.Candidates) {
		return nil, configErrorf("column_count",
			"column count %d exceeds the %d selectable columns", count, len(spec.Candidates))
	}
	return sampleFrom(rng, spec.Candidates, count), nil
}

// AscendingColumns returns the columns of set number n in ascending mode:
// the first start+n-1 priority entries, in the order the file lists them.
// Each set's columns are a strict prefix-superset of the previous set's.
func AscendingColumns(priority []PriorityEntry, start, n int) ([]int, error) {
	want := start + n - 1
	if start < 1 {
		return nil, configErrorf("column_set_start", "column set start %d is less than 1", start)
	}
	if want > len(priority) {
		return nil, configErrorf("column_set_file",
			"set %d needs %d ranked columns but the column set file lists %d", n, want, len(priority))
	}

	out := make([]int, want)
	for i := range out {
		out[i] = priority[i].Column
	}
	return out, nil
}
