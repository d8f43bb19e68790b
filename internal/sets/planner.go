package sets

import (
	"math/rand/v2"
)

// Mode selects between paired training/validation sets and generic sets.
type Mode int

const (
	ModeTraining Mode = iota + 1
	ModeGeneric
)

func (m Mode) String() string {
	switch m {
	case ModeTraining:
		return "training"
	case ModeGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// Params are the inputs of a plan. Rows and Columns come from the original
// file's info; everything else from configuration.
type Params struct {
	Mode    Mode
	Rows    int
	Columns int

	SetCount int
	FirstSet int // number of the first set; 0 means 1

	TrainingFraction float64
	TrainingRows     int
	ValidationRows   int
	GenericRows      int

	// ColumnCount is the number of randomly selected columns per set. It is
	// unused in ascending mode.
	ColumnCount int
	Case        OptionalColumn
	Outcome     OptionalColumn

	// Priority switches training mode to ascending column selection. Set n
	// then uses the first PriorityStart+n-1 entries.
	Priority      []PriorityEntry
	PriorityStart int
}

// Ascending reports whether columns follow a priority list.
func (p Params) Ascending() bool {
	return p.Priority != nil
}

// Plan is the complete, immutable description of what will be written.
type Plan struct {
	Mode       Mode
	Assignment *RowAssignment // nil in generic mode
	Columns    ColumnSpec
	Groups     []Group
}

// Sets returns every set in creation order.
func (p *Plan) Sets() []*SetSpec {
	var out []*SetSpec
	for _, g := range p.Groups {
		out = append(out, g...)
	}
	return out
}

// DataFiles is the number of data files the plan writes.
func (p *Plan) DataFiles() int {
	n := 0
	for _, g := range p.Groups {
		n += len(g)
	}
	return n
}

// Planner draws every random choice of a plan from one source.
type Planner struct {
	rng *rand.Rand
}

// NewPlanner returns a Planner drawing from rng.
func NewPlanner(rng *rand.Rand) *Planner {
	return &Planner{rng: rng}
}

// Plan validates params and computes every set's rows and columns.
func (p *Planner) Plan(params Params) (*Plan, error) {
	if params.SetCount < 1 {
		return nil, configErrorf("count", "set count %d is less than 1", params.SetCount)
	}
	if params.FirstSet == 0 {
		params.FirstSet = 1
	}
	if params.FirstSet < 1 {
		return nil, configErrorf("first", "first set number %d is less than 1", params.FirstSet)
	}
	if params.Rows < 1 {
		return nil, configErrorf("rows", "original file has no data rows")
	}

	spec, err := NewColumnSpec(params.Columns, params.Case, params.Outcome)
	if err != nil {
		return nil, err
	}

	switch params.Mode {
	case ModeTraining:
		return p.planTraining(params, spec)
	case ModeGeneric:
		return p.planGeneric(params, spec)
	default:
		return nil, configErrorf("mode", "unknown set mode %d", params.Mode)
	}
}

func (p *Planner) planTraining(params Params, spec ColumnSpec) (*Plan, error) {
	if !params.Case.Present() {
		return nil, configErrorf("case_column", "case column is required for training/validation sets")
	}
	if !params.Outcome.Present() {
		return nil, configErrorf("outcome_column", "outcome column is required for training/validation sets")
	}
	if params.GenericRows != 0 {
		return nil, configErrorf("generic_rows", "generic row count is not allowed for training/validation sets")
	}

	lastSet := params.FirstSet + params.SetCount - 1
	if params.Ascending() {
		if err := checkPriority(params.Priority, spec, params.Columns); err != nil {
			return nil, err
		}
		// Validate the largest set up front so no partial plan is built.
		if _, err := AscendingColumns(params.Priority, params.PriorityStart, lastSet); err != nil {
			return nil, err
		}
	} else if params.ColumnCount < 1 || params.ColumnCount > len(spec.Candidates) {
		return nil, configErrorf("column_count",
			"column count %d must be between 1 and the %d selectable columns", params.ColumnCount, len(spec.Candidates))
	}

	assignment, err := PartitionRows(p.rng, params.Rows, params.TrainingFraction)
	if err != nil {
		return nil, err
	}

	if params.TrainingRows < 1 || params.TrainingRows > len(assignment.Training) {
		return nil, configErrorf("training_rows",
			"training row count %d must be between 1 and the %d rows of the training pool",
			params.TrainingRows, len(assignment.Training))
	}
	if params.ValidationRows < 1 || params.ValidationRows > len(assignment.Validation) {
		return nil, configErrorf("validation_rows",
			"validation row count %d must be between 1 and the %d rows of the validation pool",
			params.ValidationRows, len(assignment.Validation))
	}

	plan := &Plan{Mode: ModeTraining, Assignment: assignment, Columns: spec}
	for n := params.FirstSet; n <= lastSet; n++ {
		var columns []int
		if params.Ascending() {
			columns, err = AscendingColumns(params.Priority, params.PriorityStart, n)
		} else {
			columns, err = SelectColumns(p.rng, spec, params.ColumnCount)
		}
		if err != nil {
			return nil, err
		}

		training := sampleFrom(p.rng, assignment.Training, params.TrainingRows)
		validation := sampleFrom(p.rng, assignment.Validation, params.ValidationRows)

		plan.Groups = append(plan.Groups, Group{
			newSetSpec(KindTraining, n, training, columns, spec.Case, spec.Outcome),
			newSetSpec(KindValidation, n, validation, columns, spec.Case, spec.Outcome),
		})
	}

	return plan, nil
}

func (p *Planner) planGeneric(params Params, spec ColumnSpec) (*Plan, error) {
	switch {
	case params.Ascending():
		return nil, configErrorf("column_set_file", "a column set file cannot be used with generic sets")
	case params.TrainingFraction != 0:
		return nil, configErrorf("training_percent", "training percent is not allowed for generic sets")
	case params.TrainingRows != 0 || params.ValidationRows != 0:
		return nil, configErrorf("training_rows", "training and validation row counts are not allowed for generic sets")
	}

	if params.GenericRows < 1 || params.GenericRows > params.Rows {
		return nil, configErrorf("generic_rows",
			"generic row count %d must be between 1 and the %d rows of the original file", params.GenericRows, params.Rows)
	}
	if params.ColumnCount < 1 || params.ColumnCount > len(spec.Candidates) {
		return nil, configErrorf("column_count",
			"column count %d must be between 1 and the %d selectable columns", params.ColumnCount, len(spec.Candidates))
	}

	plan := &Plan{Mode: ModeGeneric, Columns: spec}
	lastSet := params.FirstSet + params.SetCount - 1
	for n := params.FirstSet; n <= lastSet; n++ {
		rows := sampleRange(p.rng, params.Rows, params.GenericRows)
		columns, err := SelectColumns(p.rng, spec, params.ColumnCount)
		if err != nil {
			return nil, err
		}
		plan.Groups = append(plan.Groups, Group{
			newSetSpec(KindGeneric, n, rows, columns, spec.Case, spec.Outcome),
		})
	}

	return plan, nil
}
