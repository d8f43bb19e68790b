package sets

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainingParams() Params {
	return Params{
		Mode:             ModeTraining,
		Rows:             100,
		Columns:          10,
		SetCount:         3,
		TrainingFraction: 0.7,
		TrainingRows:     20,
		ValidationRows:   10,
		ColumnCount:      4,
		Case:             Column(1),
		Outcome:          Column(10),
	}
}

func genericParams() Params {
	return Params{
		Mode:        ModeGeneric,
		Rows:        50,
		Columns:     6,
		SetCount:    4,
		GenericRows: 10,
		ColumnCount: 3,
		Outcome:     Column(6),
	}
}

func TestPlanner_Training(t *testing.T) {
	plan, err := NewPlanner(NewRand(42)).Plan(trainingParams())
	require.NoError(t, err)

	assert.Equal(t, ModeTraining, plan.Mode)
	require.NotNil(t, plan.Assignment)
	require.Len(t, plan.Groups, 3)
	assert.Equal(t, 6, plan.DataFiles())
	assert.Len(t, plan.Sets(), 6)

	for i, g := range plan.Groups {
		require.Len(t, g, 2)
		training, validation := g[0], g[1]

		n := i + 1
		assert.Equal(t, KindTraining, training.Kind)
		assert.Equal(t, KindValidation, validation.Kind)
		assert.Equal(t, "training-set-"+itoa(n), training.ID)
		assert.Equal(t, "validation-set-"+itoa(n), validation.ID)

		assert.Len(t, training.Rows, 20)
		assert.Len(t, validation.Rows, 10)
		assert.True(t, slices.IsSorted(training.Rows))
		assert.True(t, slices.IsSorted(validation.Rows))
		for _, r := range training.Rows {
			_, found := slices.BinarySearch(plan.Assignment.Training, r)
			assert.True(t, found, "training row %d outside training pool", r)
		}
		for _, r := range validation.Rows {
			_, found := slices.BinarySearch(plan.Assignment.Validation, r)
			assert.True(t, found, "validation row %d outside validation pool", r)
		}

		assert.Equal(t, training.Columns, validation.Columns, "a pair shares its columns")
		assert.Len(t, training.Columns, 4)
		assert.NotContains(t, training.Columns, 1)
		assert.NotContains(t, training.Columns, 10)
		assert.Equal(t, 6, training.Fields())
	}
}

func TestPlanner_SameSeedSamePlan(t *testing.T) {
	a, err := NewPlanner(NewRand(9)).Plan(trainingParams())
	require.NoError(t, err)
	b, err := NewPlanner(NewRand(9)).Plan(trainingParams())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := NewPlanner(NewRand(10)).Plan(trainingParams())
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestPlanner_FirstSet(t *testing.T) {
	params := trainingParams()
	params.FirstSet = 5

	plan, err := NewPlanner(NewRand(1)).Plan(params)
	require.NoError(t, err)

	var ids []string
	for _, s := range plan.Sets() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{
		"training-set-5", "validation-set-5",
		"training-set-6", "validation-set-6",
		"training-set-7", "validation-set-7",
	}, ids)
}

func TestPlanner_Ascending(t *testing.T) {
	params := trainingParams()
	params.ColumnCount = 0
	params.Priority = []PriorityEntry{{3, 0.9}, {5, 0.8}, {2, 0.7}, {7, 0.6}}
	params.PriorityStart = 2

	plan, err := NewPlanner(NewRand(3)).Plan(params)
	require.NoError(t, err)
	require.Len(t, plan.Groups, 3)

	assert.Equal(t, []int{3, 5}, plan.Groups[0][1].Columns)
	assert.Equal(t, []int{3, 5, 2}, plan.Groups[1][1].Columns)
	assert.Equal(t, []int{3, 5, 2, 7}, plan.Groups[2][1].Columns)
}

func TestPlanner_Generic(t *testing.T) {
	plan, err := NewPlanner(NewRand(4)).Plan(genericParams())
	require.NoError(t, err)

	assert.Equal(t, ModeGeneric, plan.Mode)
	assert.Nil(t, plan.Assignment)
	require.Len(t, plan.Groups, 4)

	for i, g := range plan.Groups {
		require.Len(t, g, 1)
		s := g[0]
		assert.Equal(t, KindGeneric, s.Kind)
		assert.Equal(t, "set-"+itoa(i+1), s.ID)
		assert.Len(t, s.Rows, 10)
		assert.True(t, slices.IsSorted(s.Rows))
		assert.GreaterOrEqual(t, s.Rows[0], 1)
		assert.LessOrEqual(t, s.Rows[len(s.Rows)-1], 50)
		assert.Len(t, s.Columns, 3)
		assert.NotContains(t, s.Columns, 6)
		assert.False(t, s.Case.Present())

		name, ok := s.ColumnOrdinalsFile()
		assert.True(t, ok)
		assert.Equal(t, s.ID+"-column-ordinals", name)
	}
}

func TestPlanner_Errors(t *testing.T) {
	tests := []struct {
		name   string
		params func() Params
		field  string
	}{
		{"no sets", func() Params { p := trainingParams(); p.SetCount = 0; return p }, "count"},
		{"negative first set", func() Params { p := trainingParams(); p.FirstSet = -1; return p }, "first"},
		{"no rows", func() Params { p := trainingParams(); p.Rows = 0; return p }, "rows"},
		{"unknown mode", func() Params { p := trainingParams(); p.Mode = 0; return p }, "mode"},
		{"training without case", func() Params { p := trainingParams(); p.Case = NoColumn; return p }, "case_column"},
		{"training without outcome", func() Params { p := trainingParams(); p.Outcome = NoColumn; return p }, "outcome_column"},
		{"training with generic rows", func() Params { p := trainingParams(); p.GenericRows = 5; return p }, "generic_rows"},
		{"too many columns", func() Params { p := trainingParams(); p.ColumnCount = 9; return p }, "column_count"},
		{"too many training rows", func() Params { p := trainingParams(); p.TrainingRows = 71; return p }, "training_rows"},
		{"no validation rows", func() Params { p := trainingParams(); p.ValidationRows = 0; return p }, "validation_rows"},
		{"bad fraction", func() Params { p := trainingParams(); p.TrainingFraction = 1.5; return p }, "training_percent"},
		{"short priority list", func() Params {
			p := trainingParams()
			p.Priority = []PriorityEntry{{3, 0.9}, {5, 0.8}}
			p.PriorityStart = 1
			return p
		}, "column_set_file"},
		{"priority names case column", func() Params {
			p := trainingParams()
			p.Priority = []PriorityEntry{{1, 0.9}, {5, 0.8}, {6, 0.7}}
			p.PriorityStart = 1
			return p
		}, "column_set_file"},
		{"generic with priority", func() Params {
			p := genericParams()
			p.Priority = []PriorityEntry{{1, 0.9}}
			return p
		}, "column_set_file"},
		{"generic with fraction", func() Params { p := genericParams(); p.TrainingFraction = 0.5; return p }, "training_percent"},
		{"generic with training rows", func() Params { p := genericParams(); p.TrainingRows = 3; return p }, "training_rows"},
		{"too many generic rows", func() Params { p := genericParams(); p.GenericRows = 51; return p }, "generic_rows"},
		{"generic column count", func() Params { p := genericParams(); p.ColumnCount = 6; return p }, "column_count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlanner(NewRand(1)).Plan(tt.params())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfig)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}
