package sets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	input := "4,0.9\n2, 0.8\n\n7,0.5\r\n 3 ,0.5\n"

	entries, err := ParsePriority(strings.NewReader(input), "ranks")
	require.NoError(t, err)
	assert.Equal(t, []PriorityEntry{
		{Column: 4, Priority: 0.9},
		{Column: 2, Priority: 0.8},
		{Column: 7, Priority: 0.5},
		{Column: 3, Priority: 0.5},
	}, entries)
}

func TestParsePriority_Empty(t *testing.T) {
	entries, err := ParsePriority(strings.NewReader(""), "ranks")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParsePriority_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"too many fields", "4,0.9,1\n", "expected 2"},
		{"single field", "4\n", "expected 2"},
		{"column not integer", "x,0.9\n", "not an integer"},
		{"priority not number", "4,high\n", "not a number"},
		{"increasing priority", "4,0.5\n2,0.8\n", "greater than the previous"},
		{"duplicate column", "4,0.9\n4,0.8\n", "already appeared on line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePriority(strings.NewReader(tt.input), "ranks")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfig)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestParsePriorityFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranks.csv")
	require.NoError(t, os.WriteFile(path, []byte("5,3\n1,2\n"), 0644))

	entries, err := ParsePriorityFile(path)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = ParsePriorityFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, ErrConfig)
}

func TestCheckPriority(t *testing.T) {
	spec, err := NewColumnSpec(6, Column(1), Column(6))
	require.NoError(t, err)

	assert.NoError(t, checkPriority([]PriorityEntry{{2, 1}, {5, 0.5}}, spec, 6))

	for _, bad := range []int{0, 7, 1, 6} {
		err := checkPriority([]PriorityEntry{{3, 1}, {bad, 0.5}}, spec, 6)
		assert.ErrorIs(t, err, ErrConfig, "column %d", bad)
	}
}
