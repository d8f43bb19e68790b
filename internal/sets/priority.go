package sets

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// PriorityEntry is one line of a column set file.
type PriorityEntry struct {
	Column   int
	Priority float64
}

// ParsePriority reads "ordinal,priority" lines. Entries must be listed in
// non-increasing priority order and no column may repeat. Blank lines are
// skipped. name is used in error messages only.
func ParsePriority(r io.Reader, name string) ([]PriorityEntry, error) {
	var (
		entries  []PriorityEntry
		previous = math.Inf(1)
		seen     = make(map[int]int)
		line     int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		fields := strings.Split(text, ",")
		if len(fields) != 2 {
			return nil, configErrorf("column_set_file",
				"line %d of %s has %d fields, expected 2", line, name, len(fields))
		}

		column, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, configErrorf("column_set_file",
				"column %q on line %d of %s is not an integer", fields[0], line, name)
		}

		priority, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil || math.IsNaN(priority) {
			return nil, configErrorf("column_set_file",
				"priority %q on line %d of %s is not a number", fields[1], line, name)
		}

		if priority > previous {
			return nil, configErrorf("column_set_file",
				"priority %v on line %d of %s is greater than the previous priority %v", priority, line, name, previous)
		}

		if first, dup := seen[column]; dup {
			return nil, configErrorf("column_set_file",
				"column %d on line %d of %s already appeared on line %d", column, line, name, first)
		}

		seen[column] = line
		previous = priority
		entries = append(entries, PriorityEntry{Column: column, Priority: priority})
	}
	if err := sc.Err(); err != nil {
		return nil, configErrorf("column_set_file", "failed to read %s: %v", name, err)
	}

	return entries, nil
}

// ParsePriorityFile opens path and parses it with ParsePriority.
func ParsePriorityFile(path string) ([]PriorityEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Field: "column_set_file", Message: err.Error()}
	}
	defer f.Close()
	return ParsePriority(f, path)
}

// checkPriority verifies every listed column exists in the file and is
// neither the case nor the outcome column.
func checkPriority(priority []PriorityEntry, spec ColumnSpec, columns int) error {
	for i, e := range priority {
		switch {
		case e.Column < 1 || e.Column > columns:
			return configErrorf("column_set_file",
				"entry %d: column %d is outside the file's %d columns", i+1, e.Column, columns)
		case spec.Case.Is(e.Column):
			return configErrorf("column_set_file", "entry %d: column %d is the case column", i+1, e.Column)
		case spec.Outcome.Is(e.Column):
			return configErrorf("column_set_file", "entry %d: column %d is the outcome column", i+1, e.Column)
		}
	}
	return nil
}
