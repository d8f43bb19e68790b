package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
// Checks that need the original file's dimensions happen later, when the
// sets are planned.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateInput()...)
	errors = append(errors, c.validateSets()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateInput() ValidationErrors {
	var errors ValidationErrors

	if c.Input.File == "" {
		errors = append(errors, ValidationError{
			Field:   "input.file",
			Message: "original data file is required",
		})
	}

	if len(c.Input.Delimiter) != 1 && c.Input.Delimiter != `\t` {
		errors = append(errors, ValidationError{
			Field:   "input.delimiter",
			Message: "delimiter must be a single character",
		})
	}

	return errors
}

func (c *Config) validateSets() ValidationErrors {
	var errors ValidationErrors
	s := &c.Sets

	if s.Count < 1 {
		errors = append(errors, ValidationError{
			Field:   "sets.count",
			Message: fmt.Sprintf("set count %d is less than 1", s.Count),
		})
	}

	if s.First < 1 {
		errors = append(errors, ValidationError{
			Field:   "sets.first",
			Message: fmt.Sprintf("first set number %d is less than 1", s.First),
		})
	}

	switch s.Mode {
	case ModeTraining:
		errors = append(errors, c.validateTrainingSets()...)
	case ModeGeneric:
		errors = append(errors, c.validateGenericSets()...)
	default:
		errors = append(errors, ValidationError{
			Field:   "sets.mode",
			Message: "mode must be 'training' or 'generic'",
		})
	}

	if s.CaseColumn < 0 {
		errors = append(errors, ValidationError{
			Field:   "sets.case_column",
			Message: fmt.Sprintf("case column ordinal %d is less than 1", s.CaseColumn),
		})
	}

	if s.OutcomeColumn < 0 {
		errors = append(errors, ValidationError{
			Field:   "sets.outcome_column",
			Message: fmt.Sprintf("outcome column ordinal %d is less than 1", s.OutcomeColumn),
		})
	}

	if s.CaseColumn > 0 && s.CaseColumn == s.OutcomeColumn {
		errors = append(errors, ValidationError{
			Field:   "sets.outcome_column",
			Message: fmt.Sprintf("case column and outcome column are the same, %d", s.CaseColumn),
		})
	}

	return errors
}

func (c *Config) validateTrainingSets() ValidationErrors {
	var errors ValidationErrors
	s := &c.Sets

	if s.TrainingPercent <= 0 || s.TrainingPercent >= 1 {
		errors = append(errors, ValidationError{
			Field:   "sets.training_percent",
			Message: "training percent must be between 0 and 1, exclusive",
		})
	}

	if s.TrainingRows < 1 {
		errors = append(errors, ValidationError{
			Field:   "sets.training_rows",
			Message: fmt.Sprintf("training row count %d is less than 1", s.TrainingRows),
		})
	}

	if s.ValidationRows < 1 {
		errors = append(errors, ValidationError{
			Field:   "sets.validation_rows",
			Message: fmt.Sprintf("validation row count %d is less than 1", s.ValidationRows),
		})
	}

	if s.CaseColumn == 0 {
		errors = append(errors, ValidationError{
			Field:   "sets.case_column",
			Message: "case column is required for training/validation sets",
		})
	}

	if s.OutcomeColumn == 0 {
		errors = append(errors, ValidationError{
			Field:   "sets.outcome_column",
			Message: "outcome column is required for training/validation sets",
		})
	}

	if s.GenericRows != 0 {
		errors = append(errors, ValidationError{
			Field:   "sets.generic_rows",
			Message: "generic row count is not allowed for training/validation sets",
		})
	}

	switch {
	case s.ColumnSetFile != "" && s.ColumnSetStart == 0:
		errors = append(errors, ValidationError{
			Field:   "sets.column_set_start",
			Message: fmt.Sprintf("column set file %s was specified without a column set start", s.ColumnSetFile),
		})
	case s.ColumnSetFile == "" && s.ColumnSetStart != 0:
		errors = append(errors, ValidationError{
			Field:   "sets.column_set_file",
			Message: fmt.Sprintf("column set start %d was specified without a column set file", s.ColumnSetStart),
		})
	}

	if s.ColumnSetStart < 0 {
		errors = append(errors, ValidationError{
			Field:   "sets.column_set_start",
			Message: fmt.Sprintf("column set start %d is less than 1", s.ColumnSetStart),
		})
	}

	if s.ColumnSetFile == "" && s.ColumnCount < 1 {
		errors = append(errors, ValidationError{
			Field:   "sets.column_count",
			Message: fmt.Sprintf("column count %d is less than 1", s.ColumnCount),
		})
	}

	return errors
}

func (c *Config) validateGenericSets() ValidationErrors {
	var errors ValidationErrors
	s := &c.Sets

	if s.GenericRows < 1 {
		errors = append(errors, ValidationError{
			Field:   "sets.generic_rows",
			Message: fmt.Sprintf("generic row count %d is less than 1", s.GenericRows),
		})
	}

	if s.ColumnCount < 1 {
		errors = append(errors, ValidationError{
			Field:   "sets.column_count",
			Message: fmt.Sprintf("column count %d is less than 1", s.ColumnCount),
		})
	}

	unallowed := []struct {
		field string
		set   bool
	}{
		{"sets.training_percent", s.TrainingPercent != 0},
		{"sets.training_rows", s.TrainingRows != 0},
		{"sets.validation_rows", s.ValidationRows != 0},
		{"sets.column_set_file", s.ColumnSetFile != ""},
		{"sets.column_set_start", s.ColumnSetStart != 0},
	}
	for _, u := range unallowed {
		if u.set {
			errors = append(errors, ValidationError{
				Field:   u.field,
				Message: "not allowed when creating generic sets",
			})
		}
	}

	return errors
}

func (c *Config) validateOutput() ValidationErrors {
	var errors ValidationErrors

	if c.Output.Dir == "" {
		errors = append(errors, ValidationError{
			Field:   "output.dir",
			Message: "output directory is required",
		})
	}

	if c.Output.MaxOpenFiles < 0 {
		errors = append(errors, ValidationError{
			Field:   "output.max_open_files",
			Message: "max_open_files cannot be negative",
		})
	}

	if c.Output.ReservedFiles < 0 {
		errors = append(errors, ValidationError{
			Field:   "output.reserved_files",
			Message: "reserved_files cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
