package sets

import (
	"errors"
	"fmt"
)

// Error classes. Failures reported by this package match one of them with
// errors.Is.
var (
	// ErrConfig marks invalid or inconsistent parameters. Always reported
	// before any output file is created.
	ErrConfig = errors.New("invalid set parameters")
	// ErrInputFormat marks an original file that disagrees with its info.
	ErrInputFormat = errors.New("original file format mismatch")
	// ErrResource marks a batch that cannot fit the open file capacity.
	ErrResource = errors.New("insufficient output file capacity")
	// ErrIO marks a failure opening, writing or closing a set file.
	ErrIO = errors.New("set file i/o failure")
)

// ConfigError describes one invalid parameter.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func configErrorf(field, format string, args ...interface{}) error {
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// InputFormatError describes a structural mismatch found while scanning.
// Row is the data row ordinal, or 0 for the header and whole-file checks.
type InputFormatError struct {
	Pass    int
	Row     int
	Message string
}

func (e *InputFormatError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("pass %d: %s", e.Pass, e.Message)
	}
	return fmt.Sprintf("pass %d, row %d: %s", e.Pass, e.Row, e.Message)
}

func (e *InputFormatError) Is(target error) bool { return target == ErrInputFormat }

// ResourceError reports that a scheduling unit needs more simultaneously
// open files than the capacity allows.
type ResourceError struct {
	Capacity int
	Required int
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%d output files must be open together but capacity is %d", e.Required, e.Capacity)
}

func (e *ResourceError) Is(target error) bool { return target == ErrResource }

// IOError wraps a file failure with the set and pass it happened in.
type IOError struct {
	Op   string
	Set  string
	Pass int
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Set == "" {
		return fmt.Sprintf("pass %d: %s %s: %v", e.Pass, e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("pass %d, set %s: %s %s: %v", e.Pass, e.Set, e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }
