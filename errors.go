package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations. Every typed error in this
// package also matches ErrConfig.
var (
	// ErrConfig is the common kind of every engine error.
	ErrConfig = errors.New("config error")

	// ErrUnknownField indicates a field name that is not part of the schema.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidValue indicates a value that fails its field's type constraint
	// or would exceed the maximum line length.
	ErrInvalidValue = errors.New("invalid value")

	// ErrPresetNotFound indicates a preset file that could not be opened.
	ErrPresetNotFound = errors.New("preset does not exist")

	// ErrParse indicates malformed syntax in a config file.
	ErrParse = errors.New("malformed config file")

	// ErrConfigNotFound is returned by Builder.Build when the configured file
	// does not exist. It is not fatal: the store holds defaults.
	ErrConfigNotFound = errors.New("configuration file not found")
)

// UnknownFieldError reports a field name missing from the schema.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s is not a valid option", e.Field)
}

// Is implements error matching for UnknownFieldError.
func (e *UnknownFieldError) Is(target error) bool {
	return target == ErrUnknownField || target == ErrConfig
}

// InvalidValueError reports a value rejected by a field's constraint.
type InvalidValueError struct {
	// Field is the canonical field name, empty when the value was checked
	// against a bare FieldType.
	Field string
	// Value is the offending value, native or serialized.
	Value any
	// Constraint describes what the value violated.
	Constraint string
}

func (e *InvalidValueError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v is invalid: %s", e.Value, e.Constraint)
	}
	return fmt.Sprintf("%v is invalid for field %s: %s", e.Value, e.Field, e.Constraint)
}

// Is implements error matching for InvalidValueError.
func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue || target == ErrConfig
}

// PresetNotFoundError reports a preset file that could not be opened.
type PresetNotFoundError struct {
	Path string
	Err  error
}

func (e *PresetNotFoundError) Error() string {
	return fmt.Sprintf("preset %s does not exist: %v", e.Path, e.Err)
}

// Is implements error matching for PresetNotFoundError.
func (e *PresetNotFoundError) Is(target error) bool {
	return target == ErrPresetNotFound || target == ErrConfig
}

// Unwrap returns the underlying open error.
func (e *PresetNotFoundError) Unwrap() error {
	return e.Err
}

// ParseError represents malformed syntax while reading a config file.
type ParseError struct {
	// Line is the 1-based line number.
	Line int
	// Text is the offending line.
	Text string
	// Message describes the parse error.
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %s: %q", e.Line, e.Message, e.Text)
}

// Is implements error matching for ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse || target == ErrConfig
}

// invalid builds a field-less InvalidValueError for a FieldType check.
func invalid(value any, format string, args ...any) error {
	return &InvalidValueError{Value: value, Constraint: fmt.Sprintf(format, args...)}
}

// withField attaches the field name to an InvalidValueError produced by a
// FieldType; other errors pass through.
func withField(name string, err error) error {
	var ive *InvalidValueError
	if errors.As(err, &ive) && ive.Field == "" {
		return &InvalidValueError{Field: name, Value: ive.Value, Constraint: ive.Constraint}
	}
	return err
}
