package fieldx

import (
	"errors"
	"fmt"
)

var (
	// Schema and view errors
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// Field errors
	ErrMissingField   = errors.New("missing required field")
	ErrTypeConversion = errors.New("type conversion failed")

	// Text errors
	ErrInvalidFormat = errors.New("invalid format")
)

// FieldError describes a failure to produce one field of one record.
// It unwraps to ErrMissingField or ErrTypeConversion.
type FieldError struct {
	Schema string
	Field  string
	// Source is the dynamic type of the source object being dumped.
	Source string
	Kind   Kind
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("schema '%s': field '%s' (%s) on %s: %v", e.Schema, e.Field, e.Kind, e.Source, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ItemError reports which element of a DumpMany call failed.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

func NewConfigurationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

func NewMissingFieldError(schema, field string, kind Kind, source Source, reason string) error {
	return &FieldError{
		Schema: schema,
		Field:  field,
		Source: sourceName(source),
		Kind:   kind,
		Err:    fmt.Errorf("%w: %s", ErrMissingField, reason),
	}
}

func NewTypeCoercionError(schema, field string, kind Kind, source Source, cause error) error {
	return &FieldError{
		Schema: schema,
		Field:  field,
		Source: sourceName(source),
		Kind:   kind,
		Err:    fmt.Errorf("%w: %w", ErrTypeConversion, cause),
	}
}

func sourceName(src Source) string {
	base := Base(src)
	if s, ok := base.(*structSource); ok {
		return s.value.Type().String()
	}
	return fmt.Sprintf("%T", base)
}

// IsConfigurationError returns true if the error comes from a malformed schema,
// an invalid field view or invalid serializer options.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

// IsMissingFieldError returns true if a required or output-only field could not be populated.
func IsMissingFieldError(err error) bool {
	return errors.Is(err, ErrMissingField)
}

// IsTypeCoercionError returns true if a value did not match its declared kind.
func IsTypeCoercionError(err error) bool {
	return errors.Is(err, ErrTypeConversion)
}

// IsValidationError returns true if the error represents a data problem rather
// than a programming problem.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrTypeConversion) ||
		errors.Is(err, ErrInvalidFormat)
}
