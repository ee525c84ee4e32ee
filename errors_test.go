package fieldx

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{"Invalid Configuration", ErrInvalidConfiguration, ErrInvalidConfiguration},
		{"Missing Field", ErrMissingField, ErrMissingField},
		{"Type Conversion", ErrTypeConversion, ErrTypeConversion},
		{"Invalid Format", ErrInvalidFormat, ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tt.err)
			if !errors.Is(wrapped, tt.expected) {
				t.Errorf("Expected errors.Is(wrapped, %v) to be true", tt.expected)
			}
		})
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		isConfig     bool
		isMissing    bool
		isCoercion   bool
		isValidation bool
	}{
		{
			name:     "Configuration error",
			err:      NewConfigurationError("schema '%s' declares no fields", "dog"),
			isConfig: true,
		},
		{
			name:         "Missing field",
			err:          NewMissingFieldError("dog", "name", KindString, Object{}, "attribute 'name' is absent"),
			isMissing:    true,
			isValidation: true,
		},
		{
			name:         "Type coercion",
			err:          NewTypeCoercionError("dog", "age", KindInteger, Object{}, errors.New("cannot use bool as integer")),
			isCoercion:   true,
			isValidation: true,
		},
		{
			name:         "Item error keeps classification",
			err:          &ItemError{Index: 3, Err: NewTypeCoercionError("dog", "age", KindInteger, Object{}, errors.New("bad"))},
			isCoercion:   true,
			isValidation: true,
		},
		{
			name:         "Invalid format",
			err:          fmt.Errorf("%w: decode json", ErrInvalidFormat),
			isValidation: true,
		},
		{
			name: "Unrelated error",
			err:  errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConfigurationError(tt.err); got != tt.isConfig {
				t.Errorf("IsConfigurationError() = %v, want %v", got, tt.isConfig)
			}
			if got := IsMissingFieldError(tt.err); got != tt.isMissing {
				t.Errorf("IsMissingFieldError() = %v, want %v", got, tt.isMissing)
			}
			if got := IsTypeCoercionError(tt.err); got != tt.isCoercion {
				t.Errorf("IsTypeCoercionError() = %v, want %v", got, tt.isCoercion)
			}
			if got := IsValidationError(tt.err); got != tt.isValidation {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.isValidation)
			}
		})
	}
}

func TestFieldErrorMessage(t *testing.T) {
	type Dog struct{ Name string }
	src, err := FromStruct(Dog{})
	if err != nil {
		t.Fatal(err)
	}

	cause := errors.New("cannot use int as string")
	err = NewTypeCoercionError("dog", "name", KindString, Extend(src, map[string]any{"x": 1}), cause)

	want := "schema 'dog': field 'name' (string) on fieldx.Dog: type conversion failed: cannot use int as string"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("expected the cause to be reachable through errors.Is")
	}

	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Kind != KindString {
		t.Errorf("expected a *FieldError of kind string, got %#v", err)
	}

	item := &ItemError{Index: 1, Err: err}
	if item.Error() != "item 1: "+want {
		t.Errorf("ItemError.Error() = %q", item.Error())
	}
}
