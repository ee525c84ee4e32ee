package fieldx

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hengadev/fieldx/internal/monitoring"
)

// Format selects the text encoding used by EncodeText.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// JSONStyle selects separators for JSON output.
type JSONStyle string

const (
	// StyleSpaced renders {"a": 1, "b": true}.
	StyleSpaced JSONStyle = "spaced"
	// StyleCompact renders {"a":1,"b":true}.
	StyleCompact JSONStyle = "compact"
)

// CoercionMode selects how values that do not exactly match a field kind
// are handled.
type CoercionMode string

const (
	// CoercionStrict fails with ErrTypeConversion on any ambiguous value.
	CoercionStrict CoercionMode = "strict"
	// CoercionLenient stringifies scalars for string fields and truncates
	// fractional numbers for integer fields.
	CoercionLenient CoercionMode = "lenient"
)

// Option configures a Serializer.
type Option func(s *Serializer) error

// Only restricts output to the named fields. Every name must be declared.
func Only(names ...string) Option {
	return func(s *Serializer) error {
		if names == nil {
			names = []string{}
		}
		s.only = append(s.only, names...)
		s.hasOnly = true
		return nil
	}
}

// Exclude drops the named fields from output. Every name must be declared.
func Exclude(names ...string) Option {
	return func(s *Serializer) error {
		s.exclude = append(s.exclude, names...)
		s.hasExclude = true
		return nil
	}
}

func WithFormat(format Format) Option {
	return func(s *Serializer) error {
		switch Format(strings.ToLower(string(format))) {
		case FormatJSON:
			s.format = FormatJSON
		case FormatYAML:
			s.format = FormatYAML
		default:
			return fmt.Errorf("unsupported format '%s': expected json or yaml", format)
		}
		return nil
	}
}

func WithJSONStyle(style JSONStyle) Option {
	return func(s *Serializer) error {
		switch JSONStyle(strings.ToLower(string(style))) {
		case StyleSpaced:
			s.style = StyleSpaced
		case StyleCompact:
			s.style = StyleCompact
		default:
			return fmt.Errorf("unsupported json style '%s': expected spaced or compact", style)
		}
		return nil
	}
}

// WithIndent renders one field per line, indented by n spaces per level.
// Zero keeps single-line output.
func WithIndent(n int) Option {
	return func(s *Serializer) error {
		if n < 0 || n > MaxIndent {
			return fmt.Errorf("indent must be between 0 and %d, got %d", MaxIndent, n)
		}
		s.indent = n
		return nil
	}
}

func WithCoercion(mode CoercionMode) Option {
	return func(s *Serializer) error {
		switch CoercionMode(strings.ToLower(string(mode))) {
		case CoercionStrict:
			s.coercion = CoercionStrict
		case CoercionLenient:
			s.coercion = CoercionLenient
		default:
			return fmt.Errorf("unsupported coercion mode '%s': expected strict or lenient", mode)
		}
		return nil
	}
}

// WithParallelism sets how many elements DumpMany processes at once.
func WithParallelism(n int) Option {
	return func(s *Serializer) error {
		if n < 1 {
			return fmt.Errorf("parallelism must be at least 1, got %d", n)
		}
		s.parallelism = n
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Serializer) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		s.logger = logger
		return nil
	}
}

// WithObservability installs a hook notified at the start and end of every
// Dump and DumpMany call.
func WithObservability(hook monitoring.ObservabilityHook) Option {
	return func(s *Serializer) error {
		if hook == nil {
			return fmt.Errorf("observability hook cannot be nil")
		}
		s.observability = hook
		return nil
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
