package fieldx

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hengadev/errsx"

	"github.com/hengadev/fieldx/internal/monitoring"
)

// Config holds serializer settings that are usually read from the
// environment rather than set in code.
//
// Example usage:
//
//	cfg, err := fieldx.LoadConfigFromEnvironment()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s, err := fieldx.New(schema, cfg.Options()...)
type Config struct {
	// Format is the text encoding: json or yaml. Default: json
	Format Format

	// JSONStyle selects separators for JSON output. Default: spaced
	JSONStyle JSONStyle

	// Indent renders one member per line when above zero. Default: 0
	Indent int

	// Coercion is strict or lenient. Default: strict
	Coercion CoercionMode

	// Parallelism is how many elements DumpMany processes at once. Default: 1
	Parallelism int

	// LogLevel is debug, info, warn or error. Default: info
	LogLevel string

	// LogFormat is json, text or console. Default: text
	LogFormat string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Format:      DefaultFormat,
		JSONStyle:   DefaultJSONStyle,
		Indent:      DefaultIndent,
		Coercion:    DefaultCoercion,
		Parallelism: DefaultParallelism,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
	}
}

// Validate applies defaults to empty fields and reports every invalid
// setting at once as an errsx.Map keyed by setting.
func (c *Config) Validate() error {
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.JSONStyle == "" {
		c.JSONStyle = DefaultJSONStyle
	}
	if c.Coercion == "" {
		c.Coercion = DefaultCoercion
	}
	if c.Parallelism == 0 {
		c.Parallelism = DefaultParallelism
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}

	errs := errsx.Map{}
	probe := &Serializer{}
	if err := WithFormat(c.Format)(probe); err != nil {
		errs.Set("format", err)
	} else {
		c.Format = probe.format
	}
	if err := WithJSONStyle(c.JSONStyle)(probe); err != nil {
		errs.Set("json_style", err)
	} else {
		c.JSONStyle = probe.style
	}
	if err := WithIndent(c.Indent)(probe); err != nil {
		errs.Set("indent", err)
	}
	if err := WithCoercion(c.Coercion)(probe); err != nil {
		errs.Set("coercion", err)
	} else {
		c.Coercion = probe.coercion
	}
	if err := WithParallelism(c.Parallelism)(probe); err != nil {
		errs.Set("parallelism", err)
	}
	if _, err := monitoring.ParseLevel(c.LogLevel); err != nil {
		errs.Set("log_level", err)
	}
	if _, err := monitoring.ParseFormat(c.LogFormat); err != nil {
		errs.Set("log_format", err)
	}

	return errs.AsError()
}

// Options maps the configuration to serializer options. Call Validate first.
func (c Config) Options() []Option {
	return []Option{
		WithFormat(c.Format),
		WithJSONStyle(c.JSONStyle),
		WithIndent(c.Indent),
		WithCoercion(c.Coercion),
		WithParallelism(c.Parallelism),
	}
}

// Logger builds a structured logger writing to w with the configured level
// and format.
func (c Config) Logger(w io.Writer, component string) (*slog.Logger, error) {
	level, err := monitoring.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	format, err := monitoring.ParseFormat(c.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	logger := monitoring.NewStructuredLogger(monitoring.LoggerConfig{
		Level:     level,
		Format:    format,
		Output:    w,
		Component: strings.TrimSpace(component),
	})
	return logger.Slog(), nil
}
