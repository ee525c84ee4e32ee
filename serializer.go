package fieldx

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/hengadev/fieldx/internal/monitoring"
	"github.com/hengadev/fieldx/internal/textenc"
)

// Serializer dumps source objects through a Schema.
//
// A Serializer holds no per-call state and is safe for concurrent use as long
// as the schema's hooks are.
type Serializer struct {
	schema *Schema

	only       []string
	exclude    []string
	hasOnly    bool
	hasExclude bool
	// active holds the indexes of the emitted fields, in declaration order.
	active []int

	format      Format
	style       JSONStyle
	indent      int
	coercion    CoercionMode
	parallelism int

	logger        *slog.Logger
	observability monitoring.ObservabilityHook
}

// New builds a Serializer for schema.
//
// Only and Exclude are mutually exclusive and must name declared fields;
// violations fail with ErrInvalidConfiguration.
func New(schema *Schema, opts ...Option) (*Serializer, error) {
	if schema == nil {
		return nil, NewConfigurationError("schema cannot be nil")
	}
	s := &Serializer{
		schema:        schema,
		format:        FormatJSON,
		style:         StyleSpaced,
		coercion:      CoercionStrict,
		parallelism:   1,
		logger:        discardLogger(),
		observability: &monitoring.NoOpObservabilityHook{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
		}
	}
	if err := s.resolveView(); err != nil {
		return nil, err
	}
	return s, nil
}

// View returns a Serializer sharing the schema and settings of s with a
// different field selection. Pass nil for the side that is not used.
func (s *Serializer) View(only, exclude []string) (*Serializer, error) {
	view := *s
	view.only, view.exclude = only, exclude
	view.hasOnly, view.hasExclude = only != nil, exclude != nil
	if err := view.resolveView(); err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *Serializer) resolveView() error {
	if s.hasOnly && s.hasExclude {
		return NewConfigurationError("only and exclude cannot be used together")
	}

	declared := s.schema.Names()
	requested := s.only
	if s.hasExclude {
		requested = s.exclude
	}
	if unknown := lo.Without(lo.Uniq(requested), declared...); len(unknown) > 0 {
		return NewConfigurationError("schema '%s' does not declare %v", s.schema.name, unknown)
	}

	s.active = s.active[:0:0]
	for i, f := range s.schema.fields {
		switch {
		case s.hasOnly && !lo.Contains(s.only, f.Name):
			continue
		case s.hasExclude && lo.Contains(s.exclude, f.Name):
			continue
		}
		s.active = append(s.active, i)
	}
	return nil
}

func (s *Serializer) Schema() *Schema { return s.schema }

// Fields returns the names of the fields this Serializer emits.
func (s *Serializer) Fields() []string {
	return lo.Map(s.active, func(i int, _ int) string { return s.schema.fields[i].Name })
}

// Dump runs the pre-dump hooks on src, extracts and coerces every active
// field in declaration order, then runs the post-dump hooks.
func (s *Serializer) Dump(ctx context.Context, src Source) (Record, error) {
	start := time.Now()
	metadata := s.metadata("dump")
	metadata["count"] = 1
	s.observability.OnProcessStart(ctx, "Dump", metadata)

	rec, err := s.dump(ctx, src)

	if err != nil {
		s.observability.OnError(ctx, "Dump", err, metadata)
	}
	s.observability.OnProcessComplete(ctx, "Dump", time.Since(start), err, metadata)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// DumpMany dumps every element of srcs and returns the records in input
// order. The first failure aborts the call; no partial collection is
// returned. The error is an *ItemError carrying the failing index.
func (s *Serializer) DumpMany(ctx context.Context, srcs []Source) (Collection, error) {
	start := time.Now()
	metadata := s.metadata("dump_many")
	metadata["count"] = len(srcs)
	s.observability.OnProcessStart(ctx, "DumpMany", metadata)

	out, err := s.dumpMany(ctx, srcs)

	if err != nil {
		s.observability.OnError(ctx, "DumpMany", err, metadata)
	}
	s.observability.OnProcessComplete(ctx, "DumpMany", time.Since(start), err, metadata)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Serializer) dumpMany(ctx context.Context, srcs []Source) (Collection, error) {
	out := make(Collection, len(srcs))
	if s.parallelism <= 1 || len(srcs) < 2 {
		for i, src := range srcs {
			if err := ctx.Err(); err != nil {
				return nil, &ItemError{Index: i, Err: err}
			}
			rec, err := s.dump(ctx, src)
			if err != nil {
				return nil, &ItemError{Index: i, Err: err}
			}
			out[i] = rec
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, src := range srcs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return &ItemError{Index: i, Err: err}
			}
			rec, err := s.dump(gctx, src)
			if err != nil {
				return &ItemError{Index: i, Err: err}
			}
			out[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Serializer) dump(ctx context.Context, src Source) (Record, error) {
	if src == nil {
		return Record{}, NewConfigurationError("source cannot be nil")
	}

	for i, hook := range s.schema.preDump {
		next, err := hook(ctx, src)
		if err != nil {
			return Record{}, fmt.Errorf("schema '%s': pre-dump hook %d: %w", s.schema.name, i, err)
		}
		if next == nil {
			return Record{}, NewConfigurationError("schema '%s': pre-dump hook %d returned a nil source", s.schema.name, i)
		}
		src = next
	}

	rec := NewRecord()
	for _, idx := range s.active {
		f := s.schema.fields[idx]
		value, ok, err := s.extract(f, src)
		if err != nil {
			return Record{}, err
		}
		if ok {
			rec.m.Set(f.Name, value)
		}
	}

	for i, hook := range s.schema.postDump {
		next, err := hook(ctx, rec)
		if err != nil {
			return Record{}, fmt.Errorf("schema '%s': post-dump hook %d: %w", s.schema.name, i, err)
		}
		rec = next
		rec.init()
	}

	s.logger.DebugContext(ctx, "dumped record",
		slog.String("schema", s.schema.name),
		slog.String("source", sourceName(src)),
		slog.Int("fields", rec.Len()),
	)
	return rec, nil
}

// extract reads and coerces one field. ok is false when the field is
// omitted from the record.
func (s *Serializer) extract(f Field, src Source) (value any, ok bool, err error) {
	raw, found := src.Get(f.SourceAttribute())
	if !found {
		switch {
		case f.OutputOnly:
			return nil, false, NewMissingFieldError(s.schema.name, f.Name, f.Kind, src,
				"output-only field was not attached by a pre-dump hook")
		case f.Required:
			return nil, false, NewMissingFieldError(s.schema.name, f.Name, f.Kind, src,
				fmt.Sprintf("attribute '%s' is absent", f.SourceAttribute()))
		case f.hasDefault:
			return f.Default, true, nil
		default:
			return nil, false, nil
		}
	}

	value, err = f.Kind.coerce(raw, s.coercion)
	if err != nil {
		return nil, false, NewTypeCoercionError(s.schema.name, f.Name, f.Kind, src, err)
	}
	return value, true, nil
}

func (s *Serializer) metadata(operation string) map[string]any {
	return map[string]any{
		"operation_type": operation,
		"operation_id":   uuid.NewString(),
		"schema":         s.schema.name,
	}
}

// codec returns the text codec matching the serializer settings.
func (s *Serializer) codec() textenc.Codec {
	if s.format == FormatYAML {
		return textenc.YAML{Indent: s.indent}
	}
	style := textenc.Spaced
	if s.style == StyleCompact {
		style = textenc.Compact
	}
	return textenc.JSON{Style: style, Indent: s.indent}
}
