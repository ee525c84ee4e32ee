package fieldx

import (
	"context"
	"fmt"
	"strings"

	"github.com/hengadev/errsx"
	"github.com/samber/lo"
)

// PreDumpHook runs on the source before field extraction. It returns the
// Source handed to the next hook; use Extend to attach computed attributes.
type PreDumpHook func(ctx context.Context, src Source) (Source, error)

// PostDumpHook runs on the assembled record and returns the record handed to
// the next hook.
type PostDumpHook func(ctx context.Context, rec Record) (Record, error)

// Schema is an immutable, ordered set of fields plus the hooks run around
// extraction. Build it once with NewSchema and share it.
type Schema struct {
	name      string
	fields    []Field
	positions map[string]int
	preDump   []PreDumpHook
	postDump  []PostDumpHook
}

// SchemaOption configures a Schema under construction.
type SchemaOption func(s *Schema) error

// WithPreDump appends pre-dump hooks. Hooks run in registration order.
func WithPreDump(hooks ...PreDumpHook) SchemaOption {
	return func(s *Schema) error {
		for i, h := range hooks {
			if h == nil {
				return fmt.Errorf("pre-dump hook %d is nil", len(s.preDump)+i)
			}
		}
		s.preDump = append(s.preDump, hooks...)
		return nil
	}
}

// WithPostDump appends post-dump hooks. Hooks run in registration order.
func WithPostDump(hooks ...PostDumpHook) SchemaOption {
	return func(s *Schema) error {
		for i, h := range hooks {
			if h == nil {
				return fmt.Errorf("post-dump hook %d is nil", len(s.postDump)+i)
			}
		}
		s.postDump = append(s.postDump, hooks...)
		return nil
	}
}

// NewSchema validates fields and options and returns the Schema.
//
// Every problem found is reported at once; the returned error matches
// ErrInvalidConfiguration and wraps an errsx.Map keyed by the offending
// field or option.
func NewSchema(name string, fields []Field, opts ...SchemaOption) (*Schema, error) {
	s := &Schema{
		name:      name,
		fields:    make([]Field, 0, len(fields)),
		positions: make(map[string]int, len(fields)),
	}

	errs := errsx.Map{}
	if len(fields) == 0 {
		errs.Set("fields", fmt.Errorf("schema declares no fields"))
	}

	names := lo.Map(fields, func(f Field, _ int) string { return f.Name })
	for _, dup := range lo.FindDuplicates(names) {
		errs.Set(fmt.Sprintf("field '%s'", dup), fmt.Errorf("field name declared more than once"))
	}

	for i, f := range fields {
		key := fmt.Sprintf("field '%s'", f.Name)
		if strings.TrimSpace(f.Name) == "" {
			errs.Set(fmt.Sprintf("field %d", i), fmt.Errorf("field name cannot be empty"))
			continue
		}
		if !f.Kind.Valid() {
			errs.Set(key, fmt.Errorf("invalid kind %d", f.Kind))
			continue
		}
		if f.OutputOnly && f.Attribute != "" && f.Attribute != f.Name {
			errs.Set(key, fmt.Errorf("output-only field cannot read attribute '%s'", f.Attribute))
			continue
		}
		if f.hasDefault {
			if f.OutputOnly {
				errs.Set(key, fmt.Errorf("output-only field cannot declare a default"))
				continue
			}
			v, err := f.Kind.coerce(f.Default, CoercionStrict)
			if err != nil {
				errs.Set(key, fmt.Errorf("default value: %w", err))
				continue
			}
			f.Default = v
		}
		if _, seen := s.positions[f.Name]; seen {
			continue
		}
		s.positions[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}

	for i, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(s); err != nil {
			errs.Set(fmt.Sprintf("option %d", i), err)
		}
	}

	if err := errs.AsError(); err != nil {
		return nil, fmt.Errorf("%w: schema '%s': %w", ErrInvalidConfiguration, name, err)
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error. Intended for package
// level schema declarations.
func MustSchema(name string, fields []Field, opts ...SchemaOption) *Schema {
	s, err := NewSchema(name, fields, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Name() string { return s.name }

// Fields returns a copy of the declared fields in declaration order.
func (s *Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Field looks up a declared field by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.positions[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	return lo.Map(s.fields, func(f Field, _ int) string { return f.Name })
}

// Hooks reports how many pre- and post-dump hooks are registered.
func (s *Schema) Hooks() (pre, post int) {
	return len(s.preDump), len(s.postDump)
}
