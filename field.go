package fieldx

// Field declares one output field of a Schema.
//
// Fields are values: the modifier methods return a modified copy, so a Field
// can be declared once and reused across schemas.
//
//	fieldx.Integer("num_sold").From("copies").AsRequired()
type Field struct {
	// Name is the key under which the value appears in the record.
	Name string

	// Attribute is the source attribute read for this field. Empty means Name.
	Attribute string

	Kind     Kind
	Required bool

	// OutputOnly marks a field that is never read from the raw source object.
	// A pre-dump hook must attach an attribute named after the field.
	OutputOnly bool

	// Default is emitted when a non-required attribute is absent.
	Default    any
	hasDefault bool
}

func String(name string) Field  { return Field{Name: name, Kind: KindString} }
func Integer(name string) Field { return Field{Name: name, Kind: KindInteger} }
func Boolean(name string) Field { return Field{Name: name, Kind: KindBoolean} }
func Float(name string) Field   { return Field{Name: name, Kind: KindFloat} }

// NewField declares a field of an arbitrary kind.
func NewField(name string, kind Kind) Field {
	return Field{Name: name, Kind: kind}
}

// From reads the value from attr instead of the field name.
func (f Field) From(attr string) Field {
	f.Attribute = attr
	return f
}

func (f Field) AsRequired() Field {
	f.Required = true
	return f
}

func (f Field) AsOutputOnly() Field {
	f.OutputOnly = true
	return f
}

// WithDefault sets the value emitted when the attribute is absent.
// The default goes through the same coercion as a source value.
func (f Field) WithDefault(v any) Field {
	f.Default = v
	f.hasDefault = true
	return f
}

// HasDefault reports whether WithDefault was called.
func (f Field) HasDefault() bool {
	return f.hasDefault
}

// SourceAttribute returns the attribute the field is read from.
func (f Field) SourceAttribute() string {
	if f.OutputOnly || f.Attribute == "" {
		return f.Name
	}
	return f.Attribute
}
