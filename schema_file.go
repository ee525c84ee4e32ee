package fieldx

import (
	"fmt"

	"github.com/hengadev/fieldx/internal/schemadef"
)

// LoadSchemaFile builds a Schema from the YAML definition at path. Fields
// with a compute expression get a pre-dump hook, registered in field order
// ahead of any hooks passed in opts.
func LoadSchemaFile(path string, opts ...SchemaOption) (*Schema, error) {
	doc, err := schemadef.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return buildSchema(doc, opts)
}

// ParseSchema is LoadSchemaFile over an in-memory definition.
func ParseSchema(data []byte, opts ...SchemaOption) (*Schema, error) {
	doc, err := schemadef.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return buildSchema(doc, opts)
}

func buildSchema(doc *schemadef.Document, opts []SchemaOption) (*Schema, error) {
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: schema '%s': %w", ErrInvalidConfiguration, doc.Name, err)
	}

	fields := make([]Field, 0, len(doc.Fields))
	var hooks []PreDumpHook
	for _, def := range doc.Fields {
		kind, err := ParseKind(def.Kind)
		if err != nil {
			return nil, err
		}
		f := NewField(def.Name, kind)
		if def.Attribute != "" && !def.OutputOnly {
			f = f.From(def.Attribute)
		}
		if def.Required {
			f = f.AsRequired()
		}
		if def.OutputOnly {
			f = f.AsOutputOnly()
		}
		if def.Default != nil {
			f = f.WithDefault(def.Default)
		}
		fields = append(fields, f)

		if def.Compute != "" {
			hook, err := Compute(def.Target(), def.Compute)
			if err != nil {
				return nil, fmt.Errorf("schema '%s': field '%s': %w", doc.Name, def.Name, err)
			}
			hooks = append(hooks, hook)
		}
	}

	if len(hooks) > 0 {
		opts = append([]SchemaOption{WithPreDump(hooks...)}, opts...)
	}
	return NewSchema(doc.Name, fields, opts...)
}
