// Package schemadef reads and writes schema definition documents.
//
// A definition is the YAML form of a schema:
//
//	name: album
//	fields:
//	  - {name: title, kind: string, required: true}
//	  - {name: num_sold, kind: integer}
//	  - {name: big_hit, kind: boolean, output_only: true, compute: "num_sold > 1000000"}
package schemadef

import (
	"fmt"
	"os"
	"strings"

	"github.com/hengadev/errsx"
	"gopkg.in/yaml.v3"
)

// Document is a schema definition.
type Document struct {
	Version string  `yaml:"version,omitempty"`
	Name    string  `yaml:"name"`
	Fields  []Field `yaml:"fields"`
}

// Field is one field of a Document.
type Field struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	Attribute  string `yaml:"attribute,omitempty"`
	Required   bool   `yaml:"required,omitempty"`
	OutputOnly bool   `yaml:"output_only,omitempty"`
	Default    any    `yaml:"default,omitempty"`
	// Compute is an expression evaluated against the source attributes
	// before extraction; its result becomes the field's attribute.
	Compute string `yaml:"compute,omitempty"`
}

// KindNames lists the accepted spellings of each field kind.
var KindNames = []string{"string", "str", "integer", "int", "boolean", "bool", "float", "number"}

// Load reads and parses the definition at path.
func Load(path string) (*Document, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("schema file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a definition. Unknown keys are rejected.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}
	if doc.Version == "" {
		doc.Version = "1"
	}
	return doc, nil
}

// Save writes doc to path as YAML.
func Save(doc *Document, path string) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}

// Default returns the sample album definition written by `fieldx init`.
func Default() *Document {
	return &Document{
		Version: "1",
		Name:    "album",
		Fields: []Field{
			{Name: "title", Kind: "string", Required: true},
			{Name: "artist", Kind: "string", Attribute: "artist_name"},
			{Name: "num_sold", Kind: "integer", Default: 0},
			{Name: "big_hit", Kind: "boolean", OutputOnly: true, Compute: "(num_sold ?? 0) > 1000000"},
		},
	}
}

// Validate reports every structural problem of the document at once. Kind
// spelling is checked here; value and expression checks happen when the
// schema is built.
func (d *Document) Validate() error {
	errs := errsx.Map{}

	if strings.TrimSpace(d.Name) == "" {
		errs.Set("name", fmt.Errorf("schema name cannot be empty"))
	}
	if d.Version != "1" {
		errs.Set("version", fmt.Errorf("unsupported version '%s'", d.Version))
	}
	if len(d.Fields) == 0 {
		errs.Set("fields", fmt.Errorf("at least one field is required"))
	}

	seen := make(map[string]bool, len(d.Fields))
	for i, f := range d.Fields {
		key := fmt.Sprintf("fields[%d]", i)
		if strings.TrimSpace(f.Name) == "" {
			errs.Set(key, fmt.Errorf("field name cannot be empty"))
			continue
		}
		key = fmt.Sprintf("fields[%d] '%s'", i, f.Name)
		switch {
		case seen[f.Name]:
			errs.Set(key, fmt.Errorf("field name declared more than once"))
		case !validKind(f.Kind):
			errs.Set(key, fmt.Errorf("unknown kind '%s': expected one of %s", f.Kind, strings.Join(KindNames, ", ")))
		case f.Compute != "" && f.Default != nil:
			errs.Set(key, fmt.Errorf("compute and default cannot be used together"))
		case f.OutputOnly && f.Compute == "" && f.Attribute != "":
			errs.Set(key, fmt.Errorf("output-only field cannot read attribute '%s'", f.Attribute))
		}
		seen[f.Name] = true
	}

	return errs.AsError()
}

// Target returns the attribute a computed field's expression writes to.
func (f Field) Target() string {
	if f.Attribute != "" && !f.OutputOnly {
		return f.Attribute
	}
	return f.Name
}

func validKind(kind string) bool {
	kind = strings.ToLower(strings.TrimSpace(kind))
	for _, k := range KindNames {
		if k == kind {
			return true
		}
	}
	return false
}
