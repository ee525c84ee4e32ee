// Package fieldx turns application objects into ordered, typed records and
// their JSON or YAML text, driven by a declared schema.
//
// A Schema is an ordered list of fields. Each field names the output key,
// the source attribute it reads, its kind (string, integer, boolean or
// float) and whether it is required or output-only. Output-only fields are
// never read from the source directly; a pre-dump hook attaches them.
//
// # Quick Start
//
//	schema := fieldx.MustSchema("dog", []fieldx.Field{
//	    fieldx.String("name").AsRequired(),
//	    fieldx.String("breed"),
//	    fieldx.Boolean("tail_wagging"),
//	})
//
//	s, err := fieldx.New(schema)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	text, err := s.Dumps(ctx, fieldx.Object{
//	    "name": "Snuggles", "breed": "Beagle", "tail_wagging": true,
//	})
//	// {"name": "Snuggles", "breed": "Beagle", "tail_wagging": true}
//
// # Sources
//
// Anything implementing Source can be dumped. Object wraps a map, Bind
// wraps a typed value with a table of accessor functions, FromStruct reads
// exported struct fields (`fieldx` tag, then `json` tag, then field name)
// and FromRows scans database rows.
//
// # Hooks
//
// Pre-dump hooks run before extraction and return the Source to read from;
// Extend attaches computed attributes without mutating the original.
// Compute builds such a hook from an expression:
//
//	schema := fieldx.MustSchema("album", []fieldx.Field{
//	    fieldx.Integer("num_sold"),
//	    fieldx.Boolean("big_hit").AsOutputOnly(),
//	}, fieldx.WithPreDump(fieldx.MustCompute("big_hit", "num_sold > 1000000")))
//
// Post-dump hooks receive the assembled Record.
//
// # Field Selection
//
// Only and Exclude restrict the emitted fields. They are mutually exclusive
// and must name declared fields. Output order is always declaration order.
//
// # Errors
//
// Configuration problems match ErrInvalidConfiguration. Data problems are
// *FieldError values matching ErrMissingField or ErrTypeConversion; in
// DumpMany they are wrapped in an *ItemError carrying the element index.
//
// # Configuration
//
// LoadConfigFromEnvironment reads FIELDX_* variables; Config.Options maps
// them to serializer options. Schemas can also be declared in YAML and
// loaded with LoadSchemaFile.
package fieldx
