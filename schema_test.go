package fieldx

import (
	"context"
	"testing"

	"github.com/hengadev/errsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchemaValidation(t *testing.T) {
	tests := []struct {
		name    string
		fields  []Field
		opts    []SchemaOption
		errKeys []string
	}{
		{
			name:    "no fields",
			fields:  nil,
			errKeys: []string{"fields"},
		},
		{
			name:    "duplicate names",
			fields:  []Field{String("name"), Integer("name")},
			errKeys: []string{"field 'name'"},
		},
		{
			name:    "empty name and invalid kind",
			fields:  []Field{String(" "), NewField("age", KindInvalid)},
			errKeys: []string{"field 0", "field 'age'"},
		},
		{
			name:    "output-only with attribute",
			fields:  []Field{Boolean("big_hit").From("hit").AsOutputOnly()},
			errKeys: []string{"field 'big_hit'"},
		},
		{
			name:    "output-only with default",
			fields:  []Field{Boolean("big_hit").AsOutputOnly().WithDefault(false)},
			errKeys: []string{"field 'big_hit'"},
		},
		{
			name:    "default of the wrong kind",
			fields:  []Field{Integer("num_sold").WithDefault("many")},
			errKeys: []string{"field 'num_sold'"},
		},
		{
			name:    "nil hooks",
			fields:  []Field{String("name")},
			opts:    []SchemaOption{WithPreDump(nil), WithPostDump(nil)},
			errKeys: []string{"option 0", "option 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchema("test", tt.fields, tt.opts...)
			require.Error(t, err)
			assert.True(t, IsConfigurationError(err))

			var errs errsx.Map
			require.ErrorAs(t, err, &errs)
			assert.Equal(t, len(tt.errKeys), len(errs))
			for _, key := range tt.errKeys {
				if _, ok := errs[key]; !ok {
					t.Errorf("expected key '%s' in errsx.Map, got %v", key, errs)
				}
			}
		})
	}
}

func TestSchemaAccessors(t *testing.T) {
	noop := func(ctx context.Context, src Source) (Source, error) { return src, nil }
	schema, err := NewSchema("album", []Field{
		String("title").AsRequired(),
		Integer("num_sold").From("copies").WithDefault(int32(0)),
	}, WithPreDump(noop, noop))
	require.NoError(t, err)

	assert.Equal(t, "album", schema.Name())
	assert.Equal(t, []string{"title", "num_sold"}, schema.Names())

	f, ok := schema.Field("num_sold")
	require.True(t, ok)
	assert.Equal(t, "copies", f.SourceAttribute())
	assert.True(t, f.HasDefault())
	assert.Equal(t, int64(0), f.Default, "defaults are stored coerced")

	_, ok = schema.Field("artist")
	assert.False(t, ok)

	fields := schema.Fields()
	fields[0].Name = "mutated"
	assert.Equal(t, "title", schema.Names()[0])

	pre, post := schema.Hooks()
	assert.Equal(t, 2, pre)
	assert.Equal(t, 0, post)
}

func TestMustSchemaPanics(t *testing.T) {
	assert.Panics(t, func() { MustSchema("empty", nil) })
	assert.NotPanics(t, func() { MustSchema("dog", []Field{String("name")}) })
}

func TestFieldModifiersReturnCopies(t *testing.T) {
	base := Integer("num_sold")
	required := base.AsRequired()
	renamed := base.From("copies")

	assert.False(t, base.Required)
	assert.True(t, required.Required)
	assert.Equal(t, "num_sold", base.SourceAttribute())
	assert.Equal(t, "copies", renamed.SourceAttribute())
	assert.Equal(t, "big_hit", Boolean("big_hit").From("hit").AsOutputOnly().SourceAttribute())
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"string", KindString, false},
		{"Str", KindString, false},
		{"int", KindInteger, false},
		{"integer", KindInteger, false},
		{" bool ", KindBoolean, false},
		{"number", KindFloat, false},
		{"decimal", KindInvalid, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				assert.True(t, IsConfigurationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
	assert.Equal(t, "invalid", KindInvalid.String())
}
