package fieldx

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const albumDefinition = `
name: album
fields:
  - {name: title, kind: string, required: true}
  - {name: artist, kind: str, attribute: artist_name}
  - {name: num_sold, kind: integer, default: 0}
  - {name: big_hit, kind: boolean, output_only: true, compute: "(num_sold ?? 0) > 1000000"}
`

func TestParseSchema(t *testing.T) {
	schema, err := ParseSchema([]byte(albumDefinition))
	require.NoError(t, err)

	assert.Equal(t, "album", schema.Name())
	assert.Equal(t, []string{"title", "artist", "num_sold", "big_hit"}, schema.Names())
	pre, _ := schema.Hooks()
	assert.Equal(t, 1, pre)

	artist, _ := schema.Field("artist")
	assert.Equal(t, "artist_name", artist.SourceAttribute())

	s, err := New(schema, WithJSONStyle(StyleCompact))
	require.NoError(t, err)

	text, err := s.Dumps(context.Background(), Object{"title": "Thriller", "artist_name": "Michael Jackson", "num_sold": 19000000})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Thriller","artist":"Michael Jackson","num_sold":19000000,"big_hit":true}`, string(text))

	text, err = s.Dumps(context.Background(), Object{"title": "Demo"})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Demo","num_sold":0,"big_hit":false}`, string(text))
}

func TestParseSchemaExtraHooksRunAfterComputed(t *testing.T) {
	var seen any
	peek := func(ctx context.Context, src Source) (Source, error) {
		seen, _ = src.Get("big_hit")
		return src, nil
	}

	schema, err := ParseSchema([]byte(albumDefinition), WithPreDump(peek))
	require.NoError(t, err)
	s, err := New(schema)
	require.NoError(t, err)

	_, err = s.Dump(context.Background(), Object{"title": "Dookie", "num_sold": 332000})
	require.NoError(t, err)
	assert.Equal(t, false, seen)
}

func TestParseSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid yaml", "name: [unclosed"},
		{"unknown key", "name: x\nfields:\n  - {name: a, kind: string, nullable: true}\n"},
		{"unknown kind", "name: x\nfields:\n  - {name: a, kind: decimal}\n"},
		{"bad expression", "name: x\nfields:\n  - {name: a, kind: bool, output_only: true, compute: \"a >\"}\n"},
		{"bad default", "name: x\nfields:\n  - {name: a, kind: integer, default: many}\n"},
		{"no fields", "name: x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchema([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, IsConfigurationError(err))
		})
	}
}

func TestLoadSchemaFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "album.yaml")
	require.NoError(t, os.WriteFile(path, []byte(albumDefinition), 0644))

	schema, err := LoadSchemaFile(path)
	require.NoError(t, err)
	assert.Len(t, schema.Fields(), 4)

	_, err = LoadSchemaFile(filepath.Join(dir, "missing.yaml"))
	assert.True(t, IsConfigurationError(err))
}
