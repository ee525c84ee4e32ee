package fieldx

import (
	"bytes"
	"context"
	"testing"

	"github.com/hengadev/errsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, values map[string]string) {
	t.Helper()
	for _, key := range []string{EnvFormat, EnvJSONStyle, EnvIndent, EnvCoercion, EnvParallelism, EnvLogLevel, EnvLogFormat} {
		t.Setenv(key, values[key])
	}
}

func TestLoadConfigFromEnvironmentDefaults(t *testing.T) {
	setEnv(t, nil)

	cfg, err := LoadConfigFromEnvironment()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	setEnv(t, map[string]string{
		EnvFormat:      "YAML",
		EnvIndent:      "4",
		EnvCoercion:    "lenient",
		EnvParallelism: "8",
		EnvLogLevel:    "debug",
		EnvLogFormat:   "json",
	})

	cfg, err := LoadConfigFromEnvironment()
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, cfg.Format)
	assert.Equal(t, 4, cfg.Indent)
	assert.Equal(t, CoercionLenient, cfg.Coercion)
	assert.Equal(t, 8, cfg.Parallelism)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigFromEnvironmentErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"indent not a number", map[string]string{EnvIndent: "wide"}},
		{"parallelism not a number", map[string]string{EnvParallelism: "many"}},
		{"unknown format", map[string]string{EnvFormat: "xml"}},
		{"unknown log level", map[string]string{EnvLogLevel: "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)
			_, err := LoadConfigFromEnvironment()
			require.Error(t, err)
			assert.True(t, IsConfigurationError(err))
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{
		Format:      "toml",
		JSONStyle:   "pretty",
		Indent:      40,
		Coercion:    "loose",
		Parallelism: -2,
		LogLevel:    "loud",
		LogFormat:   "xml",
	}

	err := cfg.Validate()
	require.Error(t, err)

	errs, ok := err.(errsx.Map)
	if !ok {
		t.Fatal("expected error to be of type errsx.Map")
	}
	assert.Equal(t, 7, len(errs))
	for _, key := range []string{"format", "json_style", "indent", "coercion", "parallelism", "log_level", "log_format"} {
		if _, ok := errs[key]; !ok {
			t.Errorf("expected key '%s' in errsx.Map", key)
		}
	}

	empty := Config{}
	require.NoError(t, empty.Validate())
	assert.Equal(t, DefaultConfig(), empty)
}

func TestConfigOptions(t *testing.T) {
	cfg := Config{Format: FormatJSON, JSONStyle: StyleCompact, Coercion: CoercionLenient, Parallelism: 2}
	require.NoError(t, cfg.Validate())

	s, err := New(dogSchema(t), cfg.Options()...)
	require.NoError(t, err)

	text, err := s.Dumps(context.Background(), Object{"name": 7})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"7"}`, string(text))
}

func TestConfigLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.LogLevel = "debug"

	logger, err := cfg.Logger(&buf, "test")
	require.NoError(t, err)

	s, err := New(dogSchema(t), WithLogger(logger))
	require.NoError(t, err)
	_, err = s.Dump(context.Background(), snuggles())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `msg="dumped record"`)
	assert.Contains(t, buf.String(), "component=test")

	cfg.LogFormat = "xml"
	_, err = cfg.Logger(&buf, "test")
	assert.True(t, IsConfigurationError(err))
}
