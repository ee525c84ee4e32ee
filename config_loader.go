package fieldx

import (
	"fmt"
	"os"

	"github.com/spf13/cast"
)

// LoadConfigFromEnvironment reads the FIELDX_* variables and returns a
// validated Config. Unset variables take their defaults.
//
// Environment variables:
//   - FIELDX_FORMAT: json or yaml
//   - FIELDX_JSON_STYLE: spaced or compact
//   - FIELDX_INDENT: 0 to 16
//   - FIELDX_COERCION: strict or lenient
//   - FIELDX_PARALLELISM: at least 1
//   - FIELDX_LOG_LEVEL: debug, info, warn or error
//   - FIELDX_LOG_FORMAT: json, text or console
//
// Callers that keep settings in a .env file load it first, for example with
// godotenv.Load().
func LoadConfigFromEnvironment() (Config, error) {
	indent, err := cast.ToIntE(getEnvOrDefault(EnvIndent, "0"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s must be an integer: %w", ErrInvalidConfiguration, EnvIndent, err)
	}
	parallelism, err := cast.ToIntE(getEnvOrDefault(EnvParallelism, "1"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s must be an integer: %w", ErrInvalidConfiguration, EnvParallelism, err)
	}

	cfg := Config{
		Format:      Format(getEnvOrDefault(EnvFormat, string(DefaultFormat))),
		JSONStyle:   JSONStyle(getEnvOrDefault(EnvJSONStyle, string(DefaultJSONStyle))),
		Indent:      indent,
		Coercion:    CoercionMode(getEnvOrDefault(EnvCoercion, string(DefaultCoercion))),
		Parallelism: parallelism,
		LogLevel:    getEnvOrDefault(EnvLogLevel, DefaultLogLevel),
		LogFormat:   getEnvOrDefault(EnvLogFormat, DefaultLogFormat),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: configuration validation failed: %w", ErrInvalidConfiguration, err)
	}
	return cfg, nil
}

// getEnvOrDefault returns the value of key, or defaultValue when it is unset
// or empty.
func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
