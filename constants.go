package fieldx

// Struct tag read by FromStruct.
const (
	// STRUCT_TAG names the struct tag consulted before the json tag.
	// Example: `fieldx:"num_sold"` or `fieldx:"-"` to hide a field.
	STRUCT_TAG = "fieldx"
)

// Environment variable names
const (
	// EnvFormat selects the text format: json or yaml.
	// Default: json
	EnvFormat = "FIELDX_FORMAT"

	// EnvJSONStyle selects JSON separators: spaced or compact.
	// Default: spaced
	EnvJSONStyle = "FIELDX_JSON_STYLE"

	// EnvIndent sets the indentation width. Zero keeps single-line output.
	// Default: 0
	EnvIndent = "FIELDX_INDENT"

	// EnvCoercion selects the coercion mode: strict or lenient.
	// Default: strict
	EnvCoercion = "FIELDX_COERCION"

	// EnvParallelism sets how many elements DumpMany processes at once.
	// Default: 1
	EnvParallelism = "FIELDX_PARALLELISM"

	// EnvLogLevel sets the minimum log level: debug, info, warn or error.
	// Default: info
	EnvLogLevel = "FIELDX_LOG_LEVEL"

	// EnvLogFormat sets the log handler: json, text or console.
	// Default: text
	EnvLogFormat = "FIELDX_LOG_FORMAT"
)

// Default values
const (
	DefaultFormat      = FormatJSON
	DefaultJSONStyle   = StyleSpaced
	DefaultIndent      = 0
	DefaultCoercion    = CoercionStrict
	DefaultParallelism = 1
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"

	// MaxIndent bounds WithIndent and FIELDX_INDENT.
	MaxIndent = 16
)
