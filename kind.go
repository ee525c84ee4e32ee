package fieldx

import (
	"fmt"
	"strings"

	"github.com/hengadev/fieldx/internal/coerce"
)

// Kind selects the coercion rule applied to a field value.
type Kind int8

const (
	KindInvalid Kind = iota
	KindString
	KindInteger
	KindBoolean
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindFloat:
		return "float"
	default:
		return "invalid"
	}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= KindString && k <= KindFloat
}

// ParseKind maps a kind name as written in schema files to a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "string", "str":
		return KindString, nil
	case "integer", "int":
		return KindInteger, nil
	case "boolean", "bool":
		return KindBoolean, nil
	case "float", "number":
		return KindFloat, nil
	default:
		return KindInvalid, NewConfigurationError("unknown field kind '%s': expected one of string, integer, boolean, float", name)
	}
}

// coerce applies the rule for k to v.
func (k Kind) coerce(v any, mode CoercionMode) (any, error) {
	m := coerce.Strict
	if mode == CoercionLenient {
		m = coerce.Lenient
	}
	switch k {
	case KindString:
		return coerce.String(v, m)
	case KindInteger:
		return coerce.Integer(v, m)
	case KindBoolean:
		return coerce.Boolean(v, m)
	case KindFloat:
		return coerce.Float(v, m)
	default:
		return nil, fmt.Errorf("no coercion rule for kind %s", k)
	}
}
