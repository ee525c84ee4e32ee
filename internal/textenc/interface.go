// Package textenc renders ordered records as text and parses them back
// without losing key order or the literal kind of scalar values.
package textenc

import (
	"errors"
	"math"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is the ordered mapping every codec reads and writes.
type Map = orderedmap.OrderedMap[string, any]

// NewMap returns an empty Map.
func NewMap() *Map {
	return orderedmap.New[string, any]()
}

var (
	ErrUnsupportedValue = errors.New("unsupported value")
	ErrMalformed        = errors.New("malformed document")
)

// Document is either a single mapping or a sequence of mappings.
type Document struct {
	Many bool
	Map  *Map
	List []*Map
}

// Codec converts Documents to and from text.
type Codec interface {
	// Name is the format identifier, e.g. "json".
	Name() string

	// Encode renders doc deterministically, in key order.
	Encode(doc Document) ([]byte, error)

	// Decode parses a mapping or a sequence of mappings. Integers decode as
	// int64 and numbers with a fraction or exponent as float64.
	Decode(data []byte) (Document, error)
}

// FormatFloat renders f so that it always reads back as a float: whole
// values keep a trailing ".0".
func FormatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", errors.Join(ErrUnsupportedValue, errors.New("non-finite float "+strconv.FormatFloat(f, 'g', -1, 64)))
	}
	abs := math.Abs(f)
	var s string
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		s = strconv.FormatFloat(f, 'e', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, nil
}

func isFloatLiteral(s string) bool {
	return strings.ContainsAny(s, ".eE")
}
