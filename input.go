package fieldx

import (
	"bytes"
	"fmt"

	"github.com/hengadev/fieldx/internal/textenc"
)

// DecodeSources parses JSON or YAML input into Objects. A top-level mapping
// yields one source and many=false; a sequence of mappings yields one source
// per element and many=true. JSON is detected by a leading '{' or '['.
func DecodeSources(data []byte) (srcs []Source, many bool, err error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("%w: input is empty", ErrInvalidFormat)
	}

	var codec textenc.Codec = textenc.YAML{}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		codec = textenc.JSON{}
	}
	doc, err := codec.Decode(trimmed)
	if err != nil {
		return nil, false, fmt.Errorf("%w: decode %s input: %w", ErrInvalidFormat, codec.Name(), err)
	}

	if !doc.Many {
		return []Source{Object(Record{m: doc.Map}.Map())}, false, nil
	}
	srcs = make([]Source, len(doc.List))
	for i, m := range doc.List {
		srcs[i] = Object(Record{m: m}.Map())
	}
	return srcs, true, nil
}
