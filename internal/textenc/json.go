package textenc

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Style selects the separators used between JSON tokens.
type Style int8

const (
	// Spaced writes ", " between members and ": " after keys.
	Spaced Style = iota
	// Compact writes no insignificant whitespace.
	Compact
)

var jsonAPI = jsoniter.Config{
	EscapeHTML:             false,
	ValidateJsonRawMessage: true,
}.Froze()

// JSON encodes documents as JSON text. When Indent is positive every member
// goes on its own line and Style only affects the key separator.
type JSON struct {
	Style  Style
	Indent int
}

func (JSON) Name() string { return "json" }

func (c JSON) Encode(doc Document) ([]byte, error) {
	stream := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(stream)

	var err error
	if doc.Many {
		err = c.writeList(stream, doc.List, 0)
	} else {
		err = c.writeMap(stream, doc.Map, 0)
	}
	if err != nil {
		return nil, err
	}
	if stream.Error != nil {
		return nil, fmt.Errorf("write json: %w", stream.Error)
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

func (c JSON) memberSeparator(depth int) string {
	if c.Indent > 0 {
		return ",\n" + strings.Repeat(" ", c.Indent*(depth+1))
	}
	if c.Style == Compact {
		return ","
	}
	return ", "
}

func (c JSON) keySeparator() string {
	if c.Style == Compact && c.Indent == 0 {
		return ":"
	}
	return ": "
}

func (c JSON) open(stream *jsoniter.Stream, bracket string, depth int) {
	stream.WriteRaw(bracket)
	if c.Indent > 0 {
		stream.WriteRaw("\n" + strings.Repeat(" ", c.Indent*(depth+1)))
	}
}

func (c JSON) close(stream *jsoniter.Stream, bracket string, depth int) {
	if c.Indent > 0 {
		stream.WriteRaw("\n" + strings.Repeat(" ", c.Indent*depth))
	}
	stream.WriteRaw(bracket)
}

func (c JSON) writeMap(stream *jsoniter.Stream, m *Map, depth int) error {
	if m == nil || m.Len() == 0 {
		stream.WriteRaw("{}")
		return nil
	}
	c.open(stream, "{", depth)
	first := true
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			stream.WriteRaw(c.memberSeparator(depth))
		}
		first = false
		stream.WriteString(pair.Key)
		stream.WriteRaw(c.keySeparator())
		if err := c.writeValue(stream, pair.Value, depth+1); err != nil {
			return fmt.Errorf("key '%s': %w", pair.Key, err)
		}
	}
	c.close(stream, "}", depth)
	return nil
}

func (c JSON) writeList(stream *jsoniter.Stream, list []*Map, depth int) error {
	if len(list) == 0 {
		stream.WriteRaw("[]")
		return nil
	}
	c.open(stream, "[", depth)
	for i, m := range list {
		if i > 0 {
			stream.WriteRaw(c.memberSeparator(depth))
		}
		if err := c.writeMap(stream, m, depth+1); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	c.close(stream, "]", depth)
	return nil
}

func (c JSON) writeValue(stream *jsoniter.Stream, v any, depth int) error {
	switch t := v.(type) {
	case nil:
		stream.WriteNil()
	case string:
		stream.WriteString(t)
	case bool:
		stream.WriteBool(t)
	case int64:
		stream.WriteInt64(t)
	case int:
		stream.WriteInt(t)
	case float64:
		s, err := FormatFloat(t)
		if err != nil {
			return err
		}
		stream.WriteRaw(s)
	case *Map:
		return c.writeMap(stream, t, depth)
	case []any:
		if len(t) == 0 {
			stream.WriteRaw("[]")
			return nil
		}
		c.open(stream, "[", depth)
		for i, item := range t {
			if i > 0 {
				stream.WriteRaw(c.memberSeparator(depth))
			}
			if err := c.writeValue(stream, item, depth+1); err != nil {
				return err
			}
		}
		c.close(stream, "]", depth)
	default:
		stream.WriteVal(t)
	}
	return nil
}

func (JSON) Decode(data []byte) (Document, error) {
	iter := jsonAPI.BorrowIterator(data)
	defer jsonAPI.ReturnIterator(iter)

	var doc Document
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		doc.Map = readMap(iter)
	case jsoniter.ArrayValue:
		doc.Many = true
		doc.List = []*Map{}
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			if it.WhatIsNext() != jsoniter.ObjectValue {
				it.ReportError("decode", "collection elements must be objects")
				return false
			}
			doc.List = append(doc.List, readMap(it))
			return true
		})
	default:
		return Document{}, fmt.Errorf("%w: expected a json object or array", ErrMalformed)
	}
	if iter.Error != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformed, iter.Error)
	}
	// Only whitespace may follow the top-level value; the iterator sets
	// io.EOF once the input is exhausted.
	iter.WhatIsNext()
	if iter.Error != io.EOF {
		return Document{}, fmt.Errorf("%w: unexpected data after the top-level value", ErrMalformed)
	}
	return doc, nil
}

func readMap(iter *jsoniter.Iterator) *Map {
	m := NewMap()
	iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
		m.Set(key, readValue(it))
		return it.Error == nil
	})
	return m
}

func readValue(iter *jsoniter.Iterator) any {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		return iter.ReadString()
	case jsoniter.NumberValue:
		return numberValue(iter.ReadNumber())
	case jsoniter.BoolValue:
		return iter.ReadBool()
	case jsoniter.NilValue:
		iter.ReadNil()
		return nil
	case jsoniter.ObjectValue:
		return readMap(iter)
	case jsoniter.ArrayValue:
		list := []any{}
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			list = append(list, readValue(it))
			return it.Error == nil
		})
		return list
	default:
		iter.ReportError("decode", "unexpected token")
		return nil
	}
}

func numberValue(n json.Number) any {
	if !isFloatLiteral(n.String()) {
		if i, err := n.Int64(); err == nil {
			return i
		}
	}
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	return f
}
