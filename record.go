package fieldx

import (
	"math"
	"reflect"

	"github.com/hengadev/fieldx/internal/textenc"
)

// Record is the ordered output of dumping one source object.
// The zero Record is empty and ready to use.
type Record struct {
	m *textenc.Map
}

// Collection is the ordered output of dumping many source objects.
type Collection []Record

// Pair is one entry of a Record.
type Pair struct {
	Key   string
	Value any
}

// NewRecord builds a Record from pairs, in order. A repeated key keeps its
// first position and its last value.
func NewRecord(pairs ...Pair) Record {
	r := Record{m: textenc.NewMap()}
	for _, p := range pairs {
		r.m.Set(p.Key, unplain(p.Value))
	}
	return r
}

func (r *Record) init() {
	if r.m == nil {
		r.m = textenc.NewMap()
	}
}

func (r Record) Get(key string) (any, bool) {
	if r.m == nil {
		return nil, false
	}
	v, ok := r.m.Get(key)
	return plain(v), ok
}

// Set adds key at the end of the record, or replaces its value in place.
func (r *Record) Set(key string, value any) {
	r.init()
	r.m.Set(key, unplain(value))
}

// Delete removes key and reports whether it was present.
func (r *Record) Delete(key string) bool {
	if r.m == nil {
		return false
	}
	_, ok := r.m.Delete(key)
	return ok
}

func (r Record) Len() int {
	if r.m == nil {
		return 0
	}
	return r.m.Len()
}

// Keys returns the field names in record order.
func (r Record) Keys() []string {
	if r.m == nil {
		return nil
	}
	keys := make([]string, 0, r.m.Len())
	for p := r.m.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Pairs returns the entries in record order.
func (r Record) Pairs() []Pair {
	if r.m == nil {
		return nil
	}
	pairs := make([]Pair, 0, r.m.Len())
	for p := r.m.Oldest(); p != nil; p = p.Next() {
		pairs = append(pairs, Pair{Key: p.Key, Value: plain(p.Value)})
	}
	return pairs
}

// Map returns the entries as an unordered map.
func (r Record) Map() map[string]any {
	out := make(map[string]any, r.Len())
	if r.m == nil {
		return out
	}
	for p := r.m.Oldest(); p != nil; p = p.Next() {
		out[p.Key] = plain(p.Value)
	}
	return out
}

// Equal reports whether both records hold the same keys in the same order
// with equal values.
func (r Record) Equal(other Record) bool {
	a, b := r.Pairs(), other.Pairs()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Key != b[i].Key || !equalValue(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

// MarshalJSON renders the record as compact JSON in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	return textenc.JSON{Style: textenc.Compact}.Encode(textenc.Document{Map: r.m})
}

// UnmarshalJSON replaces the record with the decoded object, keeping key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	doc, err := textenc.JSON{}.Decode(data)
	if err != nil {
		return err
	}
	if doc.Many {
		return textenc.ErrMalformed
	}
	r.m = doc.Map
	return nil
}

func (c Collection) document() textenc.Document {
	list := make([]*textenc.Map, len(c))
	for i, r := range c {
		if r.m == nil {
			list[i] = textenc.NewMap()
			continue
		}
		list[i] = r.m
	}
	return textenc.Document{Many: true, List: list}
}

// plain converts nested ordered maps into Records so callers never see the
// storage type.
func plain(v any) any {
	switch t := v.(type) {
	case *textenc.Map:
		return Record{m: t}
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}

// unplain is the inverse of plain for values set by post-dump hooks.
// Numbers are widened to int64 and float64, the types dumping and decoding
// produce.
func unplain(v any) any {
	switch t := v.(type) {
	case Record:
		if t.m == nil {
			return textenc.NewMap()
		}
		return t.m
	case *Record:
		if t == nil {
			return nil
		}
		return unplain(*t)
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint:
		return widenUint(uint64(t))
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return widenUint(t)
	case float32:
		return float64(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = unplain(item)
		}
		return out
	default:
		return v
	}
}

// widenUint keeps values above math.MaxInt64 unsigned.
func widenUint(u uint64) any {
	if u > math.MaxInt64 {
		return u
	}
	return int64(u)
}

func equalValue(a, b any) bool {
	switch at := a.(type) {
	case Record:
		bt, ok := b.(Record)
		return ok && at.Equal(bt)
	case []any:
		bt, ok := b.([]any)
		if !ok || len(at) != len(bt) {
			return false
		}
		for i := range at {
			if !equalValue(at[i], bt[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}
