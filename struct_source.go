package fieldx

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// FromStruct exposes the exported fields of a struct, or a pointer to one,
// as a Source.
//
// Attribute names come from the `fieldx` tag, then the `json` tag, then the
// Go field name. A tag of "-" hides the field. Embedded structs are
// flattened.
//
//	type Dog struct {
//	    Name        string `fieldx:"name"`
//	    TailWagging bool   `json:"tail_wagging"`
//	}
func FromStruct(v any) (Source, error) {
	if err := validateObjectForProcessing(v); err != nil {
		return nil, err
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	index := make(map[string][]int)
	collectFields(rv.Type(), nil, index)
	return &structSource{value: rv, index: index}, nil
}

// FromStructs exposes every element of a slice of structs.
func FromStructs[T any](values []T) ([]Source, error) {
	out := make([]Source, len(values))
	for i, v := range values {
		src, err := FromStruct(v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = src
	}
	return out, nil
}

type structSource struct {
	value reflect.Value
	index map[string][]int
}

func (s *structSource) Get(name string) (any, bool) {
	idx, ok := s.index[name]
	if !ok {
		return nil, false
	}
	fv, err := s.value.FieldByIndexErr(idx)
	if err != nil {
		// nil embedded pointer on the path
		return nil, false
	}
	return fv.Interface(), true
}

func (s *structSource) Keys() []string {
	keys := make([]string, 0, len(s.index))
	for k := range s.index {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// validateObjectForProcessing checks that the provided object is a struct or a
// non-nil pointer to one.
func validateObjectForProcessing(object any) error {
	if object == nil {
		return NewConfigurationError("FromStruct requires a non-nil object")
	}
	v := reflect.ValueOf(object)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return NewConfigurationError("FromStruct requires a non-nil pointer, got nil %T", object)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return NewConfigurationError("FromStruct requires a struct or a pointer to a struct, got %T", object)
	}
	return nil
}

func collectFields(t reflect.Type, prefix []int, index map[string][]int) {
	for i := range t.NumField() {
		field := t.Field(i)
		path := append(append([]int(nil), prefix...), i)

		name, skip := attributeName(field)
		if skip {
			continue
		}

		if field.Anonymous && name == "" {
			ft := field.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				collectFields(ft, path, index)
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		if name == "" {
			name = field.Name
		}
		// outer fields shadow embedded ones
		if existing, ok := index[name]; ok && len(existing) <= len(path) {
			continue
		}
		index[name] = path
	}
}

func attributeName(field reflect.StructField) (string, bool) {
	for _, key := range []string{STRUCT_TAG, "json"} {
		tag, ok := field.Tag.Lookup(key)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return "", true
		}
		if name != "" {
			return name, false
		}
	}
	return "", false
}
