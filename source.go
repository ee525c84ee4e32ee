package fieldx

import (
	"slices"
	"sort"
)

// Source is anything that exposes named attributes to a Serializer.
type Source interface {
	// Get returns the attribute value and whether it exists.
	Get(name string) (any, bool)

	// Keys lists the attribute names the source exposes.
	Keys() []string
}

// Object is a Source over a plain map.
type Object map[string]any

func (o Object) Get(name string) (any, bool) {
	v, ok := o[name]
	return v, ok
}

func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Accessors maps attribute names to getter functions for a concrete type.
// It is the reflection-free way to expose a model to a Serializer.
type Accessors[T any] map[string]func(T) any

// Bind exposes v through acc.
func Bind[T any](v T, acc Accessors[T]) Source {
	return boundSource[T]{value: v, acc: acc}
}

// BindAll binds every element of values with the same accessor table.
func BindAll[T any](values []T, acc Accessors[T]) []Source {
	out := make([]Source, len(values))
	for i, v := range values {
		out[i] = Bind(v, acc)
	}
	return out
}

type boundSource[T any] struct {
	value T
	acc   Accessors[T]
}

func (b boundSource[T]) Get(name string) (any, bool) {
	get, ok := b.acc[name]
	if !ok {
		return nil, false
	}
	return get(b.value), true
}

func (b boundSource[T]) Keys() []string {
	keys := make([]string, 0, len(b.acc))
	for k := range b.acc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extend returns a Source that reads values first and falls back to src.
// src is never modified; this is how pre-dump hooks attach computed
// attributes.
func Extend(src Source, values map[string]any) Source {
	if ext, ok := src.(*extendedSource); ok {
		merged := make(map[string]any, len(ext.values)+len(values))
		for k, v := range ext.values {
			merged[k] = v
		}
		for k, v := range values {
			merged[k] = v
		}
		return &extendedSource{base: ext.base, values: merged}
	}
	return &extendedSource{base: src, values: values}
}

type extendedSource struct {
	base   Source
	values map[string]any
}

func (e *extendedSource) Get(name string) (any, bool) {
	if v, ok := e.values[name]; ok {
		return v, true
	}
	if e.base == nil {
		return nil, false
	}
	return e.base.Get(name)
}

func (e *extendedSource) Keys() []string {
	var keys []string
	if e.base != nil {
		keys = e.base.Keys()
	}
	for k := range e.values {
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Base returns the source an extension was built on, or src itself.
func Base(src Source) Source {
	if ext, ok := src.(*extendedSource); ok {
		return ext.base
	}
	return src
}

// attributes snapshots every attribute of src.
func attributes(src Source) map[string]any {
	keys := src.Keys()
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := src.Get(k); ok {
			out[k] = v
		}
	}
	return out
}
