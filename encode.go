package fieldx

import (
	"context"
	"fmt"

	"github.com/hengadev/fieldx/internal/textenc"
)

// EncodeText renders a Record or a Collection in the serializer's format.
// Output is deterministic and keeps record order.
func (s *Serializer) EncodeText(v any) ([]byte, error) {
	var doc textenc.Document
	switch t := v.(type) {
	case Record:
		doc = textenc.Document{Map: t.m}
	case *Record:
		if t == nil {
			return nil, NewConfigurationError("cannot encode a nil record")
		}
		doc = textenc.Document{Map: t.m}
	case Collection:
		doc = t.document()
	case []Record:
		doc = Collection(t).document()
	default:
		return nil, NewConfigurationError("cannot encode %T: expected Record or Collection", v)
	}

	data, err := s.codec().Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %w", ErrInvalidFormat, s.format, err)
	}
	return data, nil
}

// Dumps is Dump followed by EncodeText.
func (s *Serializer) Dumps(ctx context.Context, src Source) ([]byte, error) {
	rec, err := s.Dump(ctx, src)
	if err != nil {
		return nil, err
	}
	return s.EncodeText(rec)
}

// DumpsMany is DumpMany followed by EncodeText.
func (s *Serializer) DumpsMany(ctx context.Context, srcs []Source) ([]byte, error) {
	out, err := s.DumpMany(ctx, srcs)
	if err != nil {
		return nil, err
	}
	return s.EncodeText(out)
}

// DecodeText parses text produced by EncodeText back into a Record. Values
// of declared fields are converted to their kind, so decoding the encoding
// of a dumped record yields an equal record.
func (s *Serializer) DecodeText(data []byte) (Record, error) {
	doc, err := s.codec().Decode(data)
	if err != nil {
		return Record{}, fmt.Errorf("%w: decode %s: %w", ErrInvalidFormat, s.format, err)
	}
	if doc.Many {
		return Record{}, fmt.Errorf("%w: expected a single record, got a collection", ErrInvalidFormat)
	}
	return s.retype(Record{m: doc.Map})
}

// DecodeCollectionText parses text produced by EncodeText for a Collection.
func (s *Serializer) DecodeCollectionText(data []byte) (Collection, error) {
	doc, err := s.codec().Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrInvalidFormat, s.format, err)
	}
	if !doc.Many {
		return nil, fmt.Errorf("%w: expected a collection, got a single record", ErrInvalidFormat)
	}
	out := make(Collection, len(doc.List))
	for i, m := range doc.List {
		rec, err := s.retype(Record{m: m})
		if err != nil {
			return nil, &ItemError{Index: i, Err: err}
		}
		out[i] = rec
	}
	return out, nil
}

func (s *Serializer) retype(rec Record) (Record, error) {
	for p := rec.m.Oldest(); p != nil; p = p.Next() {
		f, ok := s.schema.Field(p.Key)
		if !ok || p.Value == nil {
			continue
		}
		v, err := f.Kind.coerce(p.Value, s.coercion)
		if err != nil {
			return Record{}, NewTypeCoercionError(s.schema.name, f.Name, f.Kind, Object{}, err)
		}
		p.Value = v
	}
	return rec, nil
}
