package ldcontext

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/twinfer/ldcontext/jsonld"
)

// Document is a model's serialized attributes together with the JSON-LD
// context describing them. It encodes as a single JSON object with the
// attributes in order followed by "@context".
type Document struct {
	Attributes Attributes
	Context    Context
}

// Map returns the document as an unordered map, with the context stored
// under "@context".
func (d Document) Map() map[string]any {
	m := d.Attributes.Map()
	m[jsonld.KeywordContext] = d.Context
	return m
}

// MarshalJSONTo implements json.MarshalerTo for Document.
func (d Document) MarshalJSONTo(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	for _, attr := range d.Attributes {
		// The generated context always wins over an attribute of the same name.
		if attr.Name == jsonld.KeywordContext {
			continue
		}
		if err := writeMember(enc, attr.Name, attr.Value); err != nil {
			return err
		}
	}
	if err := enc.WriteToken(jsontext.String(jsonld.KeywordContext)); err != nil {
		return err
	}
	if err := d.Context.MarshalJSONTo(enc); err != nil {
		return err
	}
	return enc.WriteToken(jsontext.EndObject)
}

// MarshalJSONTo implements json.MarshalerTo for Context.
// Terms are written in name order.
func (c Context) MarshalJSONTo(enc *jsontext.Encoder) error {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)

	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	for _, name := range names {
		if err := enc.WriteToken(jsontext.String(name)); err != nil {
			return err
		}
		if err := c[name].MarshalJSONTo(enc); err != nil {
			return fmt.Errorf("failed to marshal term %q: %w", name, err)
		}
	}
	return enc.WriteToken(jsontext.EndObject)
}

// MarshalJSONTo implements json.MarshalerTo for TermDefinition.
// "@id" comes first, the remaining keywords follow in name order.
func (d TermDefinition) MarshalJSONTo(enc *jsontext.Encoder) error {
	keys := make([]string, 0, len(d))
	for k := range d {
		if k != jsonld.KeywordID {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	if id, ok := d[jsonld.KeywordID]; ok {
		if err := writeMember(enc, jsonld.KeywordID, id); err != nil {
			return err
		}
	}
	for _, k := range keys {
		if err := writeMember(enc, k, d[k]); err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.EndObject)
}

// Object is a decoded JSON object whose members keep their input order.
// Member values are kept as raw JSON. Object implements Model, which lets
// arbitrary JSON input be contextualized.
type Object Attributes

// SerializedAttributes implements Model.
func (o Object) SerializedAttributes() Attributes {
	return Attributes(o)
}

// MarshalJSONTo implements json.MarshalerTo for Object.
func (o Object) MarshalJSONTo(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	for _, attr := range o {
		if err := writeMember(enc, attr.Name, attr.Value); err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.EndObject)
}

// UnmarshalJSONFrom implements json.UnmarshalerFrom for Object.
// Duplicate member names are rejected by the decoder.
func (o *Object) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	tok, err := dec.ReadToken()
	if err != nil {
		return fmt.Errorf("failed to read object start: %w", err)
	}
	if tok.Kind() != '{' {
		return fmt.Errorf("expected object start '{', got %s", tok.Kind().String())
	}

	var attrs Attributes
	for dec.PeekKind() != '}' {
		tok, err := dec.ReadToken()
		if err != nil {
			return fmt.Errorf("failed to read member name: %w", err)
		}
		name := tok.String()

		val, err := dec.ReadValue()
		if err != nil {
			return fmt.Errorf("failed to read member %q: %w", name, err)
		}
		// ReadValue's result is only valid until the next read.
		attrs = append(attrs, Attribute{Name: name, Value: val.Clone()})
	}

	if _, err := dec.ReadToken(); err != nil {
		return fmt.Errorf("failed to read object end: %w", err)
	}

	*o = Object(attrs)
	return nil
}

// DecodeObjects reads either a single JSON object or an array of objects
// from r. Input after that value is an error, so concatenated objects must be
// wrapped in an array.
func DecodeObjects(r io.Reader) ([]Object, error) {
	dec := jsontext.NewDecoder(r)

	switch dec.PeekKind() {
	case '{':
		var obj Object
		if err := obj.UnmarshalJSONFrom(dec); err != nil {
			return nil, err
		}
		if err := expectEnd(dec); err != nil {
			return nil, err
		}
		return []Object{obj}, nil

	case '[':
		if _, err := dec.ReadToken(); err != nil {
			return nil, fmt.Errorf("failed to read array start: %w", err)
		}
		var objs []Object
		for dec.PeekKind() != ']' {
			var obj Object
			if err := obj.UnmarshalJSONFrom(dec); err != nil {
				return nil, fmt.Errorf("object %d: %w", len(objs), err)
			}
			objs = append(objs, obj)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, fmt.Errorf("failed to read array end: %w", err)
		}
		if err := expectEnd(dec); err != nil {
			return nil, err
		}
		return objs, nil

	default:
		// Surface the decoder's own error for empty or malformed input.
		if _, err := dec.ReadToken(); err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		return nil, fmt.Errorf("expected JSON object or array of objects")
	}
}

// expectEnd reports anything left in dec after the top-level value.
func expectEnd(dec *jsontext.Decoder) error {
	if kind := dec.PeekKind(); kind != 0 {
		return fmt.Errorf("unexpected %s after top-level value", kind)
	}
	if _, err := dec.ReadToken(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// writeMember writes a single object member.
func writeMember(enc *jsontext.Encoder, name string, value any) error {
	if err := enc.WriteToken(jsontext.String(name)); err != nil {
		return err
	}
	if err := json.MarshalEncode(enc, value, json.Deterministic(true)); err != nil {
		return fmt.Errorf("failed to marshal %q: %w", name, err)
	}
	return nil
}
