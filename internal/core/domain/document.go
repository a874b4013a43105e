package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is one top-level member of a document, in file order.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Document is a parsed TextAsset JSON object.
// Identity is the source filename. Fields keep their original order.
type Document struct {
	Name   string
	Fields []Field
}

// Get returns the raw value stored under key.
func (d *Document) Get(key string) (json.RawMessage, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Payload returns the string stored under key.
// A missing key yields ErrPayloadMissing, a non-string ErrPayloadFormat.
func (d *Document) Payload(key string) (string, error) {
	raw, ok := d.Get(key)
	if !ok {
		return "", fmt.Errorf("%w: '%s' not found", ErrPayloadMissing, key)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", fmt.Errorf("%w: '%s' is not a string", ErrPayloadFormat, key)
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", fmt.Errorf("%w: %v", ErrParse, err)
	}
	return s, nil
}

// WithPayload returns a shallow copy of d whose key field holds encoded,
// which must be a JSON value. All other fields are shared with d.
// The receiver is not modified.
func (d *Document) WithPayload(key string, encoded json.RawMessage) *Document {
	out := &Document{Name: d.Name, Fields: make([]Field, len(d.Fields))}
	copy(out.Fields, d.Fields)

	for i := range out.Fields {
		if out.Fields[i].Key == key {
			out.Fields[i].Value = encoded
			return out
		}
	}
	out.Fields = append(out.Fields, Field{Key: key, Value: encoded})
	return out
}
