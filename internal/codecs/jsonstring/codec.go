// Package jsonstring implements the codec for payloads holding a JSON
// object encoded as a string. Every member is one entry, in insertion order.
package jsonstring

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/core/ports/driven"
	"github.com/custodia-labs/textsasset/internal/jsondoc"
	"github.com/custodia-labs/textsasset/internal/linecodec"
)

// Ensure Codec implements the interface.
var _ driven.Codec = (*Codec)(nil)

// Codec handles json_string payloads.
type Codec struct {
	lines *linecodec.Codec
}

// New creates a json_string codec.
func New(lines *linecodec.Codec) *Codec {
	if lines == nil {
		lines = linecodec.New("")
	}
	return &Codec{lines: lines}
}

// Method returns domain.MethodJSONString.
func (c *Codec) Method() domain.Method {
	return domain.MethodJSONString
}

// Extract lists every member of the object. Non-string values are
// reported as their compact JSON text.
func (c *Codec) Extract(payload string) ([]domain.Entry, error) {
	obj, err := parse(payload)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.Entry, 0, obj.Len())
	for _, m := range obj.Members {
		entries = append(entries, domain.Entry{Identity: m.Key, Value: jsondoc.Text(m.Value)})
	}
	return entries, nil
}

// Count returns the number of members.
func (c *Codec) Count(payload string) (int, error) {
	obj, err := parse(payload)
	if err != nil {
		return 0, err
	}
	return obj.Len(), nil
}

// Rewrite assigns values to the members in order and returns the object
// as compact JSON with literal non-ASCII text.
func (c *Codec) Rewrite(payload string, values []string) (string, error) {
	obj, err := parse(payload)
	if err != nil {
		return "", err
	}
	if err := domain.CheckCount(len(values), obj.Len()); err != nil {
		return "", err
	}

	out := obj.Clone()
	for i, key := range obj.Keys() {
		if err := out.SetString(key, c.lines.Resolve(values[i])); err != nil {
			return "", fmt.Errorf("encoding %q: %w", key, err)
		}
	}

	data, err := out.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	return string(data), nil
}

func parse(payload string) (*jsondoc.Object, error) {
	obj, err := jsondoc.ParseObject([]byte(payload))
	if errors.Is(err, jsondoc.ErrNotObject) {
		return nil, fmt.Errorf("%w: payload does not contain a JSON object", domain.ErrPayloadFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	return obj, nil
}
