// Package jsondoc provides an order-preserving view of JSON objects.
//
// TextAsset documents and payloads must be written back with their keys in
// the original order, which a Go map cannot keep. Object stores members as
// raw JSON in file order. Strings are re-encoded on output so that escaped
// non-ASCII text is written literally.
package jsondoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotObject indicates valid JSON whose top-level value is not an object.
var ErrNotObject = errors.New("not a JSON object")

// ErrNotArray indicates valid JSON whose top-level value is not an array.
var ErrNotArray = errors.New("not a JSON array")

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value json.RawMessage
}

// Object is a JSON object with ordered members.
type Object struct {
	Members []Member
}

// ParseObject parses data as a JSON object, keeping member order.
// Syntax errors are returned unchanged; a non-object value yields ErrNotObject.
// A repeated key keeps its first position and its last value.
func ParseObject(data []byte) (*Object, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	obj := &Object{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		obj.Set(key, raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return obj, nil
}

// ParseArray parses data as a JSON array of raw elements.
func ParseArray(data []byte) ([]json.RawMessage, error) {
	if err := validate(data); err != nil {
		return nil, err
	}
	if first := firstByte(data); first != '[' {
		return nil, ErrNotArray
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, err
	}
	return elems, nil
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.Members)
}

// Keys returns member keys in order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.Members))
	for i, m := range o.Members {
		keys[i] = m.Key
	}
	return keys
}

// Get returns the raw value stored under key.
func (o *Object) Get(key string) (json.RawMessage, bool) {
	for _, m := range o.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Set replaces the value under key in place, or appends a new member.
func (o *Object) Set(key string, value json.RawMessage) {
	for i := range o.Members {
		if o.Members[i].Key == key {
			o.Members[i].Value = value
			return
		}
	}
	o.Members = append(o.Members, Member{Key: key, Value: value})
}

// SetString stores s as a JSON string under key.
func (o *Object) SetString(key, s string) error {
	raw, err := EncodeString(s)
	if err != nil {
		return err
	}
	o.Set(key, raw)
	return nil
}

// Clone returns a copy whose member slice can be modified independently.
// Raw values are shared.
func (o *Object) Clone() *Object {
	members := make([]Member, len(o.Members))
	copy(members, o.Members)
	return &Object{Members: members}
}

// MarshalJSON encodes the object compactly with members in order.
// String literals at any depth are re-encoded, so \uXXXX escapes of
// printable characters come out as literal UTF-8.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := o.writeTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Object) writeTo(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	for i, m := range o.Members {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := EncodeString(m.Key)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := writeValue(buf, m.Value); err != nil {
			return fmt.Errorf("member %q: %w", m.Key, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

// MarshalArray encodes raw elements compactly, re-encoding strings the
// same way MarshalJSON does.
func MarshalArray(elems []json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeArray(&buf, elems); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeArray(buf *bytes.Buffer, elems []json.RawMessage) error {
	buf.WriteByte('[')
	for i, e := range elems {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeValue(buf, e); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	buf.WriteByte(']')
	return nil
}

// writeValue writes raw compactly. An empty value is written as null.
func writeValue(buf *bytes.Buffer, raw json.RawMessage) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		buf.WriteString("null")
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		encoded, err := EncodeString(s)
		if err != nil {
			return err
		}
		buf.Write(encoded)
		return nil
	case '{':
		obj, err := ParseObject(trimmed)
		if err != nil {
			return err
		}
		return obj.writeTo(buf)
	case '[':
		elems, err := ParseArray(trimmed)
		if err != nil {
			return err
		}
		return writeArray(buf, elems)
	default:
		return json.Compact(buf, trimmed)
	}
}

// Indent re-formats JSON with two-space indentation. String contents are
// copied unchanged, so non-ASCII text stays literal.
func Indent(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeString encodes s as a JSON string literal without HTML escaping.
func EncodeString(s string) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Text returns the textual form of a raw value: the decoded string for JSON
// strings, the compact JSON text for anything else.
func Text(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed)
	}
	return buf.String()
}

// IsNull reports whether raw is the JSON null literal.
func IsNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// validate reports syntax errors, including trailing data.
func validate(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid character after top-level value")
	}
	return nil
}

func firstByte(data []byte) byte {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
