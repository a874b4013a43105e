// Package jsontable implements the codec for payloads holding a JSON table:
// an object whose "General" array lists row objects with an "English" field.
package jsontable

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/core/ports/driven"
	"github.com/custodia-labs/textsasset/internal/jsondoc"
	"github.com/custodia-labs/textsasset/internal/linecodec"
)

// Ensure Codec implements the interface.
var _ driven.Codec = (*Codec)(nil)

const (
	// TableKey is the member holding the row array.
	TableKey = "General"

	// TextKey is the row member holding the translatable text.
	TextKey = "English"
)

// Codec handles json_table payloads.
type Codec struct {
	lines *linecodec.Codec
}

// New creates a json_table codec.
func New(lines *linecodec.Codec) *Codec {
	if lines == nil {
		lines = linecodec.New("")
	}
	return &Codec{lines: lines}
}

// Method returns domain.MethodJSONTable.
func (c *Codec) Method() domain.Method {
	return domain.MethodJSONTable
}

// table is a parsed payload.
type table struct {
	root *jsondoc.Object
	rows []*jsondoc.Object
}

// Extract lists the English text of every row. Missing or null fields yield "".
func (c *Codec) Extract(payload string) ([]domain.Entry, error) {
	t, err := parse(payload)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.Entry, 0, len(t.rows))
	for i, row := range t.rows {
		entries = append(entries, domain.Entry{Identity: strconv.Itoa(i), Value: text(row)})
	}
	return entries, nil
}

// Count returns the number of rows.
func (c *Codec) Count(payload string) (int, error) {
	t, err := parse(payload)
	if err != nil {
		return 0, err
	}
	return len(t.rows), nil
}

// Rewrite sets the English field of every row and re-serialises the whole
// payload with two-space indentation. Member order is kept; rows without an
// English field get one appended.
func (c *Codec) Rewrite(payload string, values []string) (string, error) {
	t, err := parse(payload)
	if err != nil {
		return "", err
	}
	if err := domain.CheckCount(len(values), len(t.rows)); err != nil {
		return "", err
	}

	elems := make([]json.RawMessage, len(t.rows))
	for i, row := range t.rows {
		out := row.Clone()
		if err := out.SetString(TextKey, c.lines.Resolve(values[i])); err != nil {
			return "", fmt.Errorf("row %d: %w", i, err)
		}
		data, err := out.MarshalJSON()
		if err != nil {
			return "", fmt.Errorf("%w: row %d: %v", domain.ErrParse, i, err)
		}
		elems[i] = data
	}

	general, err := jsondoc.MarshalArray(elems)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	root := t.root.Clone()
	root.Set(TableKey, general)

	compact, err := root.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	indented, err := jsondoc.Indent(compact)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	return string(indented), nil
}

func parse(payload string) (*table, error) {
	root, err := jsondoc.ParseObject([]byte(payload))
	if errors.Is(err, jsondoc.ErrNotObject) {
		return nil, fmt.Errorf("%w: payload is not a JSON object", domain.ErrPayloadFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	raw, ok := root.Get(TableKey)
	if !ok {
		return nil, fmt.Errorf("%w: no %q key", domain.ErrPayloadFormat, TableKey)
	}
	elems, err := jsondoc.ParseArray(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not an array", domain.ErrPayloadFormat, TableKey)
	}

	rows := make([]*jsondoc.Object, len(elems))
	for i, elem := range elems {
		row, err := jsondoc.ParseObject(elem)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d] is not an object", domain.ErrPayloadFormat, TableKey, i)
		}
		rows[i] = row
	}

	return &table{root: root, rows: rows}, nil
}

func text(row *jsondoc.Object) string {
	raw, ok := row.Get(TextKey)
	if !ok || jsondoc.IsNull(raw) {
		return ""
	}
	return jsondoc.Text(raw)
}
