// Package csvstring implements the codec for payloads holding a CSV table.
// The first row is a header; the column titled exactly "English" holds the
// translatable text of every following row.
package csvstring

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/core/ports/driven"
	"github.com/custodia-labs/textsasset/internal/linecodec"
)

// Ensure Codec implements the interface.
var _ driven.Codec = (*Codec)(nil)

// Column is the header title of the translatable column.
const Column = "English"

const bom = "\ufeff"

// Codec handles csv_string payloads.
type Codec struct {
	lines *linecodec.Codec
}

// New creates a csv_string codec.
func New(lines *linecodec.Codec) *Codec {
	if lines == nil {
		lines = linecodec.New("")
	}
	return &Codec{lines: lines}
}

// Method returns domain.MethodCSVString.
func (c *Codec) Method() domain.Method {
	return domain.MethodCSVString
}

// table is a parsed payload.
type table struct {
	rows   [][]string
	column int
	bom    bool
}

// Extract lists the English cell of every data row. Short rows yield "".
func (c *Codec) Extract(payload string) ([]domain.Entry, error) {
	t, err := parse(payload)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.Entry, 0, len(t.rows)-1)
	for i, row := range t.rows[1:] {
		entries = append(entries, domain.Entry{Identity: rowIdentity(row, i+1), Value: cell(row, t.column)})
	}
	return entries, nil
}

// Count returns the number of data rows.
func (c *Codec) Count(payload string) (int, error) {
	t, err := parse(payload)
	if err != nil {
		return 0, err
	}
	return len(t.rows) - 1, nil
}

// Rewrite overwrites the English cell of every data row and writes the
// table back with line-feed row terminators.
func (c *Codec) Rewrite(payload string, values []string) (string, error) {
	t, err := parse(payload)
	if err != nil {
		return "", err
	}
	if err := domain.CheckCount(len(values), len(t.rows)-1); err != nil {
		return "", err
	}

	for i, row := range t.rows[1:] {
		for len(row) <= t.column {
			row = append(row, "")
		}
		row[t.column] = c.lines.Resolve(values[i])
		t.rows[i+1] = row
	}

	var buf bytes.Buffer
	if t.bom {
		buf.WriteString(bom)
	}
	if err := writeRows(&buf, t.rows); err != nil {
		return "", fmt.Errorf("writing csv: %w", err)
	}
	return buf.String(), nil
}

// writeRows writes rows with line-feed terminators. A row holding a single
// empty cell is written as "" since csv.Reader skips blank lines.
func writeRows(buf *bytes.Buffer, rows [][]string) error {
	w := csv.NewWriter(buf)
	w.UseCRLF = false
	for _, row := range rows {
		if len(row) == 1 && row[0] == "" {
			w.Flush()
			if err := w.Error(); err != nil {
				return err
			}
			buf.WriteString("\"\"\n")
			continue
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func parse(payload string) (*table, error) {
	hasBOM := strings.HasPrefix(payload, bom)
	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(payload, bom)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: CSV needs a header and at least one row, got %d rows",
			domain.ErrPayloadFormat, len(rows))
	}

	column := -1
	for i, title := range rows[0] {
		if title == Column {
			column = i
			break
		}
	}
	if column < 0 {
		return nil, fmt.Errorf("%w: no %q column in header", domain.ErrPayloadFormat, Column)
	}

	return &table{rows: rows, column: column, bom: hasBOM}, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// rowIdentity uses the first cell as key, falling back to the row number.
func rowIdentity(row []string, n int) string {
	if len(row) > 0 && row[0] != "" {
		return row[0]
	}
	return strconv.Itoa(n)
}
