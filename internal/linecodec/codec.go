package linecodec

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/custodia-labs/textsasset/internal/core/domain"
)

// escapedNewline is the two-character sequence standing for a newline.
const escapedNewline = `\n`

// Codec encodes and decodes intermediate lines.
type Codec struct {
	placeholder string
}

// New creates a codec using placeholder for empty values.
// An empty placeholder selects domain.DefaultPlaceholder.
func New(placeholder string) *Codec {
	if placeholder == "" {
		placeholder = domain.DefaultPlaceholder
	}
	return &Codec{placeholder: placeholder}
}

// Placeholder returns the marker used for empty values.
func (c *Codec) Placeholder() string {
	return c.placeholder
}

// Encode turns a raw value into one quoted line.
func (c *Codec) Encode(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		text = c.placeholder
	} else {
		text = strings.ReplaceAll(NormalizeNewlines(text), "\n", escapedNewline)
	}
	return `"` + text + `"`
}

// Decode turns one line back into a raw value.
// Lines without surrounding quotes are accepted as they are.
func (c *Codec) Decode(line string) string {
	text := strings.TrimSpace(line)
	if strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		if len(text) >= 2 {
			text = text[1 : len(text)-1]
		} else {
			text = ""
		}
	}
	return c.Resolve(text)
}

// Resolve maps the placeholder to an empty string and unescapes newlines.
// It is idempotent on values already returned by Decode.
func (c *Codec) Resolve(value string) string {
	if value == c.placeholder {
		return ""
	}
	return strings.ReplaceAll(value, escapedNewline, "\n")
}

// ResolveAll applies Resolve to every value.
func (c *Codec) ResolveAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = c.Resolve(v)
	}
	return out
}

// Marshal encodes values into intermediate file contents.
// Lines are joined with a single line feed, without a trailing one.
func (c *Codec) Marshal(values []string) []byte {
	var buf bytes.Buffer
	_ = c.WriteLines(&buf, values)
	return buf.Bytes()
}

// WriteLines encodes values to w, one line each, separated by a line feed.
// No line feed follows the last value.
func (c *Codec) WriteLines(w io.Writer, values []string) error {
	bw := bufio.NewWriter(w)
	for i, v := range values {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(c.Encode(v)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Unmarshal decodes intermediate file contents.
// Lines that are blank after trimming are ignored.
func (c *Codec) Unmarshal(data []byte) ([]string, error) {
	return c.ReadLines(bytes.NewReader(data))
}

// ReadLines decodes every non-blank line from r.
func (c *Codec) ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var values []string
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		values = append(values, c.Decode(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

// NormalizeNewlines converts \r\n and lone \r to \n.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
