// Package xmlentry implements the codec for payloads made of XML-like
// <entry name="NAME">BODY</entry> tags.
//
// Entries whose name starts with "//" are comments: they are listed by
// Extract but never counted and never rewritten.
package xmlentry

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/core/ports/driven"
	"github.com/custodia-labs/textsasset/internal/linecodec"
)

// Ensure Codec implements the interface.
var _ driven.Codec = (*Codec)(nil)

// entryPattern matches one entry. Bodies may span lines.
var entryPattern = regexp.MustCompile(`(?s)<entry name="(.*?)">(.*?)</entry>`)

// escaper produces the entity forms the game files already use.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// Codec handles xml_entry payloads.
type Codec struct {
	lines *linecodec.Codec
}

// New creates an xml_entry codec.
func New(lines *linecodec.Codec) *Codec {
	if lines == nil {
		lines = linecodec.New("")
	}
	return &Codec{lines: lines}
}

// Method returns domain.MethodXMLEntry.
func (c *Codec) Method() domain.Method {
	return domain.MethodXMLEntry
}

// IsComment reports whether an entry name marks a comment.
func IsComment(name string) bool {
	return strings.HasPrefix(strings.TrimSpace(name), "//")
}

// Extract lists every entry in document order with unescaped bodies.
func (c *Codec) Extract(payload string) ([]domain.Entry, error) {
	matches := entryPattern.FindAllStringSubmatch(payload, -1)
	entries := make([]domain.Entry, 0, len(matches))
	for _, m := range matches {
		name, body := m[1], m[2]
		if IsComment(name) {
			entries = append(entries, domain.Entry{Identity: name, Value: body, Comment: true})
			continue
		}
		entries = append(entries, domain.Entry{Identity: name, Value: html.UnescapeString(body)})
	}
	return entries, nil
}

// Count returns the number of non-comment entries.
func (c *Codec) Count(payload string) (int, error) {
	n := 0
	for _, m := range entryPattern.FindAllStringSubmatch(payload, -1) {
		if !IsComment(m[1]) {
			n++
		}
	}
	return n, nil
}

// Rewrite replaces the body of each non-comment entry with the next value.
// All bytes outside replaced bodies are copied verbatim.
func (c *Codec) Rewrite(payload string, values []string) (string, error) {
	count, err := c.Count(payload)
	if err != nil {
		return "", err
	}
	if err := domain.CheckCount(len(values), count); err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(payload))

	last, next := 0, 0
	for _, loc := range entryPattern.FindAllStringSubmatchIndex(payload, -1) {
		name := payload[loc[2]:loc[3]]
		if IsComment(name) {
			continue
		}
		if next >= len(values) {
			return "", fmt.Errorf("%w: ran out of values", domain.ErrCountMismatch)
		}
		bodyStart, bodyEnd := loc[4], loc[5]
		b.WriteString(payload[last:bodyStart])
		b.WriteString(escape(c.lines.Resolve(values[next])))
		last = bodyEnd
		next++
	}
	b.WriteString(payload[last:])

	return b.String(), nil
}

// escape HTML-escapes a body. Empty stays empty.
func escape(s string) string {
	if s == "" {
		return ""
	}
	return escaper.Replace(s)
}
