package domain

import (
	"fmt"
	"strings"
)

// Method identifies how translatable entries are embedded in a payload.
// One method is chosen per batch and applied to every document.
type Method string

// Available methods.
const (
	// MethodXMLEntry reads <entry name="...">...</entry> tags.
	MethodXMLEntry Method = "xml_entry"

	// MethodJSONString reads a JSON object encoded inside the payload string.
	MethodJSONString Method = "json_string"

	// MethodCSVString reads the English column of a CSV table inside the payload string.
	MethodCSVString Method = "csv_string"

	// MethodJSONTable reads the English field of every General row of a JSON table.
	MethodJSONTable Method = "json_table"
)

// AllMethods returns every supported method in menu order.
func AllMethods() []Method {
	return []Method{MethodXMLEntry, MethodJSONString, MethodCSVString, MethodJSONTable}
}

// IsValid returns true if the method is recognised.
func (m Method) IsValid() bool {
	switch m {
	case MethodXMLEntry, MethodJSONString, MethodCSVString, MethodJSONTable:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m Method) String() string {
	return string(m)
}

// Description returns a human-readable description of the method.
func (m Method) Description() string {
	switch m {
	case MethodXMLEntry:
		return `XML-like <entry name="...">...</entry> tags`
	case MethodJSONString:
		return "JSON object stored as an escaped string"
	case MethodCSVString:
		return "CSV table with an English column"
	case MethodJSONTable:
		return "JSON table with a General array of English rows"
	default:
		return "Unknown"
	}
}

// methodAliases maps the short names and the labels of the original
// desktop tool onto methods.
var methodAliases = map[string]Method{
	"xml":          MethodXMLEntry,
	"1":            MethodXMLEntry,
	"use method 1": MethodXMLEntry,
	"json":         MethodJSONString,
	"2":            MethodJSONString,
	"use method 2": MethodJSONString,
	"csv":          MethodCSVString,
	"3":            MethodCSVString,
	"use method 3": MethodCSVString,
	"table":        MethodJSONTable,
	"4":            MethodJSONTable,
	"use method 4": MethodJSONTable,
}

// ParseMethod resolves a method name or alias.
func ParseMethod(s string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if m := Method(key); m.IsValid() {
		return m, nil
	}
	if m, ok := methodAliases[key]; ok {
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)
}
