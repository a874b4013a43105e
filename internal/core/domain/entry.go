package domain

// Entry is one extracted unit within a payload.
type Entry struct {
	// Identity is the tag name, object key, CSV row key or table row index.
	// It is only used for skip decisions and diagnostics, never for matching.
	Identity string

	// Value is the text itself.
	Value string

	// Comment marks entries that are carried through unchanged and never
	// produce an intermediate line.
	Comment bool
}

// Values returns the values of all non-comment entries in order.
func Values(entries []Entry) []string {
	values := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Comment {
			continue
		}
		values = append(values, e.Value)
	}
	return values
}
