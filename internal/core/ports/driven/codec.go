package driven

import "github.com/custodia-labs/textsasset/internal/core/domain"

// Codec extracts and rewrites the entries of one payload encoding.
// Implementations never mutate their input.
type Codec interface {
	// Method returns the method this codec implements.
	Method() domain.Method

	// Extract returns every entry of the payload in document order,
	// comment entries included and flagged.
	Extract(payload string) ([]domain.Entry, error)

	// Count returns the number of replaceable (non-comment) entries.
	Count(payload string) (int, error)

	// Rewrite substitutes values positionally into the payload.
	// len(values) must equal Count(payload), otherwise a
	// *domain.CountMismatchError is returned.
	Rewrite(payload string, values []string) (string, error)
}
