// Package normalize holds the field-level cleaning rules for order exports.
// Each normalizer takes the raw cell text and returns a canonical value; a
// false ok return means the cell is treated as missing.
package normalize

import (
	"sort"
	"strings"
)

// missingTokens are textual stand-ins for an absent value, compared
// case-insensitively after trimming.
var missingTokens = map[string]struct{}{
	"":     {},
	"nan":  {},
	"none": {},
	"null": {},
	"na":   {},
}

// IsMissing reports whether a raw cell carries no value.
func IsMissing(raw string) bool {
	_, ok := missingTokens[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// Median returns the median of values: the middle element for odd counts,
// the mean of the two middle elements for even counts. The second return is
// false when values is empty.
func Median(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], true
	}
	return (sorted[mid-1] + sorted[mid]) / 2, true
}
