package normalize

import "strings"

// truthyTokens are the affirmative spellings used in the exports. Anything
// else, including missing cells, reads as false.
var truthyTokens = map[string]struct{}{
	"true": {},
	"yes":  {},
	"1":    {},
	"y":    {},
}

// Boolean parses a raw flag cell. Booleans are never missing: an
// unrecognized or empty cell is false.
func Boolean(raw string) bool {
	_, ok := truthyTokens[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}
