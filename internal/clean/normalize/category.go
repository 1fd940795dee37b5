package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Category canonicalizes a product category. Ampersands become "and",
// whitespace is collapsed, and any spelling that mentions electronics folds
// into the Electronics bucket. Missing cells become Unknown.
func Category(raw string) string {
	if IsMissing(raw) {
		return "Unknown"
	}

	val := strings.ToLower(strings.TrimSpace(raw))
	val = strings.ReplaceAll(val, "&", "and")
	val = whitespaceRun.ReplaceAllString(val, " ")

	if strings.Contains(val, "electronic") {
		return "Electronics"
	}
	return cases.Title(language.English).String(val)
}
