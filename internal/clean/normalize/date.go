package normalize

import (
	"strings"
	"time"
)

// The exports mix several date layouts, most of them day-first. Layouts are
// tried in order and the first parse wins.
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"02 Jan 2006",
	"02 January 2006",
	"Jan 02, 2006",
	"January 02, 2006",
	"02.01.2006",
	"2-1-2006",
	"2/1/2006",
	"2 Jan 2006",
}

// Date parses a raw order date cell. Ambiguous numeric dates are read
// day-first, matching how the exports were produced.
func Date(raw string) (time.Time, bool) {
	if IsMissing(raw) {
		return time.Time{}, false
	}

	val := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, val); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a parsed date in the canonical ISO form.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
