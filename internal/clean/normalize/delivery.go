package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var deliveryDigits = regexp.MustCompile(`\d+`)

// DeliveryDays parses a raw delivery-time cell into a day count.
// Same-day phrasing is 0 days, express is 1, a range like "3-5 days" takes
// the larger bound, and bare numbers are truncated then clamped to 1..30.
// The branches are checked in that order, so a negative like "-3" reads as
// a range and yields 3.
func DeliveryDays(raw string) (int, bool) {
	if IsMissing(raw) {
		return 0, false
	}

	val := strings.ToLower(strings.TrimSpace(raw))

	if strings.Contains(val, "same") {
		return 0, true
	}
	if strings.Contains(val, "express") {
		return 1, true
	}
	if strings.Contains(val, "-") {
		max := 0
		found := false
		for _, m := range deliveryDigits.FindAllString(val, -1) {
			n, err := strconv.Atoi(m)
			if err != nil {
				continue
			}
			if !found || n > max {
				max = n
				found = true
			}
		}
		if !found {
			return 0, false
		}
		return max, true
	}

	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	days := int(parsed)
	if days < 1 {
		days = 1
	}
	if days > 30 {
		days = 30
	}
	return days, true
}
