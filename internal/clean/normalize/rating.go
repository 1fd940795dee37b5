package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	ratingExact    = regexp.MustCompile(`^\d(\.\d)?$`)
	ratingInText   = regexp.MustCompile(`\d(\.\d)?`)
	ratingFraction = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*/\s*(\d+(?:\.\d+)?)$`)
)

// Rating parses a raw product rating cell. Three shapes are accepted: a
// bare single-digit number with an optional decimal, star phrasing like
// "4.5 stars", and a fraction like "9/10" which is rescaled to a 5-point
// value rounded to one decimal. Values are not clamped.
func Rating(raw string) (float64, bool) {
	if IsMissing(raw) {
		return 0, false
	}

	val := strings.ToLower(strings.TrimSpace(raw))

	if ratingExact.MatchString(val) {
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}

	if strings.Contains(val, "star") {
		match := ratingInText.FindString(val)
		if match == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}

	if m := ratingFraction.FindStringSubmatch(val); m != nil {
		num, err1 := strconv.ParseFloat(m[1], 64)
		den, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil || den == 0 {
			return 0, false
		}
		return math.Round(num/den*5*10) / 10, true
	}

	return 0, false
}
