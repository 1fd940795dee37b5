package normalize

import (
	"math"
	"strconv"
	"strings"
)

// currencyJunk lists the prefixes and separators that show up in price
// cells: the rupee sign, its mojibake form from a bad encoding round-trip,
// the "rs" prefix and thousands commas.
var currencyJunk = []string{"₹", "â‚¹", "rs", ","}

// Price parses a raw price cell into a non-negative amount in INR. Cells
// containing the word "price" are placeholder text and count as missing, as
// do values that fail to parse or parse to NaN or infinity.
func Price(raw string) (float64, bool) {
	if IsMissing(raw) {
		return 0, false
	}

	val := strings.ToLower(strings.TrimSpace(raw))
	if strings.Contains(val, "price") {
		return 0, false
	}

	for _, junk := range currencyJunk {
		val = strings.ReplaceAll(val, junk, "")
	}
	val = strings.TrimSpace(val)

	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, false
	}
	return math.Abs(parsed), true
}
