package clean

import "math"

// CorrectPrice applies the catalogue outlier decision table to a sale price.
// Checked largest correction first: a 100x decimal-shift error also
// satisfies the 10x and out-of-range conditions.
func CorrectPrice(sale, base float64, baseOK bool) float64 {
	if !baseOK {
		return sale
	}
	switch {
	case sale >= base*100:
		return round2(sale / 100)
	case sale >= base*10:
		return round2(sale / 10)
	case sale > base*3 || sale < base*0.3:
		return round2(base)
	default:
		return round2(sale)
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
