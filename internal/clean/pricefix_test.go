package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrectPrice(t *testing.T) {
	tests := []struct {
		name   string
		sale   float64
		base   float64
		baseOK bool
		want   float64
	}{
		{"no catalogue match", 15000, 0, false, 15000},
		{"hundredfold shift", 10050, 100, true, 100.5},
		{"exact hundredfold", 15000, 150, true, 150},
		{"tenfold shift", 1200, 100, true, 120},
		{"outlier above range", 350, 100, true, 100},
		{"outlier below range", 25, 100, true, 100},
		{"in range untouched", 105, 100, true, 105},
		{"in range rounded", 105.999, 100, true, 106},
		{"boundary three times", 300, 100, true, 300},
		{"boundary point three", 30, 100, true, 30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, CorrectPrice(tc.sale, tc.base, tc.baseOK), 1e-9)
		})
	}
}
