package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMissing(t *testing.T) {
	for _, raw := range []string{"", "  ", "nan", "NaN", "None", "NULL", "na", " NA "} {
		assert.True(t, IsMissing(raw), "raw=%q", raw)
	}
	for _, raw := range []string{"0", "false", "n/a-ish", "nana"} {
		assert.False(t, IsMissing(raw), "raw=%q", raw)
	}
}

func TestMedian(t *testing.T) {
	_, ok := Median(nil)
	assert.False(t, ok)

	m, ok := Median([]float64{3, 1, 2})
	require.True(t, ok)
	assert.Equal(t, 2.0, m)

	m, ok = Median([]float64{4, 1, 3, 2})
	require.True(t, ok)
	assert.Equal(t, 2.5, m)

	m, ok = Median([]float64{7})
	require.True(t, ok)
	assert.Equal(t, 7.0, m)
}

func TestDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"2023-04-15", "2023-04-15", true},
		{"15-04-2023", "2023-04-15", true},
		{"15/04/2023", "2023-04-15", true},
		{"2023/04/15", "2023-04-15", true},
		{"15 Apr 2023", "2023-04-15", true},
		{"Apr 15, 2023", "2023-04-15", true},
		{"15.04.2023", "2023-04-15", true},
		{"5/4/2023", "2023-04-05", true},
		{"", "", false},
		{"nan", "", false},
		{"not a date", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, ok := Date(tc.raw)
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.want, FormatDate(got))
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2019, time.December, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2019-12-03", FormatDate(d))
}

func TestPrice(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"1499.00", 1499.00, true},
		{"₹1,499", 1499, true},
		{"â‚¹899.50", 899.50, true},
		{"Rs 2,999", 2999, true},
		{"RS2999", 2999, true},
		{"-450", 450, true},
		{"0", 0, true},
		{"price unavailable", 0, false},
		{"", 0, false},
		{"none", 0, false},
		{"abc", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, ok := Price(tc.raw)
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.InDelta(t, tc.want, got, 1e-9)
			}
		})
	}
}

func TestRating(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"4", 4, true},
		{"4.5", 4.5, true},
		{"4.5 stars", 4.5, true},
		{"3 Star rating", 3, true},
		{"9/10", 4.5, true},
		{"4/5", 4, true},
		{"10/10", 5, true},
		{"7/3", 11.7, true},
		{"3/0", 0, false},
		{"10", 0, false},
		{"great", 0, false},
		{"", 0, false},
		{"nan", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, ok := Rating(tc.raw)
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.InDelta(t, tc.want, got, 1e-9)
			}
		})
	}
}

func TestCity(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"bangalore", "Bengaluru"},
		{"BANGLORE", "Bengaluru"},
		{"Bengaluru", "Bengaluru"},
		{"bombay", "Mumbai"},
		{"New Delhi", "Delhi"},
		{"delhi ncr", "Delhi"},
		{"madras", "Chennai"},
		{"calcutta", "Kolkata"},
		{"cochin", "Kochi"},
		{" pune ", "Pune"},
		{"mysore", "Mysore"},
		{"navi mumbai", "Navi Mumbai"},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, ok := City(tc.raw)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	_, ok := City("nan")
	assert.False(t, ok)
	_, ok = City("")
	assert.False(t, ok)
}

// Canonical city names must survive a second pass unchanged.
func TestCity_Idempotent(t *testing.T) {
	for _, raw := range []string{"bangalore", "bombay", "madras", "hyderabad", "mysore"} {
		first, ok := City(raw)
		require.True(t, ok)
		second, ok := City(first)
		require.True(t, ok)
		assert.Equal(t, first, second, "raw=%q", raw)
	}
}

func TestBoolean(t *testing.T) {
	for _, raw := range []string{"true", "TRUE", "yes", "Y", "1", " y "} {
		assert.True(t, Boolean(raw), "raw=%q", raw)
	}
	for _, raw := range []string{"false", "no", "0", "", "nan", "2", "yep"} {
		assert.False(t, Boolean(raw), "raw=%q", raw)
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"electronics", "Electronics"},
		{"Consumer Electronic", "Electronics"},
		{"home & kitchen", "Home And Kitchen"},
		{"beauty   and  care", "Beauty And Care"},
		{"books", "Books"},
		{"", "Unknown"},
		{"nan", "Unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, Category(tc.raw))
		})
	}
}

func TestDeliveryDays(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"same day", 0, true},
		{"Same-Day", 0, true},
		{"express", 1, true},
		{"Express Delivery", 1, true},
		{"3-5 days", 5, true},
		{"7 - 10", 10, true},
		{"-3", 3, true},
		{"4", 4, true},
		{"4.9", 4, true},
		{"0", 1, true},
		{"99", 30, true},
		{"", 0, false},
		{"soon", 0, false},
		{"nan", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, ok := DeliveryDays(tc.raw)
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestPaymentMethod(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"UPI", "UPI"},
		{"gpay", "UPI"},
		{"Google Pay", "UPI"},
		{"PhonePe", "UPI"},
		{"paytm wallet", "UPI"},
		{"credit card", "Credit Card"},
		{"CC", "Credit Card"},
		{"debit card", "Debit Card"},
		{"Net Banking", "Net Banking"},
		{"internet banking", "Net Banking"},
		{"wallet", "Wallet"},
		{"BNPL", "BNPL"},
		{"COD", "Cash on Delivery"},
		{"c.o.d", "Cash on Delivery"},
		{"Cash On Delivery", "Cash on Delivery"},
		{"cheque", "Other"},
		{"", "Unknown"},
		{"nan", "Unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, PaymentMethod(tc.raw))
		})
	}
}
