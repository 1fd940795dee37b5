package normalize

import "strings"

// paymentAlias pairs a substring with its canonical payment method. Order
// matters: the first alias contained in the cell wins.
type paymentAlias struct {
	substr    string
	canonical string
}

var paymentAliases = []paymentAlias{
	{"upi", "UPI"},
	{"gpay", "UPI"},
	{"google pay", "UPI"},
	{"phonepe", "UPI"},
	{"paytm", "UPI"},
	{"credit", "Credit Card"},
	{"cc", "Credit Card"},
	{"debit", "Debit Card"},
	{"net banking", "Net Banking"},
	{"internet banking", "Net Banking"},
	{"wallet", "Wallet"},
	{"bnpl", "BNPL"},
	{"cod", "Cash on Delivery"},
	{"c.o.d", "Cash on Delivery"},
	{"cash on delivery", "Cash on Delivery"},
}

// PaymentMethod canonicalizes a raw payment method cell. Missing cells
// become Unknown and unrecognized spellings become Other.
func PaymentMethod(raw string) string {
	if IsMissing(raw) {
		return "Unknown"
	}

	val := strings.ToLower(strings.TrimSpace(raw))
	for _, alias := range paymentAliases {
		if strings.Contains(val, alias.substr) {
			return alias.canonical
		}
	}
	return "Other"
}
