package tax

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DigitsOnly strips everything but ASCII digits from s. Used to normalize
// currency inputs, CNAE codes and tax ids coming from free-text form fields.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseAmount converts a currency string typed digit-by-digit ("R$ 1.234,56",
// "123456", "12,34") into a value in reais. The trailing two digits are
// cents. Empty or all-non-digit input yields zero; there is no error path.
func ParseAmount(raw string) decimal.Decimal {
	digits := DigitsOnly(raw)
	if digits == "" {
		return decimal.Zero
	}
	cents, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero
	}
	return cents.Shift(-2)
}
