// Package money provides fixed-point arithmetic for currency values.
// All values are shopspring decimals so that discount/tax/payment summation
// never drifts the way binary floats do. Rounding to 2 places happens only at
// presentation time (Format), never mid-computation.
package money

import (
	"crewbooks/internal/fault"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Add returns a + b.
func Add(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b)
}

// Sub returns a − b. It fails when the result would be negative, because the
// callers that use it (net = gross − discount, balance = net − received at
// submission) all forbid negative money.
func Sub(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.GreaterThan(a) {
		return decimal.Zero, fault.Validationf("subtraction would be negative: %s - %s", a, b)
	}
	return a.Sub(b), nil
}

// Mul returns a × factor.
func Mul(a, factor decimal.Decimal) decimal.Decimal {
	return a.Mul(factor)
}

// Format renders v with exactly 2 fraction digits, grouped per locale, with
// the ISO currency code prefixed. Rounding happens here and only here.
// Unknown locales fall back to English grouping.
func Format(v decimal.Decimal, locale, currencyCode string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	f, _ := v.Round(2).Float64()
	return p.Sprintf("%s %v", currencyCode, number.Decimal(f, number.Scale(2)))
}
