// Package ledger implements the derived-financial arithmetic shared by the
// sales and invoicing screens: net amount and balance due for a sale with
// partial payment installments, and subtotal/tax/total for an invoice built
// from line items. Every operation is a pure function over its inputs; the
// package holds no state and performs no I/O.
package ledger

import (
	"time"

	"crewbooks/internal/fault"

	"github.com/shopspring/decimal"
)

// Installment is a single recorded partial payment toward a sale.
// The sequence order is preserved for audit display even though it does not
// affect the sum.
type Installment struct {
	Amount decimal.Decimal
	PaidOn time.Time
	Mode   string
}

// Balance is the derived payment state of a sale.
type Balance struct {
	TotalReceived decimal.Decimal
	BalanceDue    decimal.Decimal
}

// ComputeNet returns gross − discount.
// Fails when either value is negative or the discount exceeds the gross.
// Property: net + discount == gross exactly.
func ComputeNet(gross, discount decimal.Decimal) (decimal.Decimal, error) {
	if gross.IsNegative() {
		return decimal.Zero, fault.Validationf("gross amount cannot be negative: %s", gross)
	}
	if discount.IsNegative() {
		return decimal.Zero, fault.Validationf("discount cannot be negative: %s", discount)
	}
	if discount.GreaterThan(gross) {
		return decimal.Zero, fault.Validationf("discount %s exceeds gross amount %s", discount, gross)
	}
	return gross.Sub(discount), nil
}

// TotalReceived sums installment amounts in input order.
func TotalReceived(payments []Installment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// ComputeBalance derives the payment state for a sale with the given net
// amount. BalanceDue is clamped at zero. When the installments sum to more
// than the net a ValidationError is returned ALONGSIDE the computed balance:
// the library only reports the violation — whether it blocks submission or
// merely warns is the caller's policy.
func ComputeBalance(net decimal.Decimal, payments []Installment) (Balance, error) {
	received := TotalReceived(payments)
	due := net.Sub(received)
	if due.IsNegative() {
		due = decimal.Zero
	}
	b := Balance{TotalReceived: received, BalanceDue: due}
	if received.GreaterThan(net) {
		return b, fault.Validationf("payments received %s exceed net amount %s", received, net)
	}
	return b, nil
}

// AddInstallment appends inst to a copy of payments.
// The installment amount must be strictly positive.
func AddInstallment(payments []Installment, inst Installment) ([]Installment, error) {
	if !inst.Amount.IsPositive() {
		return nil, fault.Validationf("installment amount must be positive: %s", inst.Amount)
	}
	out := make([]Installment, len(payments), len(payments)+1)
	copy(out, payments)
	return append(out, inst), nil
}

// RemoveInstallment returns a copy of payments without the entry at index.
func RemoveInstallment(payments []Installment, index int) ([]Installment, error) {
	if index < 0 || index >= len(payments) {
		return nil, fault.NotFoundf("no installment at index %d", index)
	}
	out := make([]Installment, 0, len(payments)-1)
	out = append(out, payments[:index]...)
	out = append(out, payments[index+1:]...)
	return out, nil
}

// UpdateInstallment returns a copy of payments with the entry at index
// replaced by inst.
func UpdateInstallment(payments []Installment, index int, inst Installment) ([]Installment, error) {
	if index < 0 || index >= len(payments) {
		return nil, fault.NotFoundf("no installment at index %d", index)
	}
	if !inst.Amount.IsPositive() {
		return nil, fault.Validationf("installment amount must be positive: %s", inst.Amount)
	}
	out := make([]Installment, len(payments))
	copy(out, payments)
	out[index] = inst
	return out, nil
}
