// Package leave implements the day-accrual arithmetic behind the leave
// application screens: consumed-day counting for a set of selected calendar
// dates under a shift fraction, and per-type balance derivation. Exceeding the
// available balance is a reportable business condition, not an error — the
// enforcement policy (block, warn or allow) belongs to the caller.
package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type enumerates the leave categories tracked per employee.
type Type string

const (
	TypeAnnual   Type = "annual"
	TypeSick     Type = "sick"
	TypeCasual   Type = "casual"
	TypeStudy    Type = "study"
	TypeOptional Type = "optional"
)

// Types lists all leave categories in display order.
func Types() []Type {
	return []Type{TypeAnnual, TypeSick, TypeCasual, TypeStudy, TypeOptional}
}

// Valid reports whether t is a known leave type.
func (t Type) Valid() bool {
	switch t {
	case TypeAnnual, TypeSick, TypeCasual, TypeStudy, TypeOptional:
		return true
	}
	return false
}

// Shift is the fraction of a working day a leave date consumes.
type Shift string

const (
	ShiftFullDay    Shift = "full_day"
	ShiftFirstHalf  Shift = "first_half"
	ShiftSecondHalf Shift = "second_half"
)

// Valid reports whether s is a known shift fraction.
func (s Shift) Valid() bool {
	switch s {
	case ShiftFullDay, ShiftFirstHalf, ShiftSecondHalf:
		return true
	}
	return false
}

var half = decimal.New(5, -1)

// Weight returns the day fraction the shift consumes: 1 for a full day,
// 0.5 for either half.
func (s Shift) Weight() decimal.Decimal {
	if s == ShiftFullDay {
		return decimal.NewFromInt(1)
	}
	return half
}

// ConsumedDays counts the days a selection consumes. Dates that fall on the
// same calendar day (same Y-M-D regardless of clock time or zone offset in
// the input) are counted once — a duplicate submission is not a distinct day.
// The result is invariant under reordering and duplication of the input.
func ConsumedDays(dates []time.Time, shift Shift) decimal.Decimal {
	seen := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		seen[d.Format("2006-01-02")] = struct{}{}
	}
	return decimal.NewFromInt(int64(len(seen))).Mul(shift.Weight())
}

// RemainingBalance returns total − used − planned. The result may be negative
// when the type is already over-allocated; it is reported as-is, never clamped,
// so the caller can render an over-budget warning.
func RemainingBalance(total, used, planned decimal.Decimal) decimal.Decimal {
	return total.Sub(used).Sub(planned)
}

// Check is the outcome of validating a leave request against the available
// balance. It is a plain value, never an error.
type Check struct {
	// ExceedsBalance is true when the requested days overshoot the balance.
	ExceedsBalance bool
	// Shortfall is how many days the request overshoots by; zero when Ok.
	Shortfall decimal.Decimal
}

// Ok reports whether the request fits within the available balance.
func (c Check) Ok() bool { return !c.ExceedsBalance }

// ValidateRequest compares the requested consumed days against the available
// balance. It never fails: the surrounding screen decides whether an
// ExceedsBalance result blocks submission or merely warns.
func ValidateRequest(consumedDays, available decimal.Decimal) Check {
	if consumedDays.GreaterThan(available) {
		return Check{ExceedsBalance: true, Shortfall: consumedDays.Sub(available)}
	}
	return Check{Shortfall: decimal.Zero}
}

// Policy is the balance-enforcement rule injected by the caller. The screens
// in the field disagree on it (hard block, confirm dialog, no check at all),
// so it is configuration, not a fixed rule.
type Policy string

const (
	PolicyStrict Policy = "strict" // block submission on ExceedsBalance
	PolicyWarn   Policy = "warn"   // accept but surface a warning
	PolicyAllow  Policy = "allow"  // accept silently
)

// Valid reports whether p is a known policy.
func (p Policy) Valid() bool {
	switch p {
	case PolicyStrict, PolicyWarn, PolicyAllow:
		return true
	}
	return false
}
