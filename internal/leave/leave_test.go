package leave

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, dom int) time.Time {
	return time.Date(y, m, dom, 0, 0, 0, 0, time.UTC)
}

func TestConsumedDays_FullDay(t *testing.T) {
	dates := []time.Time{day(2026, time.January, 5), day(2026, time.January, 6), day(2026, time.January, 7)}
	assert.True(t, ConsumedDays(dates, ShiftFullDay).Equal(d("3")))
}

func TestConsumedDays_HalfDay(t *testing.T) {
	dates := []time.Time{day(2026, time.January, 5), day(2026, time.January, 6), day(2026, time.January, 7)}
	assert.True(t, ConsumedDays(dates, ShiftFirstHalf).Equal(d("1.5")))
	assert.True(t, ConsumedDays(dates, ShiftSecondHalf).Equal(d("1.5")))
}

func TestConsumedDays_DeduplicatesAndIgnoresOrder(t *testing.T) {
	dates := []time.Time{day(2026, time.March, 1), day(2026, time.March, 2), day(2026, time.March, 3)}

	shuffled := make([]time.Time, len(dates))
	copy(shuffled, dates)
	rand.New(rand.NewSource(1)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	doubled := append(append([]time.Time{}, dates...), dates...)

	want := ConsumedDays(dates, ShiftFullDay)
	assert.True(t, ConsumedDays(shuffled, ShiftFullDay).Equal(want))
	assert.True(t, ConsumedDays(doubled, ShiftFullDay).Equal(want), "duplicate submission is not a distinct day")
}

func TestConsumedDays_SameDayDifferentClockTimes(t *testing.T) {
	// Two timestamps on the same calendar day count once.
	dates := []time.Time{
		time.Date(2026, time.April, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2026, time.April, 10, 18, 30, 0, 0, time.UTC),
	}
	assert.True(t, ConsumedDays(dates, ShiftFullDay).Equal(d("1")))
}

func TestConsumedDays_Empty(t *testing.T) {
	assert.True(t, ConsumedDays(nil, ShiftFullDay).IsZero())
}

func TestRemainingBalance(t *testing.T) {
	assert.True(t, RemainingBalance(d("12"), d("4"), d("2")).Equal(d("6")))
}

func TestRemainingBalance_NegativeIsReportedNotClamped(t *testing.T) {
	got := RemainingBalance(d("5"), d("4"), d("3"))
	assert.True(t, got.Equal(d("-2")), "over-allocation must surface as a negative balance")
}

func TestValidateRequest(t *testing.T) {
	check := ValidateRequest(d("8"), d("6"))
	require.True(t, check.ExceedsBalance)
	assert.False(t, check.Ok())
	assert.True(t, check.Shortfall.Equal(d("2")))

	check = ValidateRequest(d("6"), d("6"))
	assert.True(t, check.Ok(), "exactly consuming the balance is fine")
	assert.True(t, check.Shortfall.IsZero())

	check = ValidateRequest(d("1.5"), d("6"))
	assert.True(t, check.Ok())
}

func TestTypeAndShiftValidation(t *testing.T) {
	for _, typ := range Types() {
		assert.True(t, typ.Valid())
	}
	assert.False(t, Type("sabbatical").Valid())

	assert.True(t, ShiftFullDay.Valid())
	assert.False(t, Shift("quarter_day").Valid())

	assert.True(t, ShiftFullDay.Weight().Equal(d("1")))
	assert.True(t, ShiftFirstHalf.Weight().Equal(d("0.5")))
}

func TestPolicyValidation(t *testing.T) {
	assert.True(t, PolicyStrict.Valid())
	assert.True(t, PolicyWarn.Valid())
	assert.True(t, PolicyAllow.Valid())
	assert.False(t, Policy("maybe").Valid())
}
