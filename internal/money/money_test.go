package money

import (
	"testing"

	"crewbooks/internal/fault"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAddSubMul(t *testing.T) {
	assert.True(t, Add(d("0.1"), d("0.2")).Equal(d("0.3")), "no binary-float drift")

	got, err := Sub(d("10000"), d("1500"))
	require.NoError(t, err)
	assert.True(t, got.Equal(d("8500")))

	assert.True(t, Mul(d("500"), d("2")).Equal(d("1000")))
	assert.True(t, Mul(d("0.10"), d("3")).Equal(d("0.30")))
}

func TestSub_NegativeResultRejected(t *testing.T) {
	_, err := Sub(d("100"), d("100.01"))
	assert.True(t, fault.IsValidation(err))
}

func TestSub_EqualValuesGiveExactZero(t *testing.T) {
	got, err := Sub(d("42.42"), d("42.42"))
	require.NoError(t, err)
	assert.True(t, got.IsZero())
	assert.Equal(t, "0.00", got.StringFixed(2), "never -0.00")
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "INR 1,234.50", Format(d("1234.5"), "en-IN", "INR"))
	assert.Equal(t, "USD 0.00", Format(decimal.Zero, "en-US", "USD"))
	// Rounding happens only here, at presentation.
	assert.Equal(t, "INR 10.01", Format(d("10.005"), "en-US", "INR"))
}

func TestFormat_UnknownLocaleFallsBack(t *testing.T) {
	assert.Equal(t, "EUR 99.90", Format(d("99.9"), "not-a-locale", "EUR"))
}
