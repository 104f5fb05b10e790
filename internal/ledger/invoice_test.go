package ledger

import (
	"fmt"
	"testing"

	"crewbooks/internal/fault"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func li(desc string, qty int, price string) LineItem {
	return LineItem{Description: desc, Quantity: qty, UnitPrice: d(price)}
}

func TestComputeTotals(t *testing.T) {
	items := []LineItem{
		li("Stage decoration", 2, "500"),
		li("Sound system", 1, "1000"),
	}
	totals, err := ComputeTotals(items, d("18"))
	require.NoError(t, err)
	assert.True(t, totals.Subtotal.Equal(d("2000")), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.TaxAmount.Equal(d("360")), "tax = %s", totals.TaxAmount)
	assert.True(t, totals.Total.Equal(d("2360")), "total = %s", totals.Total)
}

func TestComputeTotals_ZeroTax(t *testing.T) {
	totals, err := ComputeTotals([]LineItem{li("Venue", 1, "1500.50")}, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.Total.Equal(totals.Subtotal))
}

func TestComputeTotals_NoDriftAcrossManyItems(t *testing.T) {
	// 1000 items at 0.10 each: a float64 accumulator would already have
	// drifted; the decimal subtotal must be exactly 100.00.
	items := make([]LineItem, 0, 1000)
	for i := 0; i < 1000; i++ {
		items = append(items, li(fmt.Sprintf("item %d", i), 1, "0.10"))
	}
	totals, err := ComputeTotals(items, d("18"))
	require.NoError(t, err)
	assert.True(t, totals.Subtotal.Equal(d("100")), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.TaxAmount.Equal(d("18")))
	assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.TaxAmount)), "total == subtotal + tax exactly")
}

func TestComputeTotals_Rejections(t *testing.T) {
	ok := []LineItem{li("Catering", 1, "100")}

	_, err := ComputeTotals(ok, d("101"))
	assert.True(t, fault.IsValidation(err))

	_, err = ComputeTotals(ok, d("-1"))
	assert.True(t, fault.IsValidation(err))

	_, err = ComputeTotals([]LineItem{li("", 1, "100")}, d("18"))
	assert.True(t, fault.IsValidation(err), "empty description")

	_, err = ComputeTotals([]LineItem{li("Catering", 0, "100")}, d("18"))
	assert.True(t, fault.IsValidation(err), "zero quantity")

	_, err = ComputeTotals([]LineItem{li("Catering", 1, "-5")}, d("18"))
	assert.True(t, fault.IsValidation(err), "negative unit price")
}

func TestNewLineItem(t *testing.T) {
	item, err := NewLineItem("  Photography  ", 3, d("250"))
	require.NoError(t, err)
	assert.Equal(t, "Photography", item.Description)
	assert.True(t, item.Amount().Equal(d("750")))

	_, err = NewLineItem("   ", 1, d("10"))
	assert.True(t, fault.IsValidation(err))
}

func TestSplitTax(t *testing.T) {
	cases := []struct{ tax, cgst, sgst string }{
		{"360", "180", "180"},
		{"0.03", "0.02", "0.01"}, // odd cent goes to CGST
		{"0.01", "0.01", "0"},
		{"0", "0", "0"},
	}
	for _, tc := range cases {
		cgst, sgst := SplitTax(d(tc.tax))
		assert.True(t, cgst.Equal(d(tc.cgst)), "tax=%s cgst=%s", tc.tax, cgst)
		assert.True(t, sgst.Equal(d(tc.sgst)), "tax=%s sgst=%s", tc.tax, sgst)
		assert.True(t, cgst.Add(sgst).Equal(d(tc.tax)), "halves must sum exactly back")
	}
}
