package ledger

import (
	"strings"

	"crewbooks/internal/fault"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// LineItem is a single invoice row. Quantity must be positive, unit price
// non-negative, description non-empty — enforced by NewLineItem and again by
// ComputeTotals so that items built literally (e.g. in tests or migrations)
// are still validated.
type LineItem struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// NewLineItem validates and builds a line item.
func NewLineItem(description string, quantity int, unitPrice decimal.Decimal) (LineItem, error) {
	item := LineItem{Description: strings.TrimSpace(description), Quantity: quantity, UnitPrice: unitPrice}
	if err := item.validate(); err != nil {
		return LineItem{}, err
	}
	return item, nil
}

func (li LineItem) validate() error {
	if strings.TrimSpace(li.Description) == "" {
		return fault.Validationf("line item description is required")
	}
	if li.Quantity <= 0 {
		return fault.Validationf("line item quantity must be positive: %d", li.Quantity)
	}
	if li.UnitPrice.IsNegative() {
		return fault.Validationf("line item unit price cannot be negative: %s", li.UnitPrice)
	}
	return nil
}

// Amount returns quantity × unitPrice for the row.
func (li LineItem) Amount() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Totals is the derived state of an invoice. The stored total is never
// entered independently: the item list is the single source of truth and
// Total always equals Subtotal + TaxAmount exactly.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// ComputeTotals derives subtotal, tax and total from the item list.
// Tax is a single flat rate applied to the subtotal, not compounded per line.
// taxPercentage must lie in [0,100].
func ComputeTotals(items []LineItem, taxPercentage decimal.Decimal) (Totals, error) {
	if taxPercentage.IsNegative() || taxPercentage.GreaterThan(hundred) {
		return Totals{}, fault.Validationf("tax percentage must be between 0 and 100: %s", taxPercentage)
	}
	subtotal := decimal.Zero
	for _, item := range items {
		if err := item.validate(); err != nil {
			return Totals{}, err
		}
		subtotal = subtotal.Add(item.Amount())
	}
	tax := subtotal.Mul(taxPercentage).Div(hundred)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
	}, nil
}

// SplitTax divides a tax amount into the CGST/SGST halves used on Indian
// invoices. The halves always sum exactly back to taxAmount; when the amount
// does not split evenly at 2 decimal places the odd cent is assigned to CGST.
func SplitTax(taxAmount decimal.Decimal) (cgst, sgst decimal.Decimal) {
	cgst = taxAmount.DivRound(two, 2)
	sgst = taxAmount.Sub(cgst)
	return cgst, sgst
}
