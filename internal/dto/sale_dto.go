package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	Month string `form:"month"` // YYYY-MM; empty = all
	// Settlement: "due" (balance outstanding) | "settled" | "all"
	Settlement string `form:"settlement,default=all"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"  validate:"required"`
	Mode   string          `json:"mode"    validate:"required,oneof=cash upi card bank_transfer cheque"`
	PaidOn string          `json:"paid_on" validate:"required,datetime=2006-01-02"`
}

type CreateSaleRequest struct {
	ClientName  string          `json:"client_name"  validate:"required,min=2"`
	EventName   *string         `json:"event_name"   validate:"omitempty,min=2"`
	GrossAmount decimal.Decimal `json:"gross_amount" validate:"required"`
	Discount    decimal.Decimal `json:"discount"     validate:"min=0"`
	Payments    []PaymentRequest `json:"payments"    validate:"omitempty,dive"`
}

// RecordPaymentRequest appends one installment to an existing sale.
type RecordPaymentRequest struct {
	Payment PaymentRequest `json:"payment" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PaymentResponse struct {
	Amount decimal.Decimal `json:"amount"`
	Mode   string          `json:"mode"`
	PaidOn string          `json:"paid_on"`
}

type SaleResponse struct {
	ID            string            `json:"id"`
	ClientName    string            `json:"client_name"`
	EventName     *string           `json:"event_name,omitempty"`
	GrossAmount   decimal.Decimal   `json:"gross_amount"`
	Discount      decimal.Decimal   `json:"discount"`
	NetAmount     decimal.Decimal   `json:"net_amount"`
	TotalReceived decimal.Decimal   `json:"total_received"`
	BalanceDue    decimal.Decimal   `json:"balance_due"`
	Payments      []PaymentResponse `json:"payments"`
	CreatedAt     string            `json:"created_at"`
}
