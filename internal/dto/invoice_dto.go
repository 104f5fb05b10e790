package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// InvoiceFilter is bound from the query string of GET /v1/invoices.
type InvoiceFilter struct {
	Month string `form:"month"` // YYYY-MM; empty = all
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type InvoiceListResponse struct {
	Data  []InvoiceResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type InvoiceItemRequest struct {
	Description string          `json:"description" validate:"required,min=1"`
	Quantity    int             `json:"quantity"    validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"  validate:"min=0"`
}

type CreateInvoiceRequest struct {
	ClientName    string               `json:"client_name"    validate:"required,min=2"`
	ClientEmail   *string              `json:"client_email"   validate:"omitempty,email"`
	TaxPercentage decimal.Decimal      `json:"tax_percentage" validate:"min=0,max=100"`
	Items         []InvoiceItemRequest `json:"items"          validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InvoiceItemResponse struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

type InvoiceResponse struct {
	ID            string                `json:"id"`
	Number        int64                 `json:"number"`
	ClientName    string                `json:"client_name"`
	TaxPercentage decimal.Decimal       `json:"tax_percentage"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TaxAmount     decimal.Decimal       `json:"tax_amount"`
	CGST          decimal.Decimal       `json:"cgst"`
	SGST          decimal.Decimal       `json:"sgst"`
	Total         decimal.Decimal       `json:"total"`
	Items         []InvoiceItemResponse `json:"items"`
	// DocumentStatus: "pending" | "ready" | "failed" — PDF generation is async
	DocumentStatus string `json:"document_status"`
	CreatedAt      string `json:"created_at"`
}
