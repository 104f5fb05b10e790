package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice stores a tax invoice. Subtotal/tax/total are always recomputed from
// the item rows before persisting — the item list is the single source of
// truth, the stored totals are never entered independently.
type Invoice struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Number        int64     `gorm:"uniqueIndex;not null"`
	ClientName    string    `gorm:"type:varchar(200);not null"`
	ClientEmail   *string   `gorm:"type:varchar(200)"`
	TaxPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CGST          decimal.Decimal `gorm:"type:decimal(12,2);not null;column:cgst"`
	SGST          decimal.Decimal `gorm:"type:decimal(12,2);not null;column:sgst"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Items         []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InvoiceItem is a single invoice row.
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Position    int             `gorm:"not null"`
	Description string          `gorm:"type:varchar(300);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// InvoiceDocument tracks the asynchronously generated PDF for an invoice.
// Status: "pending" | "ready" | "failed"
type InvoiceDocument struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending'"`
	// PDFPath is relative to PDF_STORAGE_PATH
	PDFPath *string `gorm:"column:pdf_path"`
	// Retry fields used by the retry cron to re-attempt failed generations
	RetryCount  int        `gorm:"not null;default:0"`
	NextRetryAt *time.Time `gorm:"column:next_retry_at"`
	LastError   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
