package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale stores a submitted sale with its derived amounts. The derived columns
// (NetAmount, balance fields are recomputed on read) exist for listing and
// reporting; the payment rows remain the source of truth for received totals.
// A persisted sale is immutable except for appending further payments.
type Sale struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientName  string    `gorm:"type:varchar(200);not null"`
	EventName   *string   `gorm:"type:varchar(200)"`
	GrossAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	NetAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Payments    []SalePayment   `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SalePayment is one installment toward a sale. Position preserves the entry
// order for audit display.
type SalePayment struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Position int             `gorm:"not null"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Mode: "cash" | "upi" | "card" | "bank_transfer" | "cheque"
	Mode      string    `gorm:"type:varchar(30);not null"`
	PaidOn    time.Time `gorm:"type:date;not null"`
	CreatedAt time.Time
}
