package repository

import (
	"context"
	"time"

	"crewbooks/internal/dto"
	"crewbooks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(ctx context.Context, tx *gorm.DB, inv *model.Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	NextNumber(ctx context.Context, tx *gorm.DB) (int64, error)
	List(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, int64, error)
	DB() *gorm.DB
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository { return &invoiceRepo{db: db} }

func (r *invoiceRepo) DB() *gorm.DB { return r.db }

func (r *invoiceRepo) Create(ctx context.Context, tx *gorm.DB, inv *model.Invoice) error {
	return tx.WithContext(ctx).Create(inv).Error
}

func (r *invoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&inv, id).Error
	return &inv, err
}

func (r *invoiceRepo) NextNumber(ctx context.Context, tx *gorm.DB) (int64, error) {
	// PostgreSQL sequence keeps invoice numbers gapless-enough and atomic
	var num int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('invoices_number_seq')").Scan(&num).Error
	return num, err
}

func (r *invoiceRepo) List(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Invoice{})
	if filter.Month != "" {
		q = q.Where("to_char(created_at, 'YYYY-MM') = ?", filter.Month)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("number DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&invoices).Error

	return invoices, total, err
}

// ── Documents ────────────────────────────────────────────────────────────────

type InvoiceDocumentRepository interface {
	Create(ctx context.Context, doc *model.InvoiceDocument) error
	Update(ctx context.Context, doc *model.InvoiceDocument) error
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*model.InvoiceDocument, error)
	ListPendingRetries(ctx context.Context, before time.Time, limit int) ([]model.InvoiceDocument, error)
}

type invoiceDocumentRepo struct{ db *gorm.DB }

func NewInvoiceDocumentRepository(db *gorm.DB) InvoiceDocumentRepository {
	return &invoiceDocumentRepo{db: db}
}

func (r *invoiceDocumentRepo) Create(ctx context.Context, doc *model.InvoiceDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *invoiceDocumentRepo) Update(ctx context.Context, doc *model.InvoiceDocument) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

func (r *invoiceDocumentRepo) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*model.InvoiceDocument, error) {
	var doc model.InvoiceDocument
	err := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).First(&doc).Error
	return &doc, err
}

func (r *invoiceDocumentRepo) ListPendingRetries(ctx context.Context, before time.Time, limit int) ([]model.InvoiceDocument, error) {
	var docs []model.InvoiceDocument
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_retry_at IS NOT NULL AND next_retry_at <= ?", "failed", before).
		Order("next_retry_at ASC").
		Limit(limit).
		Find(&docs).Error
	return docs, err
}
