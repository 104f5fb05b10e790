package repository

import (
	"context"

	"crewbooks/internal/dto"
	"crewbooks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	AddPayment(ctx context.Context, p *model.SalePayment) error
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&s, id).Error
	return &s, err
}

func (r *saleRepo) AddPayment(ctx context.Context, p *model.SalePayment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Sale{})
	if filter.Month != "" {
		q = q.Where("to_char(created_at, 'YYYY-MM') = ?", filter.Month)
	}
	switch filter.Settlement {
	case "due":
		q = q.Where("net_amount > (SELECT COALESCE(SUM(amount), 0) FROM sale_payments WHERE sale_id = sales.id)")
	case "settled":
		q = q.Where("net_amount <= (SELECT COALESCE(SUM(amount), 0) FROM sale_payments WHERE sale_id = sales.id)")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error

	return sales, total, err
}
