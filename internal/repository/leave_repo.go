package repository

import (
	"context"

	"crewbooks/internal/dto"
	"crewbooks/internal/leave"
	"crewbooks/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LeaveRepository interface {
	CreateRequest(ctx context.Context, tx *gorm.DB, req *model.LeaveRequest) error
	FindRequestByID(ctx context.Context, id uuid.UUID) (*model.LeaveRequest, error)
	ListRequests(ctx context.Context, filter dto.LeaveFilter) ([]model.LeaveRequest, int64, error)
	FindBalances(ctx context.Context, employeeID uuid.UUID) ([]model.LeaveBalance, error)
	FindBalance(ctx context.Context, employeeID uuid.UUID, typ leave.Type) (*model.LeaveBalance, error)
	AddPlannedTx(tx *gorm.DB, employeeID uuid.UUID, typ leave.Type, days decimal.Decimal) error
	DB() *gorm.DB
}

type leaveRepo struct{ db *gorm.DB }

func NewLeaveRepository(db *gorm.DB) LeaveRepository { return &leaveRepo{db: db} }

func (r *leaveRepo) DB() *gorm.DB { return r.db }

func (r *leaveRepo) CreateRequest(ctx context.Context, tx *gorm.DB, req *model.LeaveRequest) error {
	return tx.WithContext(ctx).Create(req).Error
}

func (r *leaveRepo) FindRequestByID(ctx context.Context, id uuid.UUID) (*model.LeaveRequest, error) {
	var req model.LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Days", func(db *gorm.DB) *gorm.DB { return db.Order("day ASC") }).
		First(&req, id).Error
	return &req, err
}

func (r *leaveRepo) ListRequests(ctx context.Context, filter dto.LeaveFilter) ([]model.LeaveRequest, int64, error) {
	var requests []model.LeaveRequest
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.LeaveRequest{})
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Days", func(db *gorm.DB) *gorm.DB { return db.Order("day ASC") }).
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&requests).Error

	return requests, total, err
}

func (r *leaveRepo) FindBalances(ctx context.Context, employeeID uuid.UUID) ([]model.LeaveBalance, error) {
	var balances []model.LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("leave_type ASC").
		Find(&balances).Error
	return balances, err
}

func (r *leaveRepo) FindBalance(ctx context.Context, employeeID uuid.UUID, typ leave.Type) (*model.LeaveBalance, error) {
	var balance model.LeaveBalance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND leave_type = ?", employeeID, typ).
		First(&balance).Error
	return &balance, err
}

// AddPlannedTx reserves the requested days against the balance row inside the
// caller's transaction. Missing rows are created with a zero allowance so the
// reservation is still recorded (available simply goes negative).
func (r *leaveRepo) AddPlannedTx(tx *gorm.DB, employeeID uuid.UUID, typ leave.Type, days decimal.Decimal) error {
	res := tx.Model(&model.LeaveBalance{}).
		Where("employee_id = ? AND leave_type = ?", employeeID, typ).
		Update("planned", gorm.Expr("planned + ?", days))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return tx.Create(&model.LeaveBalance{
			EmployeeID: employeeID,
			LeaveType:  typ,
			Total:      decimal.Zero,
			Used:       decimal.Zero,
			Planned:    days,
		}).Error
	}
	return nil
}
