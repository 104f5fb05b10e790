package model

import (
	"time"

	"crewbooks/internal/leave"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaveRequest stores a submitted leave application. Core fields are
// immutable after submission; the status transition (pending → approved /
// rejected) is owned by the external HR backend and written back through
// its gateway, never by this service's own logic.
// Status: "pending" | "approved" | "rejected"
type LeaveRequest struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID   `gorm:"type:uuid;index;not null"`
	LeaveType    leave.Type  `gorm:"type:varchar(20);not null"`
	ShiftType    leave.Shift `gorm:"type:varchar(20);not null"`
	ConsumedDays decimal.Decimal `gorm:"type:decimal(5,1);not null"`
	Reason       string          `gorm:"type:text;not null"`
	Status       string          `gorm:"type:varchar(20);not null;default:'pending'"`
	// ExceededBalance records that the request overshot the available balance
	// and was accepted anyway (warn/allow policy) — surfaced to approvers.
	ExceededBalance bool              `gorm:"not null;default:false"`
	Days            []LeaveRequestDay `gorm:"foreignKey:LeaveRequestID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LeaveRequestDay is one selected calendar date of a request.
type LeaveRequestDay struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LeaveRequestID uuid.UUID `gorm:"type:uuid;index;not null"`
	Day            time.Time `gorm:"type:date;not null"`
}

// LeaveBalance holds the per-type allowance for an employee. Used counts
// approved requests, Planned counts pending ones.
type LeaveBalance struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;index:idx_balance_employee_type,unique;not null"`
	LeaveType  leave.Type `gorm:"type:varchar(20);index:idx_balance_employee_type,unique;not null"`
	Total      decimal.Decimal `gorm:"type:decimal(5,1);not null;default:0"`
	Used       decimal.Decimal `gorm:"type:decimal(5,1);not null;default:0"`
	Planned    decimal.Decimal `gorm:"type:decimal(5,1);not null;default:0"`
	UpdatedAt  time.Time
}
