package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ApplyLeaveRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	// LeaveType: annual | sick | casual | study | optional
	LeaveType string `json:"leave_type" validate:"required,oneof=annual sick casual study optional"`
	// ShiftType: full_day | first_half | second_half
	ShiftType string `json:"shift_type" validate:"required,oneof=full_day first_half second_half"`
	// Dates as YYYY-MM-DD; duplicates are tolerated and de-duplicated server-side.
	Dates  []string `json:"dates"  validate:"required,min=1,dive,datetime=2006-01-02"`
	Reason string   `json:"reason" validate:"required,min=3"`
}

// LeaveFilter is bound from the query string of GET /v1/leaves.
type LeaveFilter struct {
	EmployeeID string `form:"employee_id" validate:"omitempty,uuid"`
	Status     string `form:"status,default=all"` // pending | approved | rejected | all
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LeaveResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	LeaveType    string          `json:"leave_type"`
	ShiftType    string          `json:"shift_type"`
	Dates        []string        `json:"dates"`
	ConsumedDays decimal.Decimal `json:"consumed_days"`
	Reason       string          `json:"reason"`
	Status       string          `json:"status"`
	// Warning is set when the request exceeded the balance but the configured
	// policy let it through ("warn").
	Warning   *string `json:"warning,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type LeaveListResponse struct {
	Data  []LeaveResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// LeaveBalanceResponse reports one leave type's balance. Available may be
// negative when the type is already over-allocated.
type LeaveBalanceResponse struct {
	LeaveType string          `json:"leave_type"`
	Total     decimal.Decimal `json:"total"`
	Used      decimal.Decimal `json:"used"`
	Planned   decimal.Decimal `json:"planned"`
	Available decimal.Decimal `json:"available"`
}

type LeaveBalancesResponse struct {
	EmployeeID string                 `json:"employee_id"`
	Balances   []LeaveBalanceResponse `json:"balances"`
}
