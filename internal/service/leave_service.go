package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"crewbooks/internal/dto"
	"crewbooks/internal/fault"
	"crewbooks/internal/infra"
	"crewbooks/internal/leave"
	"crewbooks/internal/model"
	"crewbooks/internal/repository"
	"crewbooks/internal/schedule"
	"crewbooks/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LeaveService interface {
	ApplyLeave(ctx context.Context, req dto.ApplyLeaveRequest) (*dto.LeaveResponse, error)
	GetBalances(ctx context.Context, employeeID uuid.UUID) (*dto.LeaveBalancesResponse, error)
	ListLeaves(ctx context.Context, filter dto.LeaveFilter) (*dto.LeaveListResponse, error)
}

type leaveService struct {
	repo       repository.LeaveRepository
	rdb        *redis.Client
	dispatcher *worker.Dispatcher
	policy     leave.Policy
}

// NewLeaveService builds the leave service. policy is the balance-enforcement
// rule from configuration; unknown values fall back to warn.
func NewLeaveService(
	repo repository.LeaveRepository,
	rdb *redis.Client,
	dispatcher *worker.Dispatcher,
	policy leave.Policy,
) LeaveService {
	if !policy.Valid() {
		policy = leave.PolicyWarn
	}
	return &leaveService{repo: repo, rdb: rdb, dispatcher: dispatcher, policy: policy}
}

const balanceCacheTTL = 60 * time.Second

func balanceCacheKey(employeeID uuid.UUID) string {
	return "leave:balances:" + employeeID.String()
}

// ApplyLeave validates and persists a leave request. The balance check result
// is applied per the configured policy: strict blocks, warn accepts with a
// warning, allow accepts silently. Requested days are reserved as planned so
// subsequent requests see them.
func (s *leaveService) ApplyLeave(ctx context.Context, req dto.ApplyLeaveRequest) (*dto.LeaveResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return nil, fault.Validationf("invalid employee_id: %s", req.EmployeeID)
	}
	leaveType := leave.Type(req.LeaveType)
	shiftType := leave.Shift(req.ShiftType)
	if !leaveType.Valid() {
		return nil, fault.Validationf("unknown leave type %q", req.LeaveType)
	}
	if !shiftType.Valid() {
		return nil, fault.Validationf("unknown shift type %q", req.ShiftType)
	}

	if len(req.Dates) == 0 {
		return nil, fault.Validationf("at least one date is required")
	}
	dates := make([]time.Time, 0, len(req.Dates))
	for _, raw := range req.Dates {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, fault.Validationf("invalid date %q", raw)
		}
		dates = append(dates, d)
	}

	consumed := leave.ConsumedDays(dates, shiftType)

	available := decimal.Zero
	balance, err := s.repo.FindBalance(ctx, employeeID, leaveType)
	switch {
	case err == nil:
		available = leave.RemainingBalance(balance.Total, balance.Used, balance.Planned)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No allowance row yet — everything requested is a shortfall.
	default:
		return nil, err
	}

	check := leave.ValidateRequest(consumed, available)
	var warning *string
	if check.ExceedsBalance {
		switch s.policy {
		case leave.PolicyStrict:
			return nil, fault.Validationf("insufficient %s balance: short by %s day(s)",
				leaveType, check.Shortfall)
		case leave.PolicyWarn:
			msg := fmt.Sprintf("request exceeds available %s balance by %s day(s)",
				leaveType, check.Shortfall)
			warning = &msg
		}
	}

	// Deduplicated, ordered day rows.
	uniqueDays := schedule.ClampToRange(dates, minDate(dates), maxDate(dates))

	request := model.LeaveRequest{
		EmployeeID:      employeeID,
		LeaveType:       leaveType,
		ShiftType:       shiftType,
		ConsumedDays:    consumed,
		Reason:          req.Reason,
		Status:          "pending",
		ExceededBalance: check.ExceedsBalance,
	}
	for _, d := range uniqueDays {
		request.Days = append(request.Days, model.LeaveRequestDay{Day: d})
	}

	if err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateRequest(ctx, tx, &request); err != nil {
			return err
		}
		return s.repo.AddPlannedTx(tx, employeeID, leaveType, consumed)
	}); err != nil {
		return nil, err
	}

	// The cached balances are stale now.
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, balanceCacheKey(employeeID)).Err()
	}

	// Fire-and-forget: the HR gateway owns the approval workflow.
	if s.dispatcher != nil {
		dayStrings := make([]string, 0, len(uniqueDays))
		for _, d := range uniqueDays {
			dayStrings = append(dayStrings, d.Format(dateLayout))
		}
		_ = s.dispatcher.EnqueueNotify(ctx, infra.LeaveSubmission{
			RequestID:       request.ID.String(),
			EmployeeID:      employeeID.String(),
			LeaveType:       string(leaveType),
			ShiftType:       string(shiftType),
			Dates:           dayStrings,
			ConsumedDays:    consumed.String(),
			Reason:          req.Reason,
			ExceededBalance: check.ExceedsBalance,
		})
	}

	resp := leaveToResponse(&request)
	resp.Warning = warning
	return resp, nil
}

// GetBalances reports all leave-type balances for an employee, serving from
// the redis cache when fresh. Types without a row report zeros; available may
// be negative when a type is over-allocated.
func (s *leaveService) GetBalances(ctx context.Context, employeeID uuid.UUID) (*dto.LeaveBalancesResponse, error) {
	key := balanceCacheKey(employeeID)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp dto.LeaveBalancesResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	rows, err := s.repo.FindBalances(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	byType := make(map[leave.Type]model.LeaveBalance, len(rows))
	for _, row := range rows {
		byType[row.LeaveType] = row
	}

	resp := dto.LeaveBalancesResponse{EmployeeID: employeeID.String()}
	for _, typ := range leave.Types() {
		row := byType[typ] // zero value when absent
		resp.Balances = append(resp.Balances, dto.LeaveBalanceResponse{
			LeaveType: string(typ),
			Total:     row.Total,
			Used:      row.Used,
			Planned:   row.Planned,
			Available: leave.RemainingBalance(row.Total, row.Used, row.Planned),
		})
	}

	if s.rdb != nil {
		if data, err := json.Marshal(&resp); err == nil {
			_ = s.rdb.Set(ctx, key, data, balanceCacheTTL).Err()
		}
	}
	return &resp, nil
}

func (s *leaveService) ListLeaves(ctx context.Context, filter dto.LeaveFilter) (*dto.LeaveListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	requests, total, err := s.repo.ListRequests(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LeaveResponse, 0, len(requests))
	for i := range requests {
		items = append(items, *leaveToResponse(&requests[i]))
	}
	return &dto.LeaveListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func minDate(dates []time.Time) time.Time {
	min := dates[0]
	for _, d := range dates[1:] {
		if d.Before(min) {
			min = d
		}
	}
	return min
}

func maxDate(dates []time.Time) time.Time {
	max := dates[0]
	for _, d := range dates[1:] {
		if d.After(max) {
			max = d
		}
	}
	return max
}

func leaveToResponse(req *model.LeaveRequest) *dto.LeaveResponse {
	dates := make([]string, 0, len(req.Days))
	for _, d := range req.Days {
		dates = append(dates, d.Day.Format(dateLayout))
	}
	return &dto.LeaveResponse{
		ID:           req.ID.String(),
		EmployeeID:   req.EmployeeID.String(),
		LeaveType:    string(req.LeaveType),
		ShiftType:    string(req.ShiftType),
		Dates:        dates,
		ConsumedDays: req.ConsumedDays,
		Reason:       req.Reason,
		Status:       req.Status,
		CreatedAt:    req.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
