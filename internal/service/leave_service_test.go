package service_test

import (
	"context"
	"testing"

	"crewbooks/internal/dto"
	"crewbooks/internal/fault"
	"crewbooks/internal/leave"
	"crewbooks/internal/model"
	"crewbooks/internal/repository"
	"crewbooks/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type balanceKey struct {
	employee uuid.UUID
	typ      leave.Type
}

type stubLeaveRepo struct {
	requests []*model.LeaveRequest
	balances map[balanceKey]*model.LeaveBalance
}

func newStubLeaveRepo() *stubLeaveRepo {
	return &stubLeaveRepo{balances: make(map[balanceKey]*model.LeaveBalance)}
}

func (r *stubLeaveRepo) seedBalance(employee uuid.UUID, typ leave.Type, total, used, planned float64) {
	r.balances[balanceKey{employee, typ}] = &model.LeaveBalance{
		ID:         uuid.New(),
		EmployeeID: employee,
		LeaveType:  typ,
		Total:      decimal.NewFromFloat(total),
		Used:       decimal.NewFromFloat(used),
		Planned:    decimal.NewFromFloat(planned),
	}
}

func (r *stubLeaveRepo) CreateRequest(_ context.Context, _ *gorm.DB, req *model.LeaveRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	r.requests = append(r.requests, req)
	return nil
}

func (r *stubLeaveRepo) FindRequestByID(_ context.Context, id uuid.UUID) (*model.LeaveRequest, error) {
	for _, req := range r.requests {
		if req.ID == id {
			return req, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubLeaveRepo) ListRequests(_ context.Context, filter dto.LeaveFilter) ([]model.LeaveRequest, int64, error) {
	var out []model.LeaveRequest
	for _, req := range r.requests {
		if filter.EmployeeID != "" && req.EmployeeID.String() != filter.EmployeeID {
			continue
		}
		out = append(out, *req)
	}
	return out, int64(len(out)), nil
}

func (r *stubLeaveRepo) FindBalances(_ context.Context, employeeID uuid.UUID) ([]model.LeaveBalance, error) {
	var out []model.LeaveBalance
	for key, b := range r.balances {
		if key.employee == employeeID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubLeaveRepo) FindBalance(_ context.Context, employeeID uuid.UUID, typ leave.Type) (*model.LeaveBalance, error) {
	b, ok := r.balances[balanceKey{employeeID, typ}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *stubLeaveRepo) AddPlannedTx(_ *gorm.DB, employeeID uuid.UUID, typ leave.Type, days decimal.Decimal) error {
	key := balanceKey{employeeID, typ}
	if b, ok := r.balances[key]; ok {
		b.Planned = b.Planned.Add(days)
		return nil
	}
	r.balances[key] = &model.LeaveBalance{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		LeaveType:  typ,
		Planned:    days,
	}
	return nil
}

func (r *stubLeaveRepo) DB() *gorm.DB { return nil }

var _ repository.LeaveRepository = (*stubLeaveRepo)(nil)

func applyReq(employee uuid.UUID, typ, shift string, dates ...string) dto.ApplyLeaveRequest {
	return dto.ApplyLeaveRequest{
		EmployeeID: employee.String(),
		LeaveType:  typ,
		ShiftType:  shift,
		Dates:      dates,
		Reason:     "family function",
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestApplyLeave_WithinBalance(t *testing.T) {
	repo := newStubLeaveRepo()
	employee := uuid.New()
	repo.seedBalance(employee, leave.TypeAnnual, 10, 2, 1) // available 7

	svc := service.NewLeaveService(repo, nil, nil, leave.PolicyStrict)
	resp, err := svc.ApplyLeave(context.Background(),
		applyReq(employee, "annual", "full_day", "2026-04-01", "2026-04-02", "2026-04-03"))
	require.NoError(t, err)
	assert.Equal(t, "3", resp.ConsumedDays.String())
	assert.Equal(t, "pending", resp.Status)
	assert.Nil(t, resp.Warning)

	// Requested days are reserved as planned.
	b, err := repo.FindBalance(context.Background(), employee, leave.TypeAnnual)
	require.NoError(t, err)
	assert.Equal(t, "4", b.Planned.String())
}

func TestApplyLeave_DuplicateDatesCountOnce(t *testing.T) {
	repo := newStubLeaveRepo()
	employee := uuid.New()
	repo.seedBalance(employee, leave.TypeCasual, 5, 0, 0)

	svc := service.NewLeaveService(repo, nil, nil, leave.PolicyStrict)
	resp, err := svc.ApplyLeave(context.Background(),
		applyReq(employee, "casual", "first_half", "2026-04-01", "2026-04-01"))
	require.NoError(t, err)
	assert.Equal(t, "0.5", resp.ConsumedDays.String())
	assert.Len(t, resp.Dates, 1)
}

func TestApplyLeave_StrictPolicyBlocks(t *testing.T) {
	repo := newStubLeaveRepo()
	employee := uuid.New()
	repo.seedBalance(employee, leave.TypeSick, 2, 1, 0) // available 1

	svc := service.NewLeaveService(repo, nil, nil, leave.PolicyStrict)
	_, err := svc.ApplyLeave(context.Background(),
		applyReq(employee, "sick", "full_day", "2026-04-01", "2026-04-02"))
	assert.True(t, fault.IsValidation(err))
	assert.Empty(t, repo.requests, "blocked request must not be stored")

	b, _ := repo.FindBalance(context.Background(), employee, leave.TypeSick)
	assert.True(t, b.Planned.IsZero(), "blocked request must not reserve days")
}

func TestApplyLeave_WarnPolicyAcceptsWithWarning(t *testing.T) {
	repo := newStubLeaveRepo()
	employee := uuid.New()
	repo.seedBalance(employee, leave.TypeSick, 2, 1, 0) // available 1

	svc := service.NewLeaveService(repo, nil, nil, leave.PolicyWarn)
	resp, err := svc.ApplyLeave(context.Background(),
		applyReq(employee, "sick", "full_day", "2026-04-01", "2026-04-02"))
	require.NoError(t, err)
	require.NotNil(t, resp.Warning)
	assert.Contains(t, *resp.Warning, "exceeds")

	require.Len(t, repo.requests, 1)
	assert.True(t, repo.requests[0].ExceededBalance)
}

func TestApplyLeave_AllowPolicySilent(t *testing.T) {
	repo := newStubLeaveRepo()
	employee := uuid.New()
	repo.seedBalance(employee, leave.TypeSick, 2, 1, 0)

	svc := service.NewLeaveService(repo, nil, nil, leave.PolicyAllow)
	resp, err := svc.ApplyLeave(context.Background(),
		applyReq(employee, "sick", "full_day", "2026-04-01", "2026-04-02"))
	require.NoError(t, err)
	assert.Nil(t, resp.Warning)
	require.Len(t, repo.requests, 1)
	assert.True(t, repo.requests[0].ExceededBalance, "overshoot is still recorded for approvers")
}

func TestApplyLeave_NoBalanceRow(t *testing.T) {
	repo := newStubLeaveRepo()
	employee := uuid.New()

	svc := service.NewLeaveService(repo, nil, nil, leave.PolicyWarn)
	resp, err := svc.ApplyLeave(context.Background(),
		applyReq(employee, "study", "full_day", "2026-04-01"))
	require.NoError(t, err)
	assert.NotNil(t, resp.Warning)

	// Reservation creates the missing row with a zero allowance.
	b, err := repo.FindBalance(context.Background(), employee, leave.TypeStudy)
	require.NoError(t, err)
	assert.Equal(t, "1", b.Planned.String())
	assert.True(t, b.Total.IsZero())
}

func TestApplyLeave_UnknownType(t *testing.T) {
	svc := service.NewLeaveService(newStubLeaveRepo(), nil, nil, leave.PolicyAllow)

	req := applyReq(uuid.New(), "sabbatical", "full_day", "2026-04-01")
	_, err := svc.ApplyLeave(context.Background(), req)
	assert.True(t, fault.IsValidation(err))
}

func TestGetBalances_ReportsAllTypes(t *testing.T) {
	repo := newStubLeaveRepo()
	employee := uuid.New()
	repo.seedBalance(employee, leave.TypeAnnual, 10, 3, 2)
	repo.seedBalance(employee, leave.TypeSick, 1, 2, 0) // over-allocated

	svc := service.NewLeaveService(repo, nil, nil, leave.PolicyWarn)
	resp, err := svc.GetBalances(context.Background(), employee)
	require.NoError(t, err)
	require.Len(t, resp.Balances, len(leave.Types()))

	byType := make(map[string]dto.LeaveBalanceResponse)
	for _, b := range resp.Balances {
		byType[b.LeaveType] = b
	}
	assert.Equal(t, "5", byType["annual"].Available.String())
	assert.Equal(t, "-1", byType["sick"].Available.String(), "negative available is reported as-is")
	assert.True(t, byType["casual"].Available.IsZero(), "types without a row report zeros")
}
