package service_test

import (
	"context"
	"testing"

	"crewbooks/internal/dto"
	"crewbooks/internal/fault"
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

// stubSaleRepo is an in-memory SaleRepository for testing.
type stubSaleRepo struct {
	sales    map[uuid.UUID]*model.Sale
	payments []model.SalePayment
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) AddPayment(_ context.Context, p *model.SalePayment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.payments = append(r.payments, *p)
	return nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

func payment(amount float64, paidOn string) dto.PaymentRequest {
	return dto.PaymentRequest{
		Amount: decimal.NewFromFloat(amount),
		Mode:   "cash",
		PaidOn: paidOn,
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreateSale_ComputesNetAndBalance(t *testing.T) {
	repo := newStubSaleRepo()
	svc := service.NewSaleService(repo)

	resp, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientName:  "Mehta Decorators",
		GrossAmount: decimal.NewFromInt(1000),
		Discount:    decimal.NewFromInt(100),
		Payments: []dto.PaymentRequest{
			payment(250, "2026-01-10"),
			payment(250, "2026-02-10"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "900", resp.NetAmount.String())
	assert.Equal(t, "500", resp.TotalReceived.String())
	assert.Equal(t, "400", resp.BalanceDue.String())
	assert.Len(t, resp.Payments, 2)

	stored, err := repo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, "900", stored.NetAmount.String())
}

func TestCreateSale_DiscountExceedsGross(t *testing.T) {
	svc := service.NewSaleService(newStubSaleRepo())

	_, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientName:  "Mehta Decorators",
		GrossAmount: decimal.NewFromInt(100),
		Discount:    decimal.NewFromInt(150),
	})
	assert.True(t, fault.IsValidation(err))
}

func TestCreateSale_OverpaymentRejected(t *testing.T) {
	repo := newStubSaleRepo()
	svc := service.NewSaleService(repo)

	_, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientName:  "Mehta Decorators",
		GrossAmount: decimal.NewFromInt(500),
		Discount:    decimal.Zero,
		Payments:    []dto.PaymentRequest{payment(600, "2026-01-10")},
	})
	assert.True(t, fault.IsValidation(err))
	assert.Empty(t, repo.sales, "nothing should be persisted on rejection")
}

func TestCreateSale_ExactSettlement(t *testing.T) {
	svc := service.NewSaleService(newStubSaleRepo())

	resp, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientName:  "Sharma Events",
		GrossAmount: decimal.NewFromFloat(1250.50),
		Discount:    decimal.NewFromFloat(50.50),
		Payments:    []dto.PaymentRequest{payment(1200, "2026-01-15")},
	})
	require.NoError(t, err)
	assert.True(t, resp.BalanceDue.IsZero())
}

func TestRecordPayment_AppendsAndRevalidates(t *testing.T) {
	repo := newStubSaleRepo()
	svc := service.NewSaleService(repo)

	created, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientName:  "Sharma Events",
		GrossAmount: decimal.NewFromInt(1000),
		Discount:    decimal.Zero,
		Payments:    []dto.PaymentRequest{payment(400, "2026-01-10")},
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	resp, err := svc.RecordPayment(context.Background(), id, dto.RecordPaymentRequest{
		Payment: payment(350, "2026-02-10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "750", resp.TotalReceived.String())
	assert.Equal(t, "250", resp.BalanceDue.String())
	require.Len(t, repo.payments, 1)
	assert.Equal(t, 1, repo.payments[0].Position)

	// A further payment pushing past the net amount is rejected.
	_, err = svc.RecordPayment(context.Background(), id, dto.RecordPaymentRequest{
		Payment: payment(300, "2026-03-10"),
	})
	assert.True(t, fault.IsValidation(err))
	assert.Len(t, repo.payments, 1, "rejected payment must not be stored")
}

func TestRecordPayment_UnknownSale(t *testing.T) {
	svc := service.NewSaleService(newStubSaleRepo())

	_, err := svc.RecordPayment(context.Background(), uuid.New(), dto.RecordPaymentRequest{
		Payment: payment(100, "2026-01-10"),
	})
	assert.True(t, fault.IsNotFound(err))
}

func TestGetSale_RecomputesBalanceFromPayments(t *testing.T) {
	repo := newStubSaleRepo()
	svc := service.NewSaleService(repo)

	created, err := svc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientName:  "Kapoor Caterers",
		GrossAmount: decimal.NewFromInt(800),
		Discount:    decimal.NewFromInt(80),
		Payments:    []dto.PaymentRequest{payment(500, "2026-01-05")},
	})
	require.NoError(t, err)

	resp, err := svc.GetSale(context.Background(), uuid.MustParse(created.ID))
	require.NoError(t, err)
	assert.Equal(t, "720", resp.NetAmount.String())
	assert.Equal(t, "220", resp.BalanceDue.String())
}
