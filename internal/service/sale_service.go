package service

import (
	"context"
	"time"

	"crewbooks/internal/dto"
	"crewbooks/internal/fault"
	"crewbooks/internal/ledger"
	"crewbooks/internal/model"
	"crewbooks/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleService interface {
	CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	RecordPayment(ctx context.Context, id uuid.UUID, req dto.RecordPaymentRequest) (*dto.SaleResponse, error)
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	repo repository.SaleRepository
}

func NewSaleService(repo repository.SaleRepository) SaleService {
	return &saleService{repo: repo}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

const dateLayout = "2006-01-02"

// parseInstallments converts payment DTOs into ledger installments,
// preserving input order.
func parseInstallments(payments []dto.PaymentRequest) ([]ledger.Installment, error) {
	installments := make([]ledger.Installment, 0, len(payments))
	for _, p := range payments {
		paidOn, err := time.Parse(dateLayout, p.PaidOn)
		if err != nil {
			return nil, fault.Validationf("invalid payment date %q", p.PaidOn)
		}
		next, err := ledger.AddInstallment(installments, ledger.Installment{
			Amount: p.Amount,
			PaidOn: paidOn,
			Mode:   p.Mode,
		})
		if err != nil {
			return nil, err
		}
		installments = next
	}
	return installments, nil
}

// CreateSale validates and persists a submitted sale. Submission is the hard
// boundary: a payment set exceeding the net amount is rejected here, never
// silently clamped.
func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	net, err := ledger.ComputeNet(req.GrossAmount, req.Discount)
	if err != nil {
		return nil, err
	}

	installments, err := parseInstallments(req.Payments)
	if err != nil {
		return nil, err
	}
	balance, err := ledger.ComputeBalance(net, installments)
	if err != nil {
		return nil, err
	}

	sale := model.Sale{
		ClientName:  req.ClientName,
		EventName:   req.EventName,
		GrossAmount: req.GrossAmount,
		Discount:    req.Discount,
		NetAmount:   net,
	}
	for i, inst := range installments {
		sale.Payments = append(sale.Payments, model.SalePayment{
			Position: i,
			Amount:   inst.Amount,
			Mode:     inst.Mode,
			PaidOn:   inst.PaidOn,
		})
	}

	if err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, &sale)
	}); err != nil {
		return nil, err
	}

	return saleToResponse(&sale, balance), nil
}

// RecordPayment appends one installment to a persisted sale. The sale's core
// fields stay immutable; only the payment history grows, and the combined
// total is re-validated against the net amount.
func (s *saleService) RecordPayment(ctx context.Context, id uuid.UUID, req dto.RecordPaymentRequest) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fault.NotFoundf("sale %s not found", id)
	}

	existing := paymentsToInstallments(sale.Payments)
	paidOn, err := time.Parse(dateLayout, req.Payment.PaidOn)
	if err != nil {
		return nil, fault.Validationf("invalid payment date %q", req.Payment.PaidOn)
	}
	combined, err := ledger.AddInstallment(existing, ledger.Installment{
		Amount: req.Payment.Amount,
		PaidOn: paidOn,
		Mode:   req.Payment.Mode,
	})
	if err != nil {
		return nil, err
	}
	balance, err := ledger.ComputeBalance(sale.NetAmount, combined)
	if err != nil {
		return nil, err
	}

	payment := model.SalePayment{
		SaleID:   sale.ID,
		Position: len(sale.Payments),
		Amount:   req.Payment.Amount,
		Mode:     req.Payment.Mode,
		PaidOn:   paidOn,
	}
	if err := s.repo.AddPayment(ctx, &payment); err != nil {
		return nil, err
	}
	sale.Payments = append(sale.Payments, payment)

	return saleToResponse(sale, balance), nil
}

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fault.NotFoundf("sale %s not found", id)
	}
	balance, _ := ledger.ComputeBalance(sale.NetAmount, paymentsToInstallments(sale.Payments))
	return saleToResponse(sale, balance), nil
}

func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		sale := &sales[i]
		balance, _ := ledger.ComputeBalance(sale.NetAmount, paymentsToInstallments(sale.Payments))
		items = append(items, *saleToResponse(sale, balance))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func paymentsToInstallments(payments []model.SalePayment) []ledger.Installment {
	installments := make([]ledger.Installment, 0, len(payments))
	for _, p := range payments {
		installments = append(installments, ledger.Installment{
			Amount: p.Amount,
			PaidOn: p.PaidOn,
			Mode:   p.Mode,
		})
	}
	return installments
}

func saleToResponse(sale *model.Sale, balance ledger.Balance) *dto.SaleResponse {
	payments := make([]dto.PaymentResponse, 0, len(sale.Payments))
	for _, p := range sale.Payments {
		payments = append(payments, dto.PaymentResponse{
			Amount: p.Amount,
			Mode:   p.Mode,
			PaidOn: p.PaidOn.Format(dateLayout),
		})
	}
	return &dto.SaleResponse{
		ID:            sale.ID.String(),
		ClientName:    sale.ClientName,
		EventName:     sale.EventName,
		GrossAmount:   sale.GrossAmount,
		Discount:      sale.Discount,
		NetAmount:     sale.NetAmount,
		TotalReceived: balance.TotalReceived,
		BalanceDue:    balance.BalanceDue,
		Payments:      payments,
		CreatedAt:     sale.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
