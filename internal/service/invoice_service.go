package service

import (
	"context"

	"crewbooks/internal/dto"
	"crewbooks/internal/fault"
	"crewbooks/internal/ledger"
	"crewbooks/internal/model"
	"crewbooks/internal/repository"
	"crewbooks/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceService interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter dto.InvoiceFilter) (*dto.InvoiceListResponse, error)
	GetDocument(ctx context.Context, id uuid.UUID) (*model.InvoiceDocument, error)
}

type invoiceService struct {
	repo         repository.InvoiceRepository
	documentRepo repository.InvoiceDocumentRepository
	dispatcher   *worker.Dispatcher
}

func NewInvoiceService(
	repo repository.InvoiceRepository,
	documentRepo repository.InvoiceDocumentRepository,
	dispatcher *worker.Dispatcher,
) InvoiceService {
	return &invoiceService{repo: repo, documentRepo: documentRepo, dispatcher: dispatcher}
}

// CreateInvoice derives all totals from the item list — the stored subtotal,
// tax and total are never taken from the request. PDF generation is handed to
// the worker pool; the invoice itself is available immediately.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	items := make([]ledger.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		item, err := ledger.NewLineItem(it.Description, it.Quantity, it.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	totals, err := ledger.ComputeTotals(items, req.TaxPercentage)
	if err != nil {
		return nil, err
	}
	cgst, sgst := ledger.SplitTax(totals.TaxAmount)

	invoice := model.Invoice{
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		TaxPercentage: req.TaxPercentage,
		Subtotal:      totals.Subtotal,
		TaxAmount:     totals.TaxAmount,
		CGST:          cgst,
		SGST:          sgst,
		Total:         totals.Total,
	}
	for i, item := range items {
		invoice.Items = append(invoice.Items, model.InvoiceItem{
			Position:    i,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount(),
		})
	}

	if err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		number, err := s.repo.NextNumber(ctx, tx)
		if err != nil {
			return err
		}
		invoice.Number = number
		return s.repo.Create(ctx, tx, &invoice)
	}); err != nil {
		return nil, err
	}

	doc := model.InvoiceDocument{InvoiceID: invoice.ID, Status: "pending"}
	if err := s.documentRepo.Create(ctx, &doc); err != nil {
		return nil, err
	}

	// Best-effort: a failed enqueue leaves the document pending for the cron.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueDocument(ctx, worker.DocumentJobPayload{
			InvoiceID:   invoice.ID.String(),
			ClientEmail: req.ClientEmail,
		})
	}

	return invoiceToResponse(&invoice, doc.Status), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fault.NotFoundf("invoice %s not found", id)
	}
	status := "pending"
	if doc, err := s.documentRepo.FindByInvoiceID(ctx, id); err == nil {
		status = doc.Status
	}
	return invoiceToResponse(invoice, status), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter dto.InvoiceFilter) (*dto.InvoiceListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	invoices, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		status := "pending"
		if doc, err := s.documentRepo.FindByInvoiceID(ctx, inv.ID); err == nil {
			status = doc.Status
		}
		items = append(items, *invoiceToResponse(inv, status))
	}
	return &dto.InvoiceListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// GetDocument returns the document row for PDF download. A document that is
// not ready yet is reported as not found — the client polls document_status.
func (s *invoiceService) GetDocument(ctx context.Context, id uuid.UUID) (*model.InvoiceDocument, error) {
	doc, err := s.documentRepo.FindByInvoiceID(ctx, id)
	if err != nil || doc.Status != "ready" || doc.PDFPath == nil {
		return nil, fault.NotFoundf("no generated document for invoice %s", id)
	}
	return doc, nil
}

func invoiceToResponse(inv *model.Invoice, documentStatus string) *dto.InvoiceResponse {
	items := make([]dto.InvoiceItemResponse, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, dto.InvoiceItemResponse{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		})
	}
	return &dto.InvoiceResponse{
		ID:             inv.ID.String(),
		Number:         inv.Number,
		ClientName:     inv.ClientName,
		TaxPercentage:  inv.TaxPercentage,
		Subtotal:       inv.Subtotal,
		TaxAmount:      inv.TaxAmount,
		CGST:           inv.CGST,
		SGST:           inv.SGST,
		Total:          inv.Total,
		Items:          items,
		DocumentStatus: documentStatus,
		CreatedAt:      inv.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
