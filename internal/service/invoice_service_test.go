package service_test

import (
	"context"
	"testing"
	"time"

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

type stubInvoiceRepo struct {
	invoices  map[uuid.UUID]*model.Invoice
	numberSeq int64
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{invoices: make(map[uuid.UUID]*model.Invoice)}
}

func (r *stubInvoiceRepo) Create(_ context.Context, _ *gorm.DB, inv *model.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	r.invoices[inv.ID] = inv
	return nil
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return inv, nil
}

func (r *stubInvoiceRepo) NextNumber(_ context.Context, _ *gorm.DB) (int64, error) {
	r.numberSeq++
	return r.numberSeq, nil
}

func (r *stubInvoiceRepo) List(_ context.Context, _ dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	out := make([]model.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

func (r *stubInvoiceRepo) DB() *gorm.DB { return nil }

var _ repository.InvoiceRepository = (*stubInvoiceRepo)(nil)

type stubDocumentRepo struct {
	docs map[uuid.UUID]*model.InvoiceDocument // keyed by invoice id
}

func newStubDocumentRepo() *stubDocumentRepo {
	return &stubDocumentRepo{docs: make(map[uuid.UUID]*model.InvoiceDocument)}
}

func (r *stubDocumentRepo) Create(_ context.Context, doc *model.InvoiceDocument) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	r.docs[doc.InvoiceID] = doc
	return nil
}

func (r *stubDocumentRepo) Update(_ context.Context, doc *model.InvoiceDocument) error {
	r.docs[doc.InvoiceID] = doc
	return nil
}

func (r *stubDocumentRepo) FindByInvoiceID(_ context.Context, invoiceID uuid.UUID) (*model.InvoiceDocument, error) {
	doc, ok := r.docs[invoiceID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return doc, nil
}

func (r *stubDocumentRepo) ListPendingRetries(_ context.Context, before time.Time, limit int) ([]model.InvoiceDocument, error) {
	var out []model.InvoiceDocument
	for _, doc := range r.docs {
		if doc.Status == "failed" && doc.NextRetryAt != nil && !doc.NextRetryAt.After(before) {
			out = append(out, *doc)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

var _ repository.InvoiceDocumentRepository = (*stubDocumentRepo)(nil)

func buildInvoiceSvc() (service.InvoiceService, *stubInvoiceRepo, *stubDocumentRepo) {
	repo := newStubInvoiceRepo()
	docRepo := newStubDocumentRepo()
	svc := service.NewInvoiceService(repo, docRepo, nil)
	return svc, repo, docRepo
}

func item(desc string, qty int, price float64) dto.InvoiceItemRequest {
	return dto.InvoiceItemRequest{Description: desc, Quantity: qty, UnitPrice: decimal.NewFromFloat(price)}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreateInvoice_TotalsAndGSTSplit(t *testing.T) {
	svc, repo, docRepo := buildInvoiceSvc()

	resp, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		ClientName:    "Verma Weddings",
		TaxPercentage: decimal.NewFromInt(18),
		Items: []dto.InvoiceItemRequest{
			item("Stage decoration", 1, 1200),
			item("Floral arches", 2, 400),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Number)
	assert.Equal(t, "2000", resp.Subtotal.String())
	assert.Equal(t, "360", resp.TaxAmount.String())
	assert.Equal(t, "180", resp.CGST.String())
	assert.Equal(t, "180", resp.SGST.String())
	assert.Equal(t, "2360", resp.Total.String())
	assert.Equal(t, "pending", resp.DocumentStatus)

	stored, err := repo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)

	doc, err := docRepo.FindByInvoiceID(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", doc.Status)
}

func TestCreateInvoice_OddCentGoesToCGST(t *testing.T) {
	svc, _, _ := buildInvoiceSvc()

	// subtotal 1.00 at 3% → tax 0.03, which cannot split evenly
	resp, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		ClientName:    "Verma Weddings",
		TaxPercentage: decimal.NewFromInt(3),
		Items:         []dto.InvoiceItemRequest{item("Misc", 1, 1.00)},
	})
	require.NoError(t, err)
	assert.Equal(t, "0.02", resp.CGST.String())
	assert.Equal(t, "0.01", resp.SGST.String())
	assert.True(t, resp.CGST.Add(resp.SGST).Equal(resp.TaxAmount))
}

func TestCreateInvoice_SequentialNumbers(t *testing.T) {
	svc, _, _ := buildInvoiceSvc()

	req := dto.CreateInvoiceRequest{
		ClientName:    "Verma Weddings",
		TaxPercentage: decimal.Zero,
		Items:         []dto.InvoiceItemRequest{item("Misc", 1, 10)},
	}
	first, err := svc.CreateInvoice(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.CreateInvoice(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.Number+1, second.Number)
}

func TestCreateInvoice_InvalidTaxPercentage(t *testing.T) {
	svc, repo, _ := buildInvoiceSvc()

	_, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		ClientName:    "Verma Weddings",
		TaxPercentage: decimal.NewFromInt(150),
		Items:         []dto.InvoiceItemRequest{item("Misc", 1, 10)},
	})
	assert.True(t, fault.IsValidation(err))
	assert.Empty(t, repo.invoices)
}

func TestCreateInvoice_BlankDescription(t *testing.T) {
	svc, _, _ := buildInvoiceSvc()

	_, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		ClientName:    "Verma Weddings",
		TaxPercentage: decimal.Zero,
		Items:         []dto.InvoiceItemRequest{item("   ", 1, 10)},
	})
	assert.True(t, fault.IsValidation(err))
}

func TestGetInvoice_Unknown(t *testing.T) {
	svc, _, _ := buildInvoiceSvc()

	_, err := svc.GetInvoice(context.Background(), uuid.New())
	assert.True(t, fault.IsNotFound(err))
}

func TestGetDocument_OnlyWhenReady(t *testing.T) {
	svc, _, docRepo := buildInvoiceSvc()

	created, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		ClientName:    "Verma Weddings",
		TaxPercentage: decimal.Zero,
		Items:         []dto.InvoiceItemRequest{item("Misc", 1, 10)},
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	_, err = svc.GetDocument(context.Background(), id)
	assert.True(t, fault.IsNotFound(err), "pending document is not downloadable")

	doc, _ := docRepo.FindByInvoiceID(context.Background(), id)
	path := "invoice-1.pdf"
	doc.Status = "ready"
	doc.PDFPath = &path

	got, err := svc.GetDocument(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "invoice-1.pdf", *got.PDFPath)
}
