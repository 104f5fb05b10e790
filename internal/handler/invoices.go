package handler

import (
	"fmt"
	"net/http"
	"path/filepath"

	"crewbooks/internal/apierror"
	"crewbooks/internal/dto"
	"crewbooks/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvoicesHandler struct {
	svc         service.InvoiceService
	storagePath string
}

func NewInvoicesHandler(svc service.InvoiceService, storagePath string) *InvoicesHandler {
	return &InvoicesHandler{svc: svc, storagePath: storagePath}
}

// CreateInvoice godoc
// @Summary      Create an invoice
// @Description  Derives subtotal, tax and total from the item list and splits GST into equal CGST/SGST halves. PDF generation runs asynchronously; poll document_status.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateInvoiceRequest true "Invoice detail"
// @Success      201  {object} dto.InvoiceResponse
// @Failure      400  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/invoices [post]
func (h *InvoicesHandler) CreateInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetInvoice godoc
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice UUID"
// @Success      200 {object} dto.InvoiceResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/invoices/{id} [get]
func (h *InvoicesHandler) GetInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid invoice id"))
		return
	}
	resp, err := h.svc.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListInvoices godoc
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Param        month query string false "Month YYYY-MM"
// @Param        page  query int    false "Page (default 1)"
// @Param        limit query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.InvoiceListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/invoices [get]
func (h *InvoicesHandler) ListInvoices(c *gin.Context) {
	var filter dto.InvoiceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DownloadPDF godoc
// @Summary      Download the invoice PDF
// @Description  Streams the generated PDF. Returns 404 until the background worker has produced it.
// @Tags         invoices
// @Produce      application/pdf
// @Param        id path string true "Invoice UUID"
// @Success      200
// @Failure      404 {object} apierror.APIError
// @Router       /v1/invoices/{id}/pdf [get]
func (h *InvoicesHandler) DownloadPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid invoice id"))
		return
	}
	doc, err := h.svc.GetDocument(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(
		filepath.Join(h.storagePath, *doc.PDFPath),
		fmt.Sprintf("invoice-%s.pdf", id),
	)
}
