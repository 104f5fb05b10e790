package handler

import (
	"net/http"

	"crewbooks/internal/apierror"
	"crewbooks/internal/dto"
	"crewbooks/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// CreateSale godoc
// @Summary      Submit a sale
// @Description  Persists a sale with its initial installments. The payment set is validated against the net amount — overpayment is rejected, never clamped.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateSaleRequest true "Sale detail"
// @Success      201  {object} dto.SaleResponse
// @Failure      400  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/sales [post]
func (h *SalesHandler) CreateSale(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateSale(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RecordPayment godoc
// @Summary      Record an installment
// @Description  Appends one payment to an existing sale and re-validates the combined total against the net amount.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id   path string                   true "Sale UUID"
// @Param        body body dto.RecordPaymentRequest true "Installment"
// @Success      200  {object} dto.SaleResponse
// @Failure      404  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/sales/{id}/payments [post]
func (h *SalesHandler) RecordPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid sale id"))
		return
	}
	var req dto.RecordPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordPayment(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetSale godoc
// @Summary      Get a sale
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale UUID"
// @Success      200 {object} dto.SaleResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/sales/{id} [get]
func (h *SalesHandler) GetSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid sale id"))
		return
	}
	resp, err := h.svc.GetSale(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListSales godoc
// @Summary      List sales
// @Description  Paginated sale list, filterable by month (YYYY-MM) and settlement state (due | settled | all).
// @Tags         sales
// @Produce      json
// @Param        month      query string false "Month YYYY-MM"
// @Param        settlement query string false "due | settled | all"
// @Param        page       query int    false "Page (default 1)"
// @Param        limit      query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.SaleListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/sales [get]
func (h *SalesHandler) ListSales(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListSales(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
