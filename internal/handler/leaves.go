package handler

import (
	"net/http"

	"crewbooks/internal/apierror"
	"crewbooks/internal/dto"
	"crewbooks/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LeavesHandler struct{ svc service.LeaveService }

func NewLeavesHandler(svc service.LeaveService) *LeavesHandler { return &LeavesHandler{svc: svc} }

// ApplyLeave godoc
// @Summary      Apply for leave
// @Description  Submits a leave request. Duplicate dates count once; half-day shifts consume 0.5 day each. Exceeding the balance is handled per the configured policy: strict rejects with 422, warn accepts and sets the warning field, allow accepts silently.
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Param        body body dto.ApplyLeaveRequest true "Leave request"
// @Success      201  {object} dto.LeaveResponse
// @Failure      400  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/leaves [post]
func (h *LeavesHandler) ApplyLeave(c *gin.Context) {
	var req dto.ApplyLeaveRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ApplyLeave(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListLeaves godoc
// @Summary      List leave requests
// @Tags         leaves
// @Produce      json
// @Param        employee_id query string false "Employee UUID"
// @Param        status      query string false "pending | approved | rejected | all"
// @Param        page        query int    false "Page (default 1)"
// @Param        limit       query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.LeaveListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/leaves [get]
func (h *LeavesHandler) ListLeaves(c *gin.Context) {
	var filter dto.LeaveFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListLeaves(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetBalances godoc
// @Summary      Leave balances per type
// @Description  Reports total/used/planned/available for every leave type. Available may be negative when a type is over-allocated. Served from a short-lived redis cache.
// @Tags         leaves
// @Produce      json
// @Param        employee_id path string true "Employee UUID"
// @Success      200 {object} dto.LeaveBalancesResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/leaves/balances/{employee_id} [get]
func (h *LeavesHandler) GetBalances(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("employee_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid employee id"))
		return
	}
	resp, err := h.svc.GetBalances(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
