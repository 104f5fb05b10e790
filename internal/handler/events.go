package handler

import (
	"net/http"

	"crewbooks/internal/apierror"
	"crewbooks/internal/dto"
	"crewbooks/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EventsHandler struct{ svc service.EventService }

func NewEventsHandler(svc service.EventService) *EventsHandler { return &EventsHandler{svc: svc} }

// CreateEvent godoc
// @Summary      Create an event
// @Description  Creates an event with every day of [starts_on, ends_on] active by default.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateEventRequest true "Event detail"
// @Success      201  {object} dto.EventResponse
// @Failure      400  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/events [post]
func (h *EventsHandler) CreateEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateEvent(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetEvent godoc
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        id path string true "Event UUID"
// @Success      200 {object} dto.EventResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/events/{id} [get]
func (h *EventsHandler) GetEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid event id"))
		return
	}
	resp, err := h.svc.GetEvent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListEvents godoc
// @Summary      List events
// @Tags         events
// @Produce      json
// @Param        month query string false "Month YYYY-MM"
// @Param        page  query int    false "Page (default 1)"
// @Param        limit query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.EventListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/events [get]
func (h *EventsHandler) ListEvents(c *gin.Context) {
	var filter dto.EventFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListEvents(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateActiveDays godoc
// @Summary      Replace the active-day set
// @Description  Reconciles an edited day list against the stored one. Days outside the event range are clamped away; only the add/remove delta is written and returned.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id   path string                      true "Event UUID"
// @Param        body body dto.UpdateActiveDaysRequest true "Edited day list"
// @Success      200  {object} dto.ActiveDaysDeltaResponse
// @Failure      404  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/events/{id}/days [put]
func (h *EventsHandler) UpdateActiveDays(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid event id"))
		return
	}
	var req dto.UpdateActiveDaysRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateActiveDays(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FillDays godoc
// @Summary      Restore the full day range
// @Description  Re-activates every day of the event range, undoing manual exclusions.
// @Tags         events
// @Produce      json
// @Param        id path string true "Event UUID"
// @Success      200 {object} dto.ActiveDaysDeltaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/events/{id}/days/fill [post]
func (h *EventsHandler) FillDays(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid event id"))
		return
	}
	resp, err := h.svc.FillDays(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
