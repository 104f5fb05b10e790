package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateEventRequest struct {
	Name     string  `json:"name"      validate:"required,min=2"`
	Venue    *string `json:"venue"     validate:"omitempty,min=2"`
	StartsOn string  `json:"starts_on" validate:"required,datetime=2006-01-02"`
	EndsOn   string  `json:"ends_on"   validate:"required,datetime=2006-01-02"`
}

// UpdateActiveDaysRequest replaces the event's active-day set with an edited
// one. Days outside the current event range are clamped away; the backend
// stores only the add/remove delta against the existing rows.
type UpdateActiveDaysRequest struct {
	Days []string `json:"days" validate:"required,dive,datetime=2006-01-02"`
}

// EventFilter is bound from the query string of GET /v1/events.
type EventFilter struct {
	Month string `form:"month"` // YYYY-MM; empty = all
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EventResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Venue      *string  `json:"venue,omitempty"`
	StartsOn   string   `json:"starts_on"`
	EndsOn     string   `json:"ends_on"`
	ActiveDays []string `json:"active_days"`
	CreatedAt  string   `json:"created_at"`
}

type EventListResponse struct {
	Data  []EventResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ActiveDaysDeltaResponse reports the minimal change applied by an active-day
// reconciliation.
type ActiveDaysDeltaResponse struct {
	Added   []string `json:"added"`
	Removed []string `json:"removed"`
	Days    []string `json:"days"`
}
