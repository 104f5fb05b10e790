package service

import (
	"context"
	"time"

	"crewbooks/internal/dto"
	"crewbooks/internal/fault"
	"crewbooks/internal/model"
	"crewbooks/internal/repository"
	"crewbooks/internal/schedule"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventService interface {
	CreateEvent(ctx context.Context, req dto.CreateEventRequest) (*dto.EventResponse, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error)
	ListEvents(ctx context.Context, filter dto.EventFilter) (*dto.EventListResponse, error)
	UpdateActiveDays(ctx context.Context, id uuid.UUID, req dto.UpdateActiveDaysRequest) (*dto.ActiveDaysDeltaResponse, error)
	FillDays(ctx context.Context, id uuid.UUID) (*dto.ActiveDaysDeltaResponse, error)
}

type eventService struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) EventService {
	return &eventService{repo: repo}
}

// CreateEvent persists a new event with every day of its range active, which
// is the default until the organizer edits the day set.
func (s *eventService) CreateEvent(ctx context.Context, req dto.CreateEventRequest) (*dto.EventResponse, error) {
	startsOn, err := time.Parse(dateLayout, req.StartsOn)
	if err != nil {
		return nil, fault.Validationf("invalid starts_on %q", req.StartsOn)
	}
	endsOn, err := time.Parse(dateLayout, req.EndsOn)
	if err != nil {
		return nil, fault.Validationf("invalid ends_on %q", req.EndsOn)
	}

	days, err := schedule.ExpandRange(startsOn, endsOn)
	if err != nil {
		return nil, err
	}

	event := model.Event{
		Name:     req.Name,
		Venue:    req.Venue,
		StartsOn: schedule.Day(startsOn),
		EndsOn:   schedule.Day(endsOn),
	}
	for _, d := range days {
		event.Days = append(event.Days, model.EventDay{Day: d})
	}

	if err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, &event)
	}); err != nil {
		return nil, err
	}

	return eventToResponse(&event), nil
}

func (s *eventService) GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fault.NotFoundf("event %s not found", id)
	}
	return eventToResponse(event), nil
}

func (s *eventService) ListEvents(ctx context.Context, filter dto.EventFilter) (*dto.EventListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	events, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		items = append(items, *eventToResponse(&events[i]))
	}
	return &dto.EventListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// UpdateActiveDays reconciles an edited day set against the stored one. Days
// outside the event's range are clamped away rather than rejected, and only
// the add/remove delta touches the database.
func (s *eventService) UpdateActiveDays(ctx context.Context, id uuid.UUID, req dto.UpdateActiveDaysRequest) (*dto.ActiveDaysDeltaResponse, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fault.NotFoundf("event %s not found", id)
	}

	edited := make([]time.Time, 0, len(req.Days))
	for _, raw := range req.Days {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, fault.Validationf("invalid day %q", raw)
		}
		edited = append(edited, d)
	}

	desired := schedule.ClampToRange(edited, event.StartsOn, event.EndsOn)
	return s.reconcileDays(ctx, event, desired)
}

// FillDays restores the full-range day set, undoing any manual exclusions.
func (s *eventService) FillDays(ctx context.Context, id uuid.UUID) (*dto.ActiveDaysDeltaResponse, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fault.NotFoundf("event %s not found", id)
	}
	desired, err := schedule.ExpandRange(event.StartsOn, event.EndsOn)
	if err != nil {
		return nil, err
	}
	return s.reconcileDays(ctx, event, desired)
}

func (s *eventService) reconcileDays(ctx context.Context, event *model.Event, desired []time.Time) (*dto.ActiveDaysDeltaResponse, error) {
	current := make([]time.Time, 0, len(event.Days))
	for _, d := range event.Days {
		current = append(current, d.Day)
	}

	added, removed := schedule.Diff(current, desired)

	if len(added) > 0 || len(removed) > 0 {
		if err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			if err := s.repo.RemoveDaysTx(tx, event.ID, removed); err != nil {
				return err
			}
			return s.repo.AddDaysTx(tx, event.ID, added)
		}); err != nil {
			return nil, err
		}
	}

	return &dto.ActiveDaysDeltaResponse{
		Added:   formatDays(added),
		Removed: formatDays(removed),
		Days:    formatDays(desired),
	}, nil
}

func formatDays(days []time.Time) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.Format(dateLayout))
	}
	return out
}

func eventToResponse(event *model.Event) *dto.EventResponse {
	active := make([]string, 0, len(event.Days))
	for _, d := range event.Days {
		active = append(active, d.Day.Format(dateLayout))
	}
	return &dto.EventResponse{
		ID:         event.ID.String(),
		Name:       event.Name,
		Venue:      event.Venue,
		StartsOn:   event.StartsOn.Format(dateLayout),
		EndsOn:     event.EndsOn.Format(dateLayout),
		ActiveDays: active,
		CreatedAt:  event.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
