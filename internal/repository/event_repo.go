package repository

import (
	"context"
	"time"

	"crewbooks/internal/dto"
	"crewbooks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(ctx context.Context, tx *gorm.DB, e *model.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	List(ctx context.Context, filter dto.EventFilter) ([]model.Event, int64, error)
	AddDaysTx(tx *gorm.DB, eventID uuid.UUID, days []time.Time) error
	RemoveDaysTx(tx *gorm.DB, eventID uuid.UUID, days []time.Time) error
	DB() *gorm.DB
}

type eventRepo struct{ db *gorm.DB }

func NewEventRepository(db *gorm.DB) EventRepository { return &eventRepo{db: db} }

func (r *eventRepo) DB() *gorm.DB { return r.db }

func (r *eventRepo) Create(ctx context.Context, tx *gorm.DB, e *model.Event) error {
	return tx.WithContext(ctx).Create(e).Error
}

func (r *eventRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	var e model.Event
	err := r.db.WithContext(ctx).
		Preload("Days", func(db *gorm.DB) *gorm.DB { return db.Order("day ASC") }).
		First(&e, id).Error
	return &e, err
}

func (r *eventRepo) List(ctx context.Context, filter dto.EventFilter) ([]model.Event, int64, error) {
	var events []model.Event
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Event{})
	if filter.Month != "" {
		q = q.Where("to_char(starts_on, 'YYYY-MM') = ?", filter.Month)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Days", func(db *gorm.DB) *gorm.DB { return db.Order("day ASC") }).
		Order("starts_on DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&events).Error

	return events, total, err
}

func (r *eventRepo) AddDaysTx(tx *gorm.DB, eventID uuid.UUID, days []time.Time) error {
	if len(days) == 0 {
		return nil
	}
	rows := make([]model.EventDay, 0, len(days))
	for _, d := range days {
		rows = append(rows, model.EventDay{EventID: eventID, Day: d})
	}
	return tx.Create(&rows).Error
}

func (r *eventRepo) RemoveDaysTx(tx *gorm.DB, eventID uuid.UUID, days []time.Time) error {
	if len(days) == 0 {
		return nil
	}
	return tx.Where("event_id = ? AND day IN ?", eventID, days).
		Delete(&model.EventDay{}).Error
}
