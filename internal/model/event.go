package model

import (
	"time"

	"github.com/google/uuid"
)

// Event stores a scheduled event. Active days are the child rows; every day
// must lie within [StartsOn, EndsOn] inclusive — enforced by the service via
// range clamping before any write.
type Event struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Venue     *string   `gorm:"type:varchar(300)"`
	StartsOn  time.Time `gorm:"type:date;not null"`
	EndsOn    time.Time `gorm:"type:date;not null"`
	Days      []EventDay `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventDay is one active calendar date of an event.
type EventDay struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventID uuid.UUID `gorm:"type:uuid;index:idx_event_day,unique;not null"`
	Day     time.Time `gorm:"type:date;index:idx_event_day,unique;not null"`
}
