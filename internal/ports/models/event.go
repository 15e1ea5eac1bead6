package models

import (
	"time"

	"gorm.io/gorm"
)

// fallbackDuration is assumed for events stored without an explicit end time.
const fallbackDuration = 3 * time.Hour

// Event represents a single rotation-dating event. Events are seeded by
// external tooling; this service only reads them.
type Event struct {
	gorm.Model
	Title    string    `gorm:"column:title;size:255;not null" json:"title"`
	Venue    string    `gorm:"column:venue;size:255" json:"venue"`
	StartsAt time.Time `gorm:"column:starts_at;not null" json:"starts_at"`
	EndsAt   time.Time `gorm:"column:ends_at" json:"ends_at"`
}

// TableName specifies the table name for Event
func (Event) TableName() string {
	return "events"
}

// HasEnded reports whether the event is over at the given instant. This is
// the single place end-time logic lives; callers must not re-derive it.
func (e *Event) HasEnded(now time.Time) bool {
	end := e.EndsAt
	if end.IsZero() {
		end = e.StartsAt.Add(fallbackDuration)
	}
	return now.After(end)
}
