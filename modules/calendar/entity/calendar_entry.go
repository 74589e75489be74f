package entity

import (
	"time"

	"github.com/google/uuid"
)

// CalendarEntry is a denormalized per-(event, user) copy of event fields.
// It lets a user query their own calendar without scanning all events.
// Each entry is owned exclusively by its (event, user) pair.
type CalendarEntry struct {
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	HostID    uuid.UUID `db:"host_id" json:"host_id"`
	Title     string    `db:"title" json:"title"`
	EventType string    `db:"event_type" json:"event_type"`
	Location  string    `db:"location" json:"location"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
