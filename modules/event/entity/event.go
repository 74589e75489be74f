package entity

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// EventType classifies a hostable activity.
type EventType string

const (
	EventTypeSingles EventType = "singles"
	EventTypeDoubles EventType = "doubles"
	EventTypeSocial  EventType = "social"
)

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventStatusOpen      EventStatus = "open"
	EventStatusFull      EventStatus = "full"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// UUIDArray maps a Postgres uuid[] column onto a slice of uuid.UUID.
type UUIDArray []uuid.UUID

func (a UUIDArray) Value() (driver.Value, error) {
	ss := make(pq.StringArray, len(a))
	for i, id := range a {
		ss[i] = id.String()
	}
	return ss.Value()
}

func (a *UUIDArray) Scan(src any) error {
	var ss pq.StringArray
	if err := ss.Scan(src); err != nil {
		return err
	}
	out := make(UUIDArray, 0, len(ss))
	for _, s := range ss {
		id, err := uuid.Parse(s)
		if err != nil {
			return fmt.Errorf("uuid array element %q: %w", s, err)
		}
		out = append(out, id)
	}
	*a = out
	return nil
}

// Event is the aggregate root of the participation lifecycle. The host is
// tracked separately and never appears in Participants.
type Event struct {
	ID              uuid.UUID   `db:"id" json:"id"`
	HostID          uuid.UUID   `db:"host_id" json:"host_id"`
	Title           string      `db:"title" json:"title"`
	Slug            string      `db:"slug" json:"slug"`
	Type            EventType   `db:"type" json:"type"`
	Location        string      `db:"location" json:"location"`
	Description     *string     `db:"description" json:"description,omitempty"`
	StartTime       time.Time   `db:"start_time" json:"start_time"`
	EndTime         time.Time   `db:"end_time" json:"end_time"`
	DurationMinutes int         `db:"duration_minutes" json:"duration_minutes"`
	MinSkill        *float64    `db:"min_skill" json:"min_skill,omitempty"`
	TotalSpots      *int        `db:"total_spots" json:"total_spots,omitempty"`
	SpotsFilled     int         `db:"spots_filled" json:"spots_filled"`
	Status          EventStatus `db:"status" json:"status"`
	Participants    UUIDArray   `db:"participants" json:"participants"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`
}

// FilledCount prefers the stored counter, falling back to the
// participant list length when the counter was never written.
func (e *Event) FilledCount() int {
	if e.SpotsFilled > 0 {
		return e.SpotsFilled
	}
	return len(e.Participants)
}

// IsFull reports whether the event has a capacity and it is reached.
func (e *Event) IsFull() bool {
	return e.TotalSpots != nil && e.FilledCount() >= *e.TotalSpots
}

// IsTerminal reports whether the event rejects all further mutation.
func (e *Event) IsTerminal() bool {
	return e.Status == EventStatusCancelled || e.Status == EventStatusCompleted
}

func (e *Event) HasParticipant(userID uuid.UUID) bool {
	for _, id := range e.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// AddParticipant adds the user with set semantics and recomputes the
// filled counter and status. Status flips to full exactly when the
// capacity threshold is reached; otherwise the prior status is kept.
func (e *Event) AddParticipant(userID uuid.UUID) {
	if !e.HasParticipant(userID) {
		e.Participants = append(e.Participants, userID)
	}
	e.SpotsFilled = len(e.Participants)
	if e.TotalSpots != nil && e.SpotsFilled >= *e.TotalSpots {
		e.Status = EventStatusFull
	}
}

// RemoveParticipant drops the user and recomputes the counter, demoting
// a full event back to open once capacity frees up.
func (e *Event) RemoveParticipant(userID uuid.UUID) {
	kept := e.Participants[:0]
	for _, id := range e.Participants {
		if id != userID {
			kept = append(kept, id)
		}
	}
	e.Participants = kept
	e.SpotsFilled = len(e.Participants)
	if e.Status == EventStatusFull && (e.TotalSpots == nil || e.SpotsFilled < *e.TotalSpots) {
		e.Status = EventStatusOpen
	}
}
