package entity

import (
	"time"

	coreEntity "tennismate-api/core/entity"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusRequested BookingStatus = "requested"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusDeclined  BookingStatus = "declined"
)

type Coach struct {
	coreEntity.BaseEntity
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	Name       string    `db:"name" json:"name"`
	Bio        *string   `db:"bio" json:"bio,omitempty"`
	HourlyRate float64   `db:"hourly_rate" json:"hourly_rate"`
	City       *string   `db:"city" json:"city,omitempty"`
	PhotoURL   *string   `db:"photo_url" json:"photo_url,omitempty"`
	IsActive   bool      `db:"is_active" json:"is_active"`
}

// CoachBooking is a lesson request. ReferenceCode is the short ID
// players and coaches quote to each other.
type CoachBooking struct {
	coreEntity.BaseEntity
	CoachID       uuid.UUID     `db:"coach_id" json:"coach_id"`
	PlayerID      uuid.UUID     `db:"player_id" json:"player_id"`
	ReferenceCode string        `db:"reference_code" json:"reference_code"`
	StartTime     time.Time     `db:"start_time" json:"start_time"`
	DurationMins  int           `db:"duration_mins" json:"duration_mins"`
	Note          *string       `db:"note" json:"note,omitempty"`
	Status        BookingStatus `db:"status" json:"status"`
}
