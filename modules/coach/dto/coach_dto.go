package dto

import (
	"time"

	coreEntity "tennismate-api/core/entity"
	"tennismate-api/modules/coach/entity"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	StartTime    string  `json:"start_time" validate:"required"`
	DurationMins int     `json:"duration_mins" validate:"required"`
	Note         *string `json:"note"`
}

type CoachResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Bio        *string   `json:"bio,omitempty"`
	HourlyRate float64   `json:"hourly_rate"`
	City       *string   `json:"city,omitempty"`
	PhotoURL   *string   `json:"photo_url,omitempty"`
}

type BookingResponse struct {
	ID            uuid.UUID `json:"id"`
	CoachID       uuid.UUID `json:"coach_id"`
	ReferenceCode string    `json:"reference_code"`
	StartTime     time.Time `json:"start_time"`
	DurationMins  int       `json:"duration_mins"`
	Note          *string   `json:"note,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type PaginatedCoachResponse = coreEntity.Pagination[CoachResponse]

func ToCoachResponse(c *entity.Coach) *CoachResponse {
	return &CoachResponse{
		ID:         c.ID,
		Name:       c.Name,
		Bio:        c.Bio,
		HourlyRate: c.HourlyRate,
		City:       c.City,
		PhotoURL:   c.PhotoURL,
	}
}

func ToBookingResponse(b *entity.CoachBooking) *BookingResponse {
	return &BookingResponse{
		ID:            b.ID,
		CoachID:       b.CoachID,
		ReferenceCode: b.ReferenceCode,
		StartTime:     b.StartTime,
		DurationMins:  b.DurationMins,
		Note:          b.Note,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
	}
}
