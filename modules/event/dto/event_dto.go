package dto

import (
	"time"

	"tennismate-api/modules/event/entity"
)

// ===================== Request DTOs =====================

// CreateEventRequest for hosting a new event.
type CreateEventRequest struct {
	Title           string   `json:"title" validate:"required"`
	Type            string   `json:"type" validate:"required,oneof=singles doubles social"`
	Location        string   `json:"location" validate:"required"`
	Description     string   `json:"description"`
	StartTime       string   `json:"start_time" validate:"required"` // RFC3339
	DurationMinutes int      `json:"duration_minutes" validate:"required,min=30,max=480"`
	MinSkill        *float64 `json:"min_skill"`
	TotalSpots      *int     `json:"total_spots"`
}

// ===================== Response DTOs =====================

// EventResponse for event details.
type EventResponse struct {
	ID              string    `json:"id"`
	HostID          string    `json:"host_id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Type            string    `json:"type"`
	Location        string    `json:"location"`
	Description     string    `json:"description,omitempty"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	MinSkill        *float64  `json:"min_skill,omitempty"`
	TotalSpots      *int      `json:"total_spots,omitempty"`
	SpotsFilled     int       `json:"spots_filled"`
	Status          string    `json:"status"`
	Participants    []string  `json:"participants"`
	CreatedAt       time.Time `json:"created_at"`
}

// JoinRequestResponse for a participation request.
type JoinRequestResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// PaginatedEventResponse for the open-events listing.
type PaginatedEventResponse struct {
	Items      []EventResponse `json:"items"`
	TotalItems int             `json:"total_items"`
	PageNumber int             `json:"page_number"`
	PageSize   int             `json:"page_size"`
}

// ===================== Mapper Functions =====================

func ToEventResponse(e *entity.Event) *EventResponse {
	resp := &EventResponse{
		ID:              e.ID.String(),
		HostID:          e.HostID.String(),
		Title:           e.Title,
		Slug:            e.Slug,
		Type:            string(e.Type),
		Location:        e.Location,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		DurationMinutes: e.DurationMinutes,
		MinSkill:        e.MinSkill,
		TotalSpots:      e.TotalSpots,
		SpotsFilled:     e.SpotsFilled,
		Status:          string(e.Status),
		Participants:    make([]string, 0, len(e.Participants)),
		CreatedAt:       e.CreatedAt,
	}
	if e.Description != nil {
		resp.Description = *e.Description
	}
	for _, id := range e.Participants {
		resp.Participants = append(resp.Participants, id.String())
	}
	return resp
}

func ToJoinRequestResponse(r *entity.JoinRequest) *JoinRequestResponse {
	return &JoinRequestResponse{
		ID:        r.ID.String(),
		EventID:   r.EventID.String(),
		UserID:    r.UserID.String(),
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}
