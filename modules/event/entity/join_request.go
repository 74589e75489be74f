package entity

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus tracks a join request through its lifecycle. Declined
// requests keep their row with the declined status; resubmission resets
// the same row back to pending.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusDeclined RequestStatus = "declined"
	RequestStatusLeft     RequestStatus = "left"
)

// JoinRequest is a participation intent for one (event, user) pair. The
// pair is unique; a user never holds more than one row per event.
type JoinRequest struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	EventID   uuid.UUID     `db:"event_id" json:"event_id"`
	UserID    uuid.UUID     `db:"user_id" json:"user_id"`
	Status    RequestStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

// IsActive reports whether the request currently counts against the
// one-active-request-per-user rule.
func (r *JoinRequest) IsActive() bool {
	return r.Status == RequestStatusPending || r.Status == RequestStatusAccepted
}
