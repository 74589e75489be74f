package repository

import (
	"context"
	"database/sql"

	"tennismate-api/core/database"
	coreEntity "tennismate-api/core/entity"
	"tennismate-api/core/logger"
	"tennismate-api/core/params"
	"tennismate-api/modules/event/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// EventRepository handles event and join-request persistence.
type EventRepository struct {
	DB database.Database
}

func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{DB: db}
}

type PaginatedEventEntity = coreEntity.Pagination[entity.Event]

// EventRepositoryInterface defines the repository contract. The Mutate
// methods run the given closure against rows locked inside a transaction
// so concurrent accepts/leaves/cancels on the same event serialize.
type EventRepositoryInterface interface {
	CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	ListOpenEvents(ctx context.Context, p params.QueryParams) (*PaginatedEventEntity, error)
	GetEventsByHostID(ctx context.Context, hostID uuid.UUID) ([]entity.Event, error)

	MutateEvent(ctx context.Context, eventID uuid.UUID, fn func(ev *entity.Event) error) (*entity.Event, error)
	MutateEventWithRequest(ctx context.Context, eventID, requestID uuid.UUID, fn func(ev *entity.Event, req *entity.JoinRequest) error) (*entity.Event, *entity.JoinRequest, error)

	UpsertJoinRequest(ctx context.Context, eventID, userID uuid.UUID) (*entity.JoinRequest, error)
	GetJoinRequestByID(ctx context.Context, id uuid.UUID) (*entity.JoinRequest, error)
	GetJoinRequestByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*entity.JoinRequest, error)
	GetJoinRequestsByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.JoinRequest, error)
	UpdateJoinRequestStatus(ctx context.Context, id uuid.UUID, status entity.RequestStatus) error

	RemoveConversationMember(ctx context.Context, eventID, userID uuid.UUID) error
}

const eventColumns = `id, host_id, title, slug, type, location, description, start_time, end_time,
	duration_minutes, min_skill, total_spots, spots_filled, status, participants, created_at, updated_at`

// ===================== Events =====================

func (r *EventRepository) CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (host_id, title, slug, type, location, description, start_time, end_time,
		                    duration_minutes, min_skill, total_spots, spots_filled, status, participants)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + eventColumns

	var created entity.Event
	err := r.DB.GetContext(ctx, &created, query,
		event.HostID, event.Title, event.Slug, event.Type, event.Location, event.Description,
		event.StartTime, event.EndTime, event.DurationMinutes, event.MinSkill,
		event.TotalSpots, event.SpotsFilled, event.Status, event.Participants)
	if err != nil {
		logger.Error("EventRepository:CreateEvent", err)
		return nil, err
	}
	return &created, nil
}

func (r *EventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventByID", err)
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) ListOpenEvents(ctx context.Context, p params.QueryParams) (*PaginatedEventEntity, error) {
	offset := (p.PageNumber - 1) * p.PageSize

	var totalItems int
	countQuery := `SELECT COUNT(*) FROM events WHERE status = 'open' AND start_time > NOW()`
	if err := r.DB.GetContext(ctx, &totalItems, countQuery); err != nil {
		logger.Error("EventRepository:ListOpenEvents:Count", err)
		return nil, err
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE status = 'open' AND start_time > NOW()
		ORDER BY start_time
		LIMIT $1 OFFSET $2
	`
	var events []entity.Event
	if err := r.DB.SelectContext(ctx, &events, query, p.PageSize, offset); err != nil {
		logger.Error("EventRepository:ListOpenEvents:Select", err)
		return nil, err
	}

	return &PaginatedEventEntity{
		Items:      events,
		TotalItems: totalItems,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

func (r *EventRepository) GetEventsByHostID(ctx context.Context, hostID uuid.UUID) ([]entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE host_id = $1 ORDER BY start_time DESC`

	var events []entity.Event
	if err := r.DB.SelectContext(ctx, &events, query, hostID); err != nil {
		logger.Error("EventRepository:GetEventsByHostID", err)
		return nil, err
	}
	return events, nil
}

// ===================== Transactional mutations =====================

func getEventForUpdate(ctx context.Context, tx *sqlx.Tx, eventID uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	var event entity.Event
	if err := tx.GetContext(ctx, &event, query, eventID); err != nil {
		return nil, err
	}
	return &event, nil
}

func writeEvent(ctx context.Context, tx *sqlx.Tx, ev *entity.Event) error {
	query := `
		UPDATE events
		SET spots_filled = $2, status = $3, participants = $4, updated_at = NOW()
		WHERE id = $1
	`
	_, err := tx.ExecContext(ctx, query, ev.ID, ev.SpotsFilled, ev.Status, ev.Participants)
	return err
}

// MutateEvent re-reads the event under a row lock, applies fn and writes
// the result back. fn errors abort the transaction untouched. Returns
// sql.ErrNoRows when the event no longer exists.
func (r *EventRepository) MutateEvent(ctx context.Context, eventID uuid.UUID, fn func(ev *entity.Event) error) (*entity.Event, error) {
	var mutated *entity.Event
	err := r.DB.Transaction(ctx, func(tx *sqlx.Tx) error {
		ev, err := getEventForUpdate(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if err := fn(ev); err != nil {
			return err
		}
		if err := writeEvent(ctx, tx, ev); err != nil {
			logger.Error("EventRepository:MutateEvent:Write", err)
			return err
		}
		mutated = ev
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mutated, nil
}

// MutateEventWithRequest locks the event row and loads the join request
// in one transaction, applies fn to both and persists both. Used by the
// accept path so capacity accounting and the request status change are
// atomic.
func (r *EventRepository) MutateEventWithRequest(ctx context.Context, eventID, requestID uuid.UUID, fn func(ev *entity.Event, req *entity.JoinRequest) error) (*entity.Event, *entity.JoinRequest, error) {
	var (
		mutatedEvent   *entity.Event
		mutatedRequest *entity.JoinRequest
	)
	err := r.DB.Transaction(ctx, func(tx *sqlx.Tx) error {
		ev, err := getEventForUpdate(ctx, tx, eventID)
		if err != nil {
			return err
		}

		var req entity.JoinRequest
		reqQuery := `
			SELECT id, event_id, user_id, status, created_at, updated_at
			FROM event_join_requests WHERE id = $1 FOR UPDATE
		`
		if err := tx.GetContext(ctx, &req, reqQuery, requestID); err != nil {
			return err
		}

		if err := fn(ev, &req); err != nil {
			return err
		}

		if err := writeEvent(ctx, tx, ev); err != nil {
			logger.Error("EventRepository:MutateEventWithRequest:WriteEvent", err)
			return err
		}

		updReq := `UPDATE event_join_requests SET status = $2, updated_at = NOW() WHERE id = $1`
		if _, err := tx.ExecContext(ctx, updReq, req.ID, req.Status); err != nil {
			logger.Error("EventRepository:MutateEventWithRequest:WriteRequest", err)
			return err
		}

		mutatedEvent = ev
		mutatedRequest = &req
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return mutatedEvent, mutatedRequest, nil
}

// ===================== Join requests =====================

// UpsertJoinRequest creates a pending request or resets the existing row
// for the same (event, user) pair back to pending. One row per pair,
// regardless of how many times the user asks.
func (r *EventRepository) UpsertJoinRequest(ctx context.Context, eventID, userID uuid.UUID) (*entity.JoinRequest, error) {
	query := `
		INSERT INTO event_join_requests (event_id, user_id, status)
		VALUES ($1, $2, 'pending')
		ON CONFLICT (event_id, user_id) DO UPDATE SET status = 'pending', updated_at = NOW()
		RETURNING id, event_id, user_id, status, created_at, updated_at
	`
	var req entity.JoinRequest
	if err := r.DB.GetContext(ctx, &req, query, eventID, userID); err != nil {
		logger.Error("EventRepository:UpsertJoinRequest", err)
		return nil, err
	}
	return &req, nil
}

func (r *EventRepository) GetJoinRequestByID(ctx context.Context, id uuid.UUID) (*entity.JoinRequest, error) {
	query := `
		SELECT id, event_id, user_id, status, created_at, updated_at
		FROM event_join_requests WHERE id = $1
	`
	var req entity.JoinRequest
	err := r.DB.GetContext(ctx, &req, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetJoinRequestByID", err)
		return nil, err
	}
	return &req, nil
}

func (r *EventRepository) GetJoinRequestByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*entity.JoinRequest, error) {
	query := `
		SELECT id, event_id, user_id, status, created_at, updated_at
		FROM event_join_requests WHERE event_id = $1 AND user_id = $2
	`
	var req entity.JoinRequest
	err := r.DB.GetContext(ctx, &req, query, eventID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetJoinRequestByEventAndUser", err)
		return nil, err
	}
	return &req, nil
}

func (r *EventRepository) GetJoinRequestsByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.JoinRequest, error) {
	query := `
		SELECT id, event_id, user_id, status, created_at, updated_at
		FROM event_join_requests
		WHERE event_id = $1
		ORDER BY created_at
	`
	var requests []entity.JoinRequest
	if err := r.DB.SelectContext(ctx, &requests, query, eventID); err != nil {
		logger.Error("EventRepository:GetJoinRequestsByEventID", err)
		return nil, err
	}
	return requests, nil
}

func (r *EventRepository) UpdateJoinRequestStatus(ctx context.Context, id uuid.UUID, status entity.RequestStatus) error {
	query := `UPDATE event_join_requests SET status = $2, updated_at = NOW() WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id, status); err != nil {
		logger.Error("EventRepository:UpdateJoinRequestStatus", err)
		return err
	}
	return nil
}

// ===================== Conversation membership =====================

// RemoveConversationMember drops a leaver from the event chat. Callers
// treat failures as best-effort.
func (r *EventRepository) RemoveConversationMember(ctx context.Context, eventID, userID uuid.UUID) error {
	query := `DELETE FROM conversation_members WHERE event_id = $1 AND user_id = $2`
	if err := r.DB.ExecContext(ctx, query, eventID, userID); err != nil {
		logger.Error("EventRepository:RemoveConversationMember", err)
		return err
	}
	return nil
}
