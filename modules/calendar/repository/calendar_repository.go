package repository

import (
	"context"

	"tennismate-api/core/database"
	"tennismate-api/core/logger"
	"tennismate-api/modules/calendar/entity"

	"github.com/google/uuid"
)

// CalendarRepository persists calendar mirror entries.
type CalendarRepository interface {
	UpsertEntry(ctx context.Context, entry *entity.CalendarEntry) error
	DeleteEntry(ctx context.Context, eventID, userID uuid.UUID) error
	GetEntriesByUserID(ctx context.Context, userID uuid.UUID) ([]entity.CalendarEntry, error)
}

type calendarRepository struct {
	db database.Database
}

func NewCalendarRepository(db database.Database) CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) UpsertEntry(ctx context.Context, entry *entity.CalendarEntry) error {
	query := `
		INSERT INTO calendar_entries (event_id, user_id, host_id, title, event_type, location, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (event_id, user_id) DO UPDATE
		SET title = $4, event_type = $5, location = $6, start_time = $7, end_time = $8, status = $9, updated_at = NOW()
	`
	err := r.db.ExecContext(ctx, query,
		entry.EventID, entry.UserID, entry.HostID, entry.Title, entry.EventType,
		entry.Location, entry.StartTime, entry.EndTime, entry.Status)
	if err != nil {
		logger.Error("CalendarRepository:UpsertEntry", err)
		return err
	}
	return nil
}

func (r *calendarRepository) DeleteEntry(ctx context.Context, eventID, userID uuid.UUID) error {
	query := `DELETE FROM calendar_entries WHERE event_id = $1 AND user_id = $2`
	if err := r.db.ExecContext(ctx, query, eventID, userID); err != nil {
		logger.Error("CalendarRepository:DeleteEntry", err)
		return err
	}
	return nil
}

func (r *calendarRepository) GetEntriesByUserID(ctx context.Context, userID uuid.UUID) ([]entity.CalendarEntry, error) {
	query := `
		SELECT event_id, user_id, host_id, title, event_type, location, start_time, end_time, status, created_at, updated_at
		FROM calendar_entries
		WHERE user_id = $1
		ORDER BY start_time
	`
	var entries []entity.CalendarEntry
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		logger.Error("CalendarRepository:GetEntriesByUserID", err)
		return nil, err
	}
	return entries, nil
}
