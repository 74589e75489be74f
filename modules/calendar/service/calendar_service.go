package service

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "tennismate-api/core/errors"
	"tennismate-api/core/logger"
	"tennismate-api/core/queue"
	"tennismate-api/modules/calendar/entity"
	"tennismate-api/modules/calendar/repository"
	eventEntity "tennismate-api/modules/event/entity"
	eventRepository "tennismate-api/modules/event/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// CalendarService maintains the per-user calendar mirror. The fan-out
// handlers run on the queue worker, so a failed write is retried there
// instead of blocking the event mutation that triggered it.
type CalendarService struct {
	repo      repository.CalendarRepository
	eventRepo eventRepository.EventRepositoryInterface
}

func NewCalendarService(repo repository.CalendarRepository, eventRepo eventRepository.EventRepositoryInterface) *CalendarService {
	return &CalendarService{repo: repo, eventRepo: eventRepo}
}

func (s *CalendarService) GetMyCalendar(ctx context.Context, userID uuid.UUID) ([]entity.CalendarEntry, *apperrors.AppError) {
	entries, err := s.repo.GetEntriesByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to load calendar", err)
	}
	return entries, nil
}

// SyncEvent refreshes the mirror entries of the host and every accepted
// participant. Writes are independent per user; failures are collected
// so the queue retries the task, and upserts keep the retry idempotent.
func (s *CalendarService) SyncEvent(ctx context.Context, eventID uuid.UUID) error {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		// Event deleted since the task was enqueued; nothing to mirror.
		logger.Warn("CalendarService:SyncEvent:EventGone", "event_id", eventID)
		return nil
	}
	if event.Status == eventEntity.EventStatusCancelled {
		// Cancellation enqueues explicit deletes; don't resurrect entries.
		return nil
	}

	var failed int
	for _, userID := range append(eventEntity.UUIDArray{event.HostID}, event.Participants...) {
		entry := &entity.CalendarEntry{
			EventID:   event.ID,
			UserID:    userID,
			HostID:    event.HostID,
			Title:     event.Title,
			EventType: string(event.Type),
			Location:  event.Location,
			StartTime: event.StartTime,
			EndTime:   event.EndTime,
			Status:    string(event.Status),
		}
		if err := s.repo.UpsertEntry(ctx, entry); err != nil {
			logger.Error("CalendarService:SyncEvent:UpsertEntry", "event_id", eventID, "user_id", userID, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("calendar sync: %d of %d entries failed for event %s", failed, len(event.Participants)+1, eventID)
	}
	return nil
}

func (s *CalendarService) RemoveEntry(ctx context.Context, eventID, userID uuid.UUID) error {
	return s.repo.DeleteEntry(ctx, eventID, userID)
}

// ===================== Queue handlers =====================

func (s *CalendarService) HandleCalendarSyncTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.CalendarSyncPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("calendar sync payload: %w: %w", err, asynq.SkipRetry)
	}
	return s.SyncEvent(ctx, payload.EventID)
}

func (s *CalendarService) HandleCalendarDeleteTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.CalendarDeletePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("calendar delete payload: %w: %w", err, asynq.SkipRetry)
	}
	return s.RemoveEntry(ctx, payload.EventID, payload.UserID)
}
