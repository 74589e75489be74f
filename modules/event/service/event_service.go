package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tennismate-api/core/constants"
	apperrors "tennismate-api/core/errors"
	"tennismate-api/core/logger"
	"tennismate-api/core/params"
	"tennismate-api/core/queue"
	"tennismate-api/core/utils"
	"tennismate-api/modules/event/dto"
	"tennismate-api/modules/event/entity"
	"tennismate-api/modules/event/repository"
	notifDto "tennismate-api/modules/notification/dto"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Notifier is the slice of the notification service the lifecycle needs.
type Notifier interface {
	Create(ctx context.Context, req *notifDto.CreateNotificationRequest) error
}

// EventService owns the participation lifecycle: create, join-request
// submission, accept/decline, leave, cancel and the calendar fan-out.
type EventService struct {
	repo    repository.EventRepositoryInterface
	notif   Notifier
	queue   queue.Enqueuer
}

type EventServiceInterface interface {
	CreateEvent(ctx context.Context, hostID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *apperrors.AppError)
	GetEventByID(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *apperrors.AppError)
	ListOpenEvents(ctx context.Context, p params.QueryParams) (*dto.PaginatedEventResponse, *apperrors.AppError)
	GetMyEvents(ctx context.Context, hostID uuid.UUID) ([]dto.EventResponse, *apperrors.AppError)

	SubmitJoinRequest(ctx context.Context, eventID, userID uuid.UUID) (*dto.JoinRequestResponse, *apperrors.AppError)
	AcceptJoinRequest(ctx context.Context, eventID, requestID, hostID uuid.UUID) (*dto.EventResponse, *apperrors.AppError)
	DeclineJoinRequest(ctx context.Context, eventID, requestID, hostID uuid.UUID) (*dto.JoinRequestResponse, *apperrors.AppError)
	ListJoinRequests(ctx context.Context, eventID, hostID uuid.UUID) ([]dto.JoinRequestResponse, *apperrors.AppError)
	LeaveEvent(ctx context.Context, eventID, userID uuid.UUID) (*dto.EventResponse, *apperrors.AppError)
	CancelEvent(ctx context.Context, eventID, hostID uuid.UUID) (*dto.EventResponse, *apperrors.AppError)
}

func NewEventService(repo repository.EventRepositoryInterface, notif Notifier, q queue.Enqueuer) EventServiceInterface {
	return &EventService{repo: repo, notif: notif, queue: q}
}

// CreateEvent persists a new open event hosted by the caller. Capacity
// is bounded per type (singles fixed at 1, doubles 2-4, social 5+).
func (s *EventService) CreateEvent(ctx context.Context, hostID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *apperrors.AppError) {
	eventType := entity.EventType(req.Type)
	total, err := entity.ResolveCapacity(eventType, req.TotalSpots)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidInput, err.Error(), nil)
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidInput, "Invalid start time format", err)
	}

	event := &entity.Event{
		HostID:          hostID,
		Title:           req.Title,
		Slug:            fmt.Sprintf("%s-%s", slug.Make(req.Title), utils.GenerateID()),
		Type:            eventType,
		Location:        req.Location,
		StartTime:       startTime,
		EndTime:         startTime.Add(time.Duration(req.DurationMinutes) * time.Minute),
		DurationMinutes: req.DurationMinutes,
		MinSkill:        req.MinSkill,
		TotalSpots:      &total,
		SpotsFilled:     0,
		Status:          entity.EventStatusOpen,
		Participants:    entity.UUIDArray{},
	}
	if req.Description != "" {
		event.Description = &req.Description
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to create event", err)
	}

	// Host's own calendar mirror.
	if err := s.queue.EnqueueCalendarSync(ctx, created.ID); err != nil {
		logger.Error("EventService:CreateEvent:EnqueueCalendarSync", err)
	}

	return dto.ToEventResponse(created), nil
}

func (s *EventService) GetEventByID(ctx context.Context, id uuid.UUID) (*dto.EventResponse, *apperrors.AppError) {
	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to get event", err)
	}
	if event == nil {
		return nil, apperrors.NewAppError(apperrors.ErrNotFound, "Event not found", nil)
	}
	return dto.ToEventResponse(event), nil
}

func (s *EventService) ListOpenEvents(ctx context.Context, p params.QueryParams) (*dto.PaginatedEventResponse, *apperrors.AppError) {
	page, err := s.repo.ListOpenEvents(ctx, p)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to list events", err)
	}

	items := make([]dto.EventResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *dto.ToEventResponse(&page.Items[i]))
	}
	return &dto.PaginatedEventResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}, nil
}

func (s *EventService) GetMyEvents(ctx context.Context, hostID uuid.UUID) ([]dto.EventResponse, *apperrors.AppError) {
	events, err := s.repo.GetEventsByHostID(ctx, hostID)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to get events", err)
	}
	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, *dto.ToEventResponse(&events[i]))
	}
	return result, nil
}

// SubmitJoinRequest records the caller's intent to join. An existing row
// for the same (event, user) pair is reset to pending instead of a
// duplicate being created, so resubmission is idempotent.
func (s *EventService) SubmitJoinRequest(ctx context.Context, eventID, userID uuid.UUID) (*dto.JoinRequestResponse, *apperrors.AppError) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to get event", err)
	}
	if event == nil {
		return nil, apperrors.NewAppError(apperrors.ErrNotFound, "Event not found", nil)
	}

	if event.HostID == userID {
		return nil, apperrors.NewAppError(apperrors.ErrForbidden, "Host cannot request to join their own event", nil)
	}
	if event.HasParticipant(userID) {
		return nil, apperrors.NewAppError(apperrors.ErrAlreadyExists, "Already a participant", nil)
	}
	if event.IsTerminal() {
		return nil, apperrors.NewAppError(apperrors.ErrEventClosed, "Event is no longer open", nil)
	}
	if event.IsFull() {
		return nil, apperrors.NewAppError(apperrors.ErrEventFull, "Event is already full", nil)
	}

	request, err := s.repo.UpsertJoinRequest(ctx, eventID, userID)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to submit join request", err)
	}

	s.notify(ctx, event.HostID, constants.NotificationTypeJoinRequest,
		"New join request",
		fmt.Sprintf("Someone wants to join %q", event.Title),
		event.ID, request.ID)

	return dto.ToJoinRequestResponse(request), nil
}

// AcceptJoinRequest runs the accept inside a transaction so that
// concurrent accepts on the same event serialize and capacity can never
// be overbooked. Calendar fan-out and the requester notification happen
// after commit, best-effort.
func (s *EventService) AcceptJoinRequest(ctx context.Context, eventID, requestID, hostID uuid.UUID) (*dto.EventResponse, *apperrors.AppError) {
	event, request, err := s.repo.MutateEventWithRequest(ctx, eventID, requestID, func(ev *entity.Event, req *entity.JoinRequest) error {
		if ev.HostID != hostID {
			return apperrors.NewAppError(apperrors.ErrForbidden, "Only the host can accept requests", nil)
		}
		if req.EventID != ev.ID {
			return apperrors.NewAppError(apperrors.ErrInvalidInput, "Request does not belong to this event", nil)
		}
		if req.Status != entity.RequestStatusPending {
			return apperrors.NewAppError(apperrors.ErrInvalidInput, "Request is not pending", nil)
		}
		if req.UserID == ev.HostID {
			return apperrors.NewAppError(apperrors.ErrForbidden, "Host cannot be a participant", nil)
		}
		if ev.IsTerminal() {
			return apperrors.NewAppError(apperrors.ErrEventClosed, "Event has been cancelled or completed", nil)
		}
		if ev.TotalSpots != nil && ev.FilledCount() >= *ev.TotalSpots {
			return apperrors.NewAppError(apperrors.ErrEventFull, "Event is already full", nil)
		}

		ev.AddParticipant(req.UserID)
		req.Status = entity.RequestStatusAccepted
		return nil
	})
	if err != nil {
		return nil, s.mapMutateError(err, "Failed to accept join request")
	}

	s.notify(ctx, request.UserID, constants.NotificationTypeRequestAccepted,
		"Request accepted",
		fmt.Sprintf("You're in! Your request to join %q was accepted", event.Title),
		event.ID, request.ID)

	// Mirror entries for host + all participants.
	if err := s.queue.EnqueueCalendarSync(ctx, event.ID); err != nil {
		logger.Error("EventService:AcceptJoinRequest:EnqueueCalendarSync", err)
	}

	return dto.ToEventResponse(event), nil
}

// DeclineJoinRequest marks the request declined. The row is kept so a
// later resubmission reuses it.
func (s *EventService) DeclineJoinRequest(ctx context.Context, eventID, requestID, hostID uuid.UUID) (*dto.JoinRequestResponse, *apperrors.AppError) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to get event", err)
	}
	if event == nil {
		return nil, apperrors.NewAppError(apperrors.ErrNotFound, "Event not found", nil)
	}
	if event.HostID != hostID {
		return nil, apperrors.NewAppError(apperrors.ErrForbidden, "Only the host can decline requests", nil)
	}

	request, err := s.repo.GetJoinRequestByID(ctx, requestID)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to get join request", err)
	}
	if request == nil || request.EventID != eventID {
		return nil, apperrors.NewAppError(apperrors.ErrNotFound, "Join request not found", nil)
	}
	if request.Status != entity.RequestStatusPending {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidInput, "Request is not pending", nil)
	}

	if err := s.repo.UpdateJoinRequestStatus(ctx, requestID, entity.RequestStatusDeclined); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to decline join request", err)
	}
	request.Status = entity.RequestStatusDeclined

	s.notify(ctx, request.UserID, constants.NotificationTypeRequestDeclined,
		"Request declined",
		fmt.Sprintf("Your request to join %q was declined", event.Title),
		event.ID, request.ID)

	return dto.ToJoinRequestResponse(request), nil
}

func (s *EventService) ListJoinRequests(ctx context.Context, eventID, hostID uuid.UUID) ([]dto.JoinRequestResponse, *apperrors.AppError) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to get event", err)
	}
	if event == nil {
		return nil, apperrors.NewAppError(apperrors.ErrNotFound, "Event not found", nil)
	}
	if event.HostID != hostID {
		return nil, apperrors.NewAppError(apperrors.ErrForbidden, "Only the host can view requests", nil)
	}

	requests, err := s.repo.GetJoinRequestsByEventID(ctx, eventID)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "Failed to list join requests", err)
	}

	result := make([]dto.JoinRequestResponse, 0, len(requests))
	for i := range requests {
		result = append(result, *dto.ToJoinRequestResponse(&requests[i]))
	}
	return result, nil
}

// LeaveEvent removes a participant inside a transaction, demoting a full
// event back to open when a spot frees up. The host cannot leave.
func (s *EventService) LeaveEvent(ctx context.Context, eventID, userID uuid.UUID) (*dto.EventResponse, *apperrors.AppError) {
	event, err := s.repo.MutateEvent(ctx, eventID, func(ev *entity.Event) error {
		if ev.HostID == userID {
			return apperrors.NewAppError(apperrors.ErrForbidden, "Host cannot leave their own event", nil)
		}
		if ev.IsTerminal() {
			return apperrors.NewAppError(apperrors.ErrEventClosed, "Event has been cancelled or completed", nil)
		}
		if !ev.HasParticipant(userID) {
			return apperrors.NewAppError(apperrors.ErrInvalidInput, "Not a participant of this event", nil)
		}
		ev.RemoveParticipant(userID)
		return nil
	})
	if err != nil {
		return nil, s.mapMutateError(err, "Failed to leave event")
	}

	// Post-transaction bookkeeping, all best-effort.
	if request, reqErr := s.repo.GetJoinRequestByEventAndUser(ctx, eventID, userID); reqErr == nil && request != nil && request.Status == entity.RequestStatusAccepted {
		if updErr := s.repo.UpdateJoinRequestStatus(ctx, request.ID, entity.RequestStatusLeft); updErr != nil {
			logger.Error("EventService:LeaveEvent:UpdateJoinRequestStatus", updErr)
		}
	}

	s.notify(ctx, event.HostID, constants.NotificationTypeParticipantLeft,
		"Participant left",
		fmt.Sprintf("A player left your event %q", event.Title),
		event.ID, uuid.Nil)

	if err := s.queue.EnqueueCalendarDelete(ctx, event.ID, userID); err != nil {
		logger.Error("EventService:LeaveEvent:EnqueueCalendarDelete", err)
	}
	if err := s.repo.RemoveConversationMember(ctx, eventID, userID); err != nil {
		logger.Warn("EventService:LeaveEvent:RemoveConversationMember", "error", err)
	}

	return dto.ToEventResponse(event), nil
}

// CancelEvent moves the event to its terminal cancelled state. Calendar
// mirror deletions fan out per user and stay independent: one failed
// deletion never blocks the others.
func (s *EventService) CancelEvent(ctx context.Context, eventID, hostID uuid.UUID) (*dto.EventResponse, *apperrors.AppError) {
	event, err := s.repo.MutateEvent(ctx, eventID, func(ev *entity.Event) error {
		if ev.HostID != hostID {
			return apperrors.NewAppError(apperrors.ErrForbidden, "Only the host can cancel the event", nil)
		}
		if ev.IsTerminal() {
			return apperrors.NewAppError(apperrors.ErrEventClosed, "Event is already cancelled or completed", nil)
		}
		ev.Status = entity.EventStatusCancelled
		return nil
	})
	if err != nil {
		return nil, s.mapMutateError(err, "Failed to cancel event")
	}

	for _, participantID := range event.Participants {
		s.notify(ctx, participantID, constants.NotificationTypeEventCancelled,
			"Event cancelled",
			fmt.Sprintf("%q has been cancelled by the host", event.Title),
			event.ID, uuid.Nil)
	}

	for _, userID := range append(entity.UUIDArray{event.HostID}, event.Participants...) {
		if err := s.queue.EnqueueCalendarDelete(ctx, event.ID, userID); err != nil {
			logger.Error("EventService:CancelEvent:EnqueueCalendarDelete", "user_id", userID, "error", err)
		}
	}

	return dto.ToEventResponse(event), nil
}

// notify writes a notification row, logging and continuing on failure.
func (s *EventService) notify(ctx context.Context, userID uuid.UUID, notifType, title, message string, eventID, requestID uuid.UUID) {
	data := map[string]interface{}{"event_id": eventID.String()}
	if requestID != uuid.Nil {
		data["request_id"] = requestID.String()
	}
	err := s.notif.Create(ctx, &notifDto.CreateNotificationRequest{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
		Data:    data,
	})
	if err != nil {
		logger.Error("EventService:Notify", "type", notifType, "user_id", userID, "error", err)
	}
}

// mapMutateError converts transaction failures into AppErrors. A vanished
// row surfaces as not-found; precondition violations pass through.
func (s *EventService) mapMutateError(err error, fallback string) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewAppError(apperrors.ErrNotFound, "Event no longer exists", err)
	}
	return apperrors.NewAppError(apperrors.ErrInternalServer, fallback, err)
}
