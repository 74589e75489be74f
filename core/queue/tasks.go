package queue

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task types processed by the background worker.
const (
	TypeCalendarSync   = "calendar:sync"
	TypeCalendarDelete = "calendar:delete"
	TypePushNotify     = "notification:push"
)

// CalendarSyncPayload requests a refresh of the calendar mirror entries
// for everyone attached to an event (host + accepted participants).
type CalendarSyncPayload struct {
	EventID uuid.UUID `json:"event_id"`
}

// CalendarDeletePayload removes one user's mirror entry for an event.
type CalendarDeletePayload struct {
	EventID uuid.UUID `json:"event_id"`
	UserID  uuid.UUID `json:"user_id"`
}

// PushNotifyPayload asks the worker to dispatch a stored notification to
// the user's devices.
type PushNotifyPayload struct {
	NotificationID uuid.UUID `json:"notification_id"`
	UserID         uuid.UUID `json:"user_id"`
}

func NewCalendarSyncTask(eventID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(CalendarSyncPayload{EventID: eventID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCalendarSync, payload), nil
}

func NewCalendarDeleteTask(eventID, userID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(CalendarDeletePayload{EventID: eventID, UserID: userID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCalendarDelete, payload), nil
}

func NewPushNotifyTask(notificationID, userID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(PushNotifyPayload{NotificationID: notificationID, UserID: userID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePushNotify, payload), nil
}
