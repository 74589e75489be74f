package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	coreEntity "tennismate-api/core/entity"
	"tennismate-api/core/logger"
	"tennismate-api/core/params"
	"tennismate-api/core/queue"
	"tennismate-api/modules/notification/dto"
	"tennismate-api/modules/notification/entity"
	"tennismate-api/modules/notification/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type NotificationService struct {
	repo  *repository.NotificationRepository
	queue queue.Enqueuer
}

func NewNotificationService(repo *repository.NotificationRepository, q queue.Enqueuer) *NotificationService {
	return &NotificationService{repo: repo, queue: q}
}

// Create stores the notification and schedules push dispatch. Only the
// row write is guaranteed; delivery is asynchronous and best-effort.
func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) error {
	notif := &entity.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		Data:    entity.JSONB(req.Data),
		IsRead:  false,
		BaseEntity: coreEntity.BaseEntity{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	if err := s.repo.Create(ctx, notif); err != nil {
		return err
	}

	if err := s.queue.EnqueuePushNotify(ctx, notif.ID, notif.UserID); err != nil {
		logger.Error("NotificationService:Create:EnqueuePushNotify", err)
	}
	return nil
}

func (s *NotificationService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return s.repo.GetByUserID(ctx, userID, queryParams)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error {
	return s.repo.MarkAsRead(ctx, userID, ids)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

// HandlePushNotifyTask delivers a stored notification to the push
// gateway. Delivery here is a structured log; the provider integration
// hangs off this single point.
func (s *NotificationService) HandlePushNotifyTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.PushNotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("push notify payload: %w: %w", err, asynq.SkipRetry)
	}

	notif, err := s.repo.GetByID(ctx, payload.NotificationID)
	if err != nil {
		return err
	}
	if notif == nil {
		// Deleted before dispatch; nothing to push.
		return nil
	}

	logger.Info("NotificationService:PushDispatched",
		"notification_id", notif.ID,
		"user_id", notif.UserID,
		"type", notif.Type,
		"title", notif.Title,
	)
	return nil
}
