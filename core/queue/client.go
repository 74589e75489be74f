package queue

import (
	"context"
	"time"

	"tennismate-api/core/config"
	"tennismate-api/core/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Enqueuer is the surface services use to schedule fan-out work. The
// event lifecycle never blocks on these writes; the queue retries them.
type Enqueuer interface {
	EnqueueCalendarSync(ctx context.Context, eventID uuid.UUID) error
	EnqueueCalendarDelete(ctx context.Context, eventID, userID uuid.UUID) error
	EnqueuePushNotify(ctx context.Context, notificationID, userID uuid.UUID) error
}

type Client struct {
	inner *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		inner: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (c *Client) EnqueueCalendarSync(ctx context.Context, eventID uuid.UUID) error {
	task, err := NewCalendarSyncTask(eventID)
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task)
}

func (c *Client) EnqueueCalendarDelete(ctx context.Context, eventID, userID uuid.UUID) error {
	task, err := NewCalendarDeleteTask(eventID, userID)
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task)
}

func (c *Client) EnqueuePushNotify(ctx context.Context, notificationID, userID uuid.UUID) error {
	task, err := NewPushNotifyTask(notificationID, userID)
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task)
}

func (c *Client) enqueue(ctx context.Context, task *asynq.Task) error {
	info, err := c.inner.EnqueueContext(ctx, task,
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
		asynq.Retention(24*time.Hour),
	)
	if err != nil {
		logger.Error("Queue:Enqueue", "type", task.Type(), "error", err)
		return err
	}
	logger.Info("Queue:Enqueued", "type", task.Type(), "id", info.ID, "queue", info.Queue)
	return nil
}

func (c *Client) Close() error {
	return c.inner.Close()
}
