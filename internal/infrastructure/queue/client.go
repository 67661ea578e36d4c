package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"kiosk-backend/internal/shared"
)

// Client enqueues background tasks from the API process
type Client struct {
	client *asynq.Client
}

// NewClient creates an asynq client against the given Redis address
func NewClient(redisAddr, redisPassword string, redisDB int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

// NotifyOutbox schedules an immediate outbox drain. The task carries no
// payload; the dispatcher reads everything from the outbox table.
func (c *Client) NotifyOutbox(ctx context.Context) error {
	task := asynq.NewTask(shared.TypeDispatchLoyaltyOutbox, nil)

	_, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueCritical),
		asynq.MaxRetry(5),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue outbox dispatch: %w", err)
	}

	return nil
}

// Close releases the underlying Redis connections
func (c *Client) Close() error {
	return c.client.Close()
}
