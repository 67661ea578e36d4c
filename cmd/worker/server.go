package main

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	paymentjob "kiosk-backend/internal/domains/payment/job"
	promojob "kiosk-backend/internal/domains/promo/job"
	"kiosk-backend/internal/shared"
	"kiosk-backend/pkg/container"
	"kiosk-backend/pkg/logger"
)

// buildServer constructs the asynq server and routes task types to
// their jobs
func buildServer(c *container.Container) (*asynq.Server, *asynq.ServeMux) {
	server := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				shared.QueueCritical: 6,
				shared.QueueDefault:  3,
				shared.QueueLow:      1,
			},
			RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
				// Exponential backoff capped at ten minutes
				delay := time.Duration(1<<uint(n)) * time.Second
				if delay > 10*time.Minute {
					delay = 10 * time.Minute
				}
				return delay
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("task failed", map[string]interface{}{
					"type":  task.Type(),
					"error": err.Error(),
				})
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.Handle(shared.TypeDispatchLoyaltyOutbox, paymentjob.NewDispatchOutboxJob(c.OutboxRepo, c.LoyaltyService))
	mux.Handle(shared.TypeCleanupLoyaltyOutbox, paymentjob.NewCleanupOutboxJob(c.OutboxRepo))
	mux.Handle(shared.TypeRemoveExpiredPromos, promojob.NewRemoveExpiredJob(c.PromoService))

	return server, mux
}
