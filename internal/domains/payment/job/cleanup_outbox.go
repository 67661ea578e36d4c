package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"kiosk-backend/internal/domains/payment/repository"
	"kiosk-backend/pkg/logger"
)

const outboxRetention = 7 * 24 * time.Hour

// CleanupOutboxJob removes finished outbox events past their retention
type CleanupOutboxJob struct {
	outbox repository.OutboxRepository
}

// NewCleanupOutboxJob creates the outbox cleanup job
func NewCleanupOutboxJob(outbox repository.OutboxRepository) *CleanupOutboxJob {
	return &CleanupOutboxJob{outbox: outbox}
}

// ProcessTask implements asynq.Handler
func (j *CleanupOutboxJob) ProcessTask(ctx context.Context, t *asynq.Task) error {
	deleted, err := j.outbox.DeleteFinished(ctx, time.Now().Add(-outboxRetention))
	if err != nil {
		return err
	}

	if deleted > 0 {
		logger.Info("outbox events cleaned up", map[string]interface{}{
			"deleted": deleted,
		})
	}

	return nil
}
