package job

import (
	"context"

	"github.com/hibiken/asynq"

	"kiosk-backend/internal/domains/promo/service"
	"kiosk-backend/pkg/logger"
)

// RemoveExpiredJob deletes promo codes past their expiry
type RemoveExpiredJob struct {
	service service.PromoService
}

// NewRemoveExpiredJob creates the expired-promo cleanup job
func NewRemoveExpiredJob(service service.PromoService) *RemoveExpiredJob {
	return &RemoveExpiredJob{service: service}
}

// ProcessTask implements asynq.Handler
func (j *RemoveExpiredJob) ProcessTask(ctx context.Context, t *asynq.Task) error {
	deleted, err := j.service.RemoveExpired(ctx)
	if err != nil {
		logger.Error("expired promo cleanup failed", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	logger.Debug("expired promo cleanup done", map[string]interface{}{
		"deleted": deleted,
	})

	return nil
}
