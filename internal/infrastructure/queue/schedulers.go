package queue

import (
	"fmt"

	"github.com/hibiken/asynq"

	"kiosk-backend/internal/shared"
	"kiosk-backend/pkg/logger"
)

// NewScheduler registers the periodic tasks:
//   - the outbox sweep, the backstop that drains events whose
//     immediate dispatch was lost
//   - outbox retention cleanup
//   - expired promo code removal
func NewScheduler(redisAddr, redisPassword string, redisDB int) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		},
		&asynq.SchedulerOpts{},
	)

	entries := []struct {
		cronspec string
		taskType string
		queue    string
	}{
		{"@every 1m", shared.TypeDispatchLoyaltyOutbox, shared.QueueCritical},
		{"@every 1h", shared.TypeCleanupLoyaltyOutbox, shared.QueueLow},
		{"@every 6h", shared.TypeRemoveExpiredPromos, shared.QueueLow},
	}

	for _, entry := range entries {
		task := asynq.NewTask(entry.taskType, nil)
		entryID, err := scheduler.Register(entry.cronspec, task, asynq.Queue(entry.queue))
		if err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", entry.taskType, err)
		}

		logger.Info("scheduled task registered", map[string]interface{}{
			"task":     entry.taskType,
			"cronspec": entry.cronspec,
			"entry_id": entryID,
		})
	}

	return scheduler, nil
}
