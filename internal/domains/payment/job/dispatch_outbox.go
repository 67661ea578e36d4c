package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	loyaltymodel "kiosk-backend/internal/domains/loyalty/model"
	loyaltysvc "kiosk-backend/internal/domains/loyalty/service"
	"kiosk-backend/internal/domains/payment/model"
	"kiosk-backend/internal/domains/payment/repository"
	"kiosk-backend/pkg/logger"
)

const dispatchBatchSize = 100

// Unknown event types are dead on arrival, not retryable
var errUnknownEventType = errors.New("unknown event type")

// DispatchOutboxJob drains pending loyalty outbox events and applies
// them to the loyalty store. Delivery is at-least-once; the loyalty
// side deduplicates on event id.
type DispatchOutboxJob struct {
	outbox  repository.OutboxRepository
	loyalty loyaltysvc.LoyaltyService
}

// NewDispatchOutboxJob creates the outbox dispatcher
func NewDispatchOutboxJob(outbox repository.OutboxRepository, loyalty loyaltysvc.LoyaltyService) *DispatchOutboxJob {
	return &DispatchOutboxJob{outbox: outbox, loyalty: loyalty}
}

// ProcessTask implements asynq.Handler
func (j *DispatchOutboxJob) ProcessTask(ctx context.Context, t *asynq.Task) error {
	for {
		events, err := j.outbox.PendingEvents(ctx, dispatchBatchSize)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}

		for _, event := range events {
			if err := j.dispatch(ctx, event); err != nil {
				return err
			}
		}

		if len(events) < dispatchBatchSize {
			return nil
		}
	}
}

// dispatch applies one event. A permanently unapplicable event is
// marked failed so it never blocks the queue; a transient failure
// records the attempt and aborts the batch so asynq retries it.
func (j *DispatchOutboxJob) dispatch(ctx context.Context, event *model.OutboxEvent) error {
	err := j.apply(ctx, event)
	if err == nil {
		return j.outbox.MarkDone(ctx, event.ID)
	}

	if errors.Is(err, loyaltymodel.ErrInsufficientPoints) || errors.Is(err, errUnknownEventType) {
		logger.Error("outbox event permanently failed", map[string]interface{}{
			"event_id":   event.ID.String(),
			"event_type": event.EventType,
			"user_email": event.UserEmail,
			"error":      err.Error(),
		})
		return j.outbox.MarkFailed(ctx, event.ID, err.Error())
	}

	if markErr := j.outbox.RecordAttempt(ctx, event.ID, err.Error()); markErr != nil {
		logger.Error("failed to record outbox attempt", map[string]interface{}{
			"event_id": event.ID.String(),
			"error":    markErr.Error(),
		})
	}
	return err
}

func (j *DispatchOutboxJob) apply(ctx context.Context, event *model.OutboxEvent) error {
	switch event.EventType {
	case model.EventRedeem:
		return j.loyalty.Redeem(ctx, &loyaltymodel.RedeemEvent{
			EventID:   event.ID,
			UserEmail: event.UserEmail,
			Points:    event.Points,
		})
	case model.EventAward:
		items := make([]loyaltymodel.HistoryItem, 0, len(event.Items))
		for _, item := range event.Items {
			items = append(items, loyaltymodel.HistoryItem{Name: item.Name, Quantity: item.Quantity})
		}
		return j.loyalty.Award(ctx, &loyaltymodel.AwardEvent{
			EventID:   event.ID,
			UserEmail: event.UserEmail,
			Points:    event.Points,
			OrderID:   event.OrderID,
			Amount:    event.Amount,
			Items:     items,
		})
	default:
		return fmt.Errorf("%w: %s", errUnknownEventType, event.EventType)
	}
}
