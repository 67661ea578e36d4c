package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"kiosk-backend/internal/domains/payment/model"
)

// PaymentRepository persists payments atomically with their loyalty
// outbox events
type PaymentRepository interface {
	// RecordPayment runs the whole settlement transaction: consume the
	// payment's promo code (when present), insert the payment, and
	// stage the outbox events. Returns model.ErrDuplicatePayment when
	// the order already has a payment and model.ErrInvalidPromo when
	// the code cannot be consumed.
	RecordPayment(ctx context.Context, payment *model.Payment, events []*model.OutboxEvent) error

	// FindByOrderID returns model.ErrPaymentNotFound when the order
	// has no recorded payment
	FindByOrderID(ctx context.Context, orderID int64) (*model.Payment, error)
}

// OutboxRepository drains the staged loyalty events
type OutboxRepository interface {
	// PendingEvents returns events to dispatch, oldest payment first,
	// seq order within a payment
	PendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)

	MarkDone(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	RecordAttempt(ctx context.Context, id uuid.UUID, reason string) error

	// DeleteFinished removes done and failed events older than the cutoff
	DeleteFinished(ctx context.Context, before time.Time) (int64, error)
}
