package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"kiosk-backend/internal/domains/payment/model"
	"kiosk-backend/pkg/database"
)

type paymentRepository struct {
	db *pgxpool.Pool
}

// NewPaymentRepository creates a Postgres-backed payment repository
func NewPaymentRepository(db *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{db: db}
}

// NewOutboxRepository exposes the outbox side of the same storage
func NewOutboxRepository(db *pgxpool.Pool) OutboxRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) RecordPayment(ctx context.Context, payment *model.Payment, events []*model.OutboxEvent) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if payment.PromoCode != nil {
			// The consume re-checks quota and expiry under the row lock,
			// so two concurrent charges cannot overspend a code.
			consume := `
				UPDATE promo_codes
				SET uses = uses + 1
				WHERE code = $1 AND uses < max_uses AND valid_until >= NOW()`

			tag, err := tx.Exec(ctx, consume, *payment.PromoCode)
			if err != nil {
				return fmt.Errorf("failed to consume promo code: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return model.ErrInvalidPromo
			}
		}

		insert := `
			INSERT INTO payments (id, order_id, amount, promo_code, promo_discount,
			                      points_discount, final_amount, method, status,
			                      transaction_id, user_email)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING created_at`

		err := tx.QueryRow(ctx, insert,
			payment.ID, payment.OrderID, payment.Amount, payment.PromoCode,
			payment.PromoDiscount, payment.PointsDiscount, payment.FinalAmount,
			payment.Method, payment.Status, payment.TransactionID, payment.UserEmail,
		).Scan(&payment.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return model.ErrDuplicatePayment
			}
			return fmt.Errorf("failed to insert payment: %w", err)
		}

		for _, event := range events {
			items, err := json.Marshal(event.Items)
			if err != nil {
				return fmt.Errorf("failed to encode event items: %w", err)
			}

			stage := `
				INSERT INTO loyalty_outbox (id, payment_id, seq, event_type, user_email,
				                            points, order_id, amount, items, status)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

			_, err = tx.Exec(ctx, stage,
				event.ID, event.PaymentID, event.Seq, event.EventType,
				event.UserEmail, event.Points, event.OrderID, event.Amount,
				items, model.OutboxPending)
			if err != nil {
				return fmt.Errorf("failed to stage outbox event: %w", err)
			}
		}

		return nil
	})
}

func (r *paymentRepository) FindByOrderID(ctx context.Context, orderID int64) (*model.Payment, error) {
	query := `
		SELECT id, order_id, amount, promo_code, promo_discount, points_discount,
		       final_amount, method, status, transaction_id, user_email, created_at
		FROM payments
		WHERE order_id = $1`

	payment := &model.Payment{}
	err := r.db.QueryRow(ctx, query, orderID).Scan(
		&payment.ID, &payment.OrderID, &payment.Amount, &payment.PromoCode,
		&payment.PromoDiscount, &payment.PointsDiscount, &payment.FinalAmount,
		&payment.Method, &payment.Status, &payment.TransactionID,
		&payment.UserEmail, &payment.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}

	return payment, nil
}

func (r *paymentRepository) PendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	query := `
		SELECT id, payment_id, seq, event_type, user_email, points, order_id,
		       amount, items, status, attempts, last_error, created_at
		FROM loyalty_outbox
		WHERE status = $1
		ORDER BY created_at, payment_id, seq
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, model.OutboxPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending events: %w", err)
	}
	defer rows.Close()

	var events []*model.OutboxEvent
	for rows.Next() {
		event := &model.OutboxEvent{}
		var items []byte
		if err := rows.Scan(&event.ID, &event.PaymentID, &event.Seq,
			&event.EventType, &event.UserEmail, &event.Points, &event.OrderID,
			&event.Amount, &items, &event.Status, &event.Attempts,
			&event.LastError, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outbox event: %w", err)
		}
		if err := json.Unmarshal(items, &event.Items); err != nil {
			return nil, fmt.Errorf("failed to decode event items: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func (r *paymentRepository) MarkDone(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE loyalty_outbox
		SET status = $2, attempts = attempts + 1, updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, model.OutboxDone)
	if err != nil {
		return fmt.Errorf("failed to mark event done: %w", err)
	}
	return nil
}

func (r *paymentRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	query := `
		UPDATE loyalty_outbox
		SET status = $2, attempts = attempts + 1, last_error = $3, updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, model.OutboxFailed, reason)
	if err != nil {
		return fmt.Errorf("failed to mark event failed: %w", err)
	}
	return nil
}

func (r *paymentRepository) RecordAttempt(ctx context.Context, id uuid.UUID, reason string) error {
	query := `
		UPDATE loyalty_outbox
		SET attempts = attempts + 1, last_error = $2, updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, reason)
	if err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}
	return nil
}

func (r *paymentRepository) DeleteFinished(ctx context.Context, before time.Time) (int64, error) {
	query := `
		DELETE FROM loyalty_outbox
		WHERE status IN ($1, $2) AND updated_at < $3`

	tag, err := r.db.Exec(ctx, query, model.OutboxDone, model.OutboxFailed, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete finished events: %w", err)
	}

	return tag.RowsAffected(), nil
}
