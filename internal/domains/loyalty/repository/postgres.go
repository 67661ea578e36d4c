package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kiosk-backend/internal/domains/loyalty/model"
	"kiosk-backend/pkg/database"
)

type loyaltyRepository struct {
	db *pgxpool.Pool
}

// NewLoyaltyRepository creates a Postgres-backed loyalty repository
func NewLoyaltyRepository(db *pgxpool.Pool) LoyaltyRepository {
	return &loyaltyRepository{db: db}
}

func (r *loyaltyRepository) Award(ctx context.Context, event *model.AwardEvent) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		applied, err := r.markApplied(ctx, tx, event.EventID.String(), event.UserEmail, event.Points)
		if err != nil {
			return err
		}
		if !applied {
			return nil
		}

		upsert := `
			INSERT INTO loyalty_accounts (user_email, points, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (user_email)
			DO UPDATE SET points = loyalty_accounts.points + EXCLUDED.points, updated_at = NOW()`

		if _, err := tx.Exec(ctx, upsert, event.UserEmail, event.Points); err != nil {
			return fmt.Errorf("failed to credit points: %w", err)
		}

		items, err := json.Marshal(event.Items)
		if err != nil {
			return fmt.Errorf("failed to encode history items: %w", err)
		}

		history := `
			INSERT INTO loyalty_history (user_email, order_id, amount, points, items)
			VALUES ($1, $2, $3, $4, $5)`

		if _, err := tx.Exec(ctx, history,
			event.UserEmail, event.OrderID, event.Amount, event.Points, items); err != nil {
			return fmt.Errorf("failed to record history: %w", err)
		}

		return nil
	})
}

func (r *loyaltyRepository) Redeem(ctx context.Context, event *model.RedeemEvent) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		applied, err := r.markApplied(ctx, tx, event.EventID.String(), event.UserEmail, -event.Points)
		if err != nil {
			return err
		}
		if !applied {
			return nil
		}

		// The balance check and the debit must be one statement, or two
		// concurrent redemptions could both pass the check.
		debit := `
			UPDATE loyalty_accounts
			SET points = points - $2, updated_at = NOW()
			WHERE user_email = $1 AND points >= $2`

		tag, err := tx.Exec(ctx, debit, event.UserEmail, event.Points)
		if err != nil {
			return fmt.Errorf("failed to debit points: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrInsufficientPoints
		}

		return nil
	})
}

// markApplied claims the event id in the ledger. Returns false when the
// event was already applied by an earlier delivery.
func (r *loyaltyRepository) markApplied(ctx context.Context, tx pgx.Tx, eventID, userEmail string, delta int64) (bool, error) {
	query := `
		INSERT INTO loyalty_ledger (event_id, user_email, delta)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id) DO NOTHING`

	tag, err := tx.Exec(ctx, query, eventID, userEmail, delta)
	if err != nil {
		return false, fmt.Errorf("failed to record ledger entry: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *loyaltyRepository) GetBalance(ctx context.Context, userEmail string) (int64, error) {
	query := `SELECT points FROM loyalty_accounts WHERE user_email = $1`

	var points int64
	err := r.db.QueryRow(ctx, query, userEmail).Scan(&points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}

	return points, nil
}

func (r *loyaltyRepository) GetHistory(ctx context.Context, userEmail string, limit int) ([]*model.HistoryEntry, error) {
	query := `
		SELECT id, user_email, order_id, amount, points, items, created_at
		FROM loyalty_history
		WHERE user_email = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userEmail, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	var entries []*model.HistoryEntry
	for rows.Next() {
		entry := &model.HistoryEntry{}
		var items []byte
		if err := rows.Scan(&entry.ID, &entry.UserEmail, &entry.OrderID,
			&entry.Amount, &entry.Points, &items, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		if err := json.Unmarshal(items, &entry.Items); err != nil {
			return nil, fmt.Errorf("failed to decode history items: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *loyaltyRepository) TopProducts(ctx context.Context, userEmail string, limit int) ([]*model.ProductCount, error) {
	query := `
		SELECT item->>'name' AS name, SUM((item->>'quantity')::bigint) AS total
		FROM loyalty_history, jsonb_array_elements(items) AS item
		WHERE user_email = $1
		GROUP BY 1
		ORDER BY total DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userEmail, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top products: %w", err)
	}
	defer rows.Close()

	var products []*model.ProductCount
	for rows.Next() {
		p := &model.ProductCount{}
		if err := rows.Scan(&p.Name, &p.Count); err != nil {
			return nil, fmt.Errorf("failed to scan product count: %w", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}
