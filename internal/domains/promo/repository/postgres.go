package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"kiosk-backend/internal/domains/promo/model"
)

type promoRepository struct {
	db *pgxpool.Pool
}

// NewPromoRepository creates a Postgres-backed promo repository
func NewPromoRepository(db *pgxpool.Pool) PromoRepository {
	return &promoRepository{db: db}
}

func (r *promoRepository) Create(ctx context.Context, promo *model.PromoCode) error {
	query := `
		INSERT INTO promo_codes (id, code, discount, uses, max_uses, valid_until, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		promo.ID, promo.Code, promo.Discount, promo.Uses,
		promo.MaxUses, promo.ValidUntil, promo.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrPromoExists
		}
		return fmt.Errorf("failed to create promo code: %w", err)
	}

	return nil
}

func (r *promoRepository) FindByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	query := `
		SELECT id, code, discount, uses, max_uses, valid_until, created_at
		FROM promo_codes
		WHERE code = $1`

	promo := &model.PromoCode{}
	err := r.db.QueryRow(ctx, query, code).Scan(
		&promo.ID, &promo.Code, &promo.Discount, &promo.Uses,
		&promo.MaxUses, &promo.ValidUntil, &promo.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPromoNotFound
		}
		return nil, fmt.Errorf("failed to find promo code: %w", err)
	}

	return promo, nil
}

func (r *promoRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM promo_codes WHERE valid_until < $1`

	tag, err := r.db.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired promo codes: %w", err)
	}

	return tag.RowsAffected(), nil
}
