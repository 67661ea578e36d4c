package repository

import (
	"context"
	"time"

	"kiosk-backend/internal/domains/promo/model"
)

// PromoRepository persists promo codes
type PromoRepository interface {
	Create(ctx context.Context, promo *model.PromoCode) error
	FindByCode(ctx context.Context, code string) (*model.PromoCode, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
