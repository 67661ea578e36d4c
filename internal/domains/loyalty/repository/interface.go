package repository

import (
	"context"

	"kiosk-backend/internal/domains/loyalty/model"
)

// LoyaltyRepository persists point balances, purchase history and the
// ledger of applied events
type LoyaltyRepository interface {
	// Award credits points and records the purchase. Replays of the same
	// event id are no-ops.
	Award(ctx context.Context, event *model.AwardEvent) error

	// Redeem debits points. Returns model.ErrInsufficientPoints when the
	// balance cannot cover the debit. Replays of the same event id are
	// no-ops.
	Redeem(ctx context.Context, event *model.RedeemEvent) error

	// GetBalance returns the current balance, zero for unknown accounts
	GetBalance(ctx context.Context, userEmail string) (int64, error)

	GetHistory(ctx context.Context, userEmail string, limit int) ([]*model.HistoryEntry, error)
	TopProducts(ctx context.Context, userEmail string, limit int) ([]*model.ProductCount, error)
}
