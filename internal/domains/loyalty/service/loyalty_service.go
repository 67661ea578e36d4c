package service

import (
	"context"
	"fmt"
	"time"

	"kiosk-backend/internal/domains/loyalty/model"
	"kiosk-backend/internal/domains/loyalty/repository"
	"kiosk-backend/pkg/cache"
	"kiosk-backend/pkg/logger"
)

const (
	balanceCacheTTL = 5 * time.Minute
	historyLimit    = 50
	topProductLimit = 5
)

// LoyaltyService exposes point balances and applies loyalty events
type LoyaltyService interface {
	GetBalance(ctx context.Context, userEmail string) (int64, error)
	GetHistory(ctx context.Context, userEmail string) ([]*model.HistoryEntry, error)
	GetTopProducts(ctx context.Context, userEmail string) ([]*model.ProductCount, error)

	// Award and Redeem are invoked by the outbox dispatcher, never
	// directly from a request handler. Both are idempotent per event id.
	Award(ctx context.Context, event *model.AwardEvent) error
	Redeem(ctx context.Context, event *model.RedeemEvent) error
}

type loyaltyService struct {
	repo  repository.LoyaltyRepository
	cache cache.Cache
}

// NewLoyaltyService creates a loyalty service
func NewLoyaltyService(repo repository.LoyaltyRepository, cache cache.Cache) LoyaltyService {
	return &loyaltyService{repo: repo, cache: cache}
}

func (s *loyaltyService) GetBalance(ctx context.Context, userEmail string) (int64, error) {
	key := balanceCacheKey(userEmail)

	var cached int64
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	points, err := s.repo.GetBalance(ctx, userEmail)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Set(ctx, key, points, balanceCacheTTL); err != nil {
		logger.Debug("balance cache write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return points, nil
}

func (s *loyaltyService) GetHistory(ctx context.Context, userEmail string) ([]*model.HistoryEntry, error) {
	return s.repo.GetHistory(ctx, userEmail, historyLimit)
}

func (s *loyaltyService) GetTopProducts(ctx context.Context, userEmail string) ([]*model.ProductCount, error) {
	return s.repo.TopProducts(ctx, userEmail, topProductLimit)
}

// Award credits points for a completed purchase.
//
// Business Logic Flow:
// 1. Apply the credit, history entry and ledger row in one transaction
// 2. A replayed event id leaves the balance untouched
// 3. Drop the cached balance so the next read sees the new total
func (s *loyaltyService) Award(ctx context.Context, event *model.AwardEvent) error {
	if err := s.repo.Award(ctx, event); err != nil {
		return err
	}

	s.invalidateBalance(ctx, event.UserEmail)

	logger.Info("loyalty points awarded", map[string]interface{}{
		"user_email": event.UserEmail,
		"points":     event.Points,
		"order_id":   event.OrderID,
	})

	return nil
}

// Redeem debits points spent as a payment discount. Insufficient
// balance surfaces as model.ErrInsufficientPoints.
func (s *loyaltyService) Redeem(ctx context.Context, event *model.RedeemEvent) error {
	if err := s.repo.Redeem(ctx, event); err != nil {
		return err
	}

	s.invalidateBalance(ctx, event.UserEmail)

	logger.Info("loyalty points redeemed", map[string]interface{}{
		"user_email": event.UserEmail,
		"points":     event.Points,
	})

	return nil
}

func (s *loyaltyService) invalidateBalance(ctx context.Context, userEmail string) {
	if err := s.cache.Delete(ctx, balanceCacheKey(userEmail)); err != nil {
		logger.Debug("balance cache invalidation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func balanceCacheKey(userEmail string) string {
	return fmt.Sprintf("loyalty:balance:%s", userEmail)
}
