package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"kiosk-backend/internal/domains/promo/model"
	"kiosk-backend/internal/domains/promo/repository"
	"kiosk-backend/pkg/logger"
)

// PromoService manages promo code lifecycle and validity checks
type PromoService interface {
	CreatePromo(ctx context.Context, req *model.CreatePromoRequest) (*model.PromoCode, error)
	CheckPromo(ctx context.Context, code string, amount *decimal.Decimal) (*model.PromoStatusResponse, error)
	RemoveExpired(ctx context.Context) (int64, error)
}

type promoService struct {
	repo repository.PromoRepository
	now  func() time.Time
}

// NewPromoService creates a promo service
func NewPromoService(repo repository.PromoRepository) PromoService {
	return &promoService{
		repo: repo,
		now:  time.Now,
	}
}

// CreatePromo registers a new code.
//
// Business Logic Flow:
// 1. Validate the request fields
// 2. Insert the code with zero uses
// 3. Duplicate code names are rejected
func (s *promoService) CreatePromo(ctx context.Context, req *model.CreatePromoRequest) (*model.PromoCode, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	promo := &model.PromoCode{
		ID:         uuid.New(),
		Code:       req.Code,
		Discount:   req.Discount,
		Uses:       0,
		MaxUses:    req.MaxUses,
		ValidUntil: req.ValidUntil,
		CreatedAt:  s.now(),
	}

	if err := s.repo.Create(ctx, promo); err != nil {
		return nil, err
	}

	logger.Info("promo code created", map[string]interface{}{
		"code":        promo.Code,
		"discount":    promo.Discount.String(),
		"max_uses":    promo.MaxUses,
		"valid_until": promo.ValidUntil,
	})

	return promo, nil
}

// CheckPromo returns the validity preview for a code. An unknown code
// is reported as invalid rather than an error so the kiosk can render
// the same shape either way. With an order amount supplied, the preview
// includes the discount that would actually apply to it.
func (s *promoService) CheckPromo(ctx context.Context, code string, amount *decimal.Decimal) (*model.PromoStatusResponse, error) {
	promo, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, model.ErrPromoNotFound) {
			return &model.PromoStatusResponse{Code: code, Valid: false}, nil
		}
		return nil, err
	}

	status := &model.PromoStatusResponse{
		Code:      promo.Code,
		Valid:     promo.IsValid(s.now()),
		Discount:  promo.Discount,
		Remaining: promo.Remaining(),
	}

	if status.Valid && amount != nil {
		applied := decimal.Min(*amount, promo.Discount)
		status.AppliedDiscount = &applied
	}

	return status, nil
}

// RemoveExpired deletes codes past their expiry. Called from the
// background worker on a schedule.
func (s *promoService) RemoveExpired(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		logger.Info("expired promo codes removed", map[string]interface{}{
			"count": deleted,
		})
	}

	return deleted, nil
}
