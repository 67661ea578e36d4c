package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiosk-backend/internal/domains/promo/model"
)

// ===== Fakes =====

type fakePromoRepo struct {
	promos map[string]*model.PromoCode
}

func newFakePromoRepo() *fakePromoRepo {
	return &fakePromoRepo{promos: map[string]*model.PromoCode{}}
}

func (f *fakePromoRepo) Create(_ context.Context, promo *model.PromoCode) error {
	if _, ok := f.promos[promo.Code]; ok {
		return model.ErrPromoExists
	}
	f.promos[promo.Code] = promo
	return nil
}

func (f *fakePromoRepo) FindByCode(_ context.Context, code string) (*model.PromoCode, error) {
	promo, ok := f.promos[code]
	if !ok {
		return nil, model.ErrPromoNotFound
	}
	return promo, nil
}

func (f *fakePromoRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	var deleted int64
	for code, promo := range f.promos {
		if promo.ValidUntil.Before(before) {
			delete(f.promos, code)
			deleted++
		}
	}
	return deleted, nil
}

// ===== Helpers =====

func seedPromo(repo *fakePromoRepo, code string, discount int64, uses, maxUses int, validUntil time.Time) {
	repo.promos[code] = &model.PromoCode{
		Code:       code,
		Discount:   decimal.NewFromInt(discount),
		Uses:       uses,
		MaxUses:    maxUses,
		ValidUntil: validUntil,
	}
}

func amountPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// ===== Tests =====

func TestCheckPromo_UnknownCodeIsInvalidNotError(t *testing.T) {
	svc := NewPromoService(newFakePromoRepo())

	status, err := svc.CheckPromo(context.Background(), "NOPE", nil)

	require.NoError(t, err)
	assert.False(t, status.Valid)
	assert.Equal(t, "NOPE", status.Code)
	assert.Nil(t, status.AppliedDiscount)
}

func TestCheckPromo_ValidCode(t *testing.T) {
	repo := newFakePromoRepo()
	seedPromo(repo, "SAVE20", 20, 3, 10, time.Now().Add(time.Hour))
	svc := NewPromoService(repo)

	status, err := svc.CheckPromo(context.Background(), "SAVE20", nil)

	require.NoError(t, err)
	assert.True(t, status.Valid)
	assert.True(t, status.Discount.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 7, status.Remaining)
	assert.Nil(t, status.AppliedDiscount)
}

func TestCheckPromo_AppliedDiscountClampedToAmount(t *testing.T) {
	repo := newFakePromoRepo()
	seedPromo(repo, "SAVE50", 50, 0, 10, time.Now().Add(time.Hour))
	svc := NewPromoService(repo)

	status, err := svc.CheckPromo(context.Background(), "SAVE50", amountPtr(30))

	require.NoError(t, err)
	require.NotNil(t, status.AppliedDiscount)
	assert.True(t, status.AppliedDiscount.Equal(decimal.NewFromInt(30)))
}

func TestCheckPromo_AppliedDiscountFullValue(t *testing.T) {
	repo := newFakePromoRepo()
	seedPromo(repo, "SAVE20", 20, 0, 10, time.Now().Add(time.Hour))
	svc := NewPromoService(repo)

	status, err := svc.CheckPromo(context.Background(), "SAVE20", amountPtr(100))

	require.NoError(t, err)
	require.NotNil(t, status.AppliedDiscount)
	assert.True(t, status.AppliedDiscount.Equal(decimal.NewFromInt(20)))
}

func TestCheckPromo_NoPreviewForInvalidCode(t *testing.T) {
	repo := newFakePromoRepo()
	seedPromo(repo, "SPENT", 20, 10, 10, time.Now().Add(time.Hour))
	svc := NewPromoService(repo)

	status, err := svc.CheckPromo(context.Background(), "SPENT", amountPtr(100))

	require.NoError(t, err)
	assert.False(t, status.Valid)
	assert.Nil(t, status.AppliedDiscount)
}

func TestCreatePromo_RejectsInvalidRequest(t *testing.T) {
	svc := NewPromoService(newFakePromoRepo())

	_, err := svc.CreatePromo(context.Background(), &model.CreatePromoRequest{
		Code:       "X",
		Discount:   decimal.NewFromInt(-5),
		MaxUses:    0,
		ValidUntil: time.Now().Add(-time.Hour),
	})

	require.Error(t, err)
}

func TestCreatePromo_DuplicateCode(t *testing.T) {
	repo := newFakePromoRepo()
	svc := NewPromoService(repo)

	req := &model.CreatePromoRequest{
		Code:       "SAVE20",
		Discount:   decimal.NewFromInt(20),
		MaxUses:    10,
		ValidUntil: time.Now().Add(24 * time.Hour),
	}

	_, err := svc.CreatePromo(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CreatePromo(context.Background(), req)
	assert.ErrorIs(t, err, model.ErrPromoExists)
}

func TestRemoveExpired(t *testing.T) {
	repo := newFakePromoRepo()
	seedPromo(repo, "OLD", 10, 0, 5, time.Now().Add(-time.Hour))
	seedPromo(repo, "LIVE", 10, 0, 5, time.Now().Add(time.Hour))
	svc := NewPromoService(repo)

	deleted, err := svc.RemoveExpired(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	_, err = repo.FindByCode(context.Background(), "LIVE")
	assert.NoError(t, err)
}
