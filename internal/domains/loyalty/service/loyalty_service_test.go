package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiosk-backend/internal/domains/loyalty/model"
)

// ===== Fakes =====

type fakeLoyaltyRepo struct {
	balances map[string]int64
	applied  map[uuid.UUID]bool
	history  []*model.HistoryEntry
}

func newFakeLoyaltyRepo() *fakeLoyaltyRepo {
	return &fakeLoyaltyRepo{
		balances: map[string]int64{},
		applied:  map[uuid.UUID]bool{},
	}
}

func (f *fakeLoyaltyRepo) Award(ctx context.Context, event *model.AwardEvent) error {
	if f.applied[event.EventID] {
		return nil
	}
	f.applied[event.EventID] = true
	f.balances[event.UserEmail] += event.Points
	f.history = append(f.history, &model.HistoryEntry{
		UserEmail: event.UserEmail,
		OrderID:   event.OrderID,
		Amount:    event.Amount,
		Points:    event.Points,
		Items:     event.Items,
	})
	return nil
}

func (f *fakeLoyaltyRepo) Redeem(ctx context.Context, event *model.RedeemEvent) error {
	if f.applied[event.EventID] {
		return nil
	}
	if f.balances[event.UserEmail] < event.Points {
		return model.ErrInsufficientPoints
	}
	f.applied[event.EventID] = true
	f.balances[event.UserEmail] -= event.Points
	return nil
}

func (f *fakeLoyaltyRepo) GetBalance(ctx context.Context, userEmail string) (int64, error) {
	return f.balances[userEmail], nil
}

func (f *fakeLoyaltyRepo) GetHistory(ctx context.Context, userEmail string, limit int) ([]*model.HistoryEntry, error) {
	return f.history, nil
}

func (f *fakeLoyaltyRepo) TopProducts(ctx context.Context, userEmail string, limit int) ([]*model.ProductCount, error) {
	return nil, nil
}

type fakeCache struct {
	store map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := f.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = raw
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.store, key)
	}
	return nil
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }

// ===== Tests =====

func TestGetBalance_CachesResult(t *testing.T) {
	repo := newFakeLoyaltyRepo()
	repo.balances["a@b.pl"] = 300
	cache := newFakeCache()
	svc := NewLoyaltyService(repo, cache)

	points, err := svc.GetBalance(context.Background(), "a@b.pl")
	require.NoError(t, err)
	assert.Equal(t, int64(300), points)

	// Second read comes from the cache even if the store changed
	repo.balances["a@b.pl"] = 999
	points, err = svc.GetBalance(context.Background(), "a@b.pl")
	require.NoError(t, err)
	assert.Equal(t, int64(300), points)
}

func TestAward_InvalidatesCachedBalance(t *testing.T) {
	repo := newFakeLoyaltyRepo()
	cache := newFakeCache()
	svc := NewLoyaltyService(repo, cache)

	_, err := svc.GetBalance(context.Background(), "a@b.pl")
	require.NoError(t, err)

	err = svc.Award(context.Background(), &model.AwardEvent{
		EventID:   uuid.New(),
		UserEmail: "a@b.pl",
		Points:    80,
		OrderID:   42,
	})
	require.NoError(t, err)

	points, err := svc.GetBalance(context.Background(), "a@b.pl")
	require.NoError(t, err)
	assert.Equal(t, int64(80), points)
}

func TestAward_ReplayIsNoop(t *testing.T) {
	repo := newFakeLoyaltyRepo()
	svc := NewLoyaltyService(repo, newFakeCache())

	event := &model.AwardEvent{
		EventID:   uuid.New(),
		UserEmail: "a@b.pl",
		Points:    80,
		OrderID:   42,
	}

	require.NoError(t, svc.Award(context.Background(), event))
	require.NoError(t, svc.Award(context.Background(), event))

	assert.Equal(t, int64(80), repo.balances["a@b.pl"])
}

func TestRedeem_InsufficientPoints(t *testing.T) {
	repo := newFakeLoyaltyRepo()
	repo.balances["a@b.pl"] = 100
	svc := NewLoyaltyService(repo, newFakeCache())

	err := svc.Redeem(context.Background(), &model.RedeemEvent{
		EventID:   uuid.New(),
		UserEmail: "a@b.pl",
		Points:    200,
	})

	assert.ErrorIs(t, err, model.ErrInsufficientPoints)
	assert.Equal(t, int64(100), repo.balances["a@b.pl"], "failed redeem leaves the balance alone")
}

func TestRedeem_DebitsAndInvalidates(t *testing.T) {
	repo := newFakeLoyaltyRepo()
	repo.balances["a@b.pl"] = 500
	cache := newFakeCache()
	svc := NewLoyaltyService(repo, cache)

	_, err := svc.GetBalance(context.Background(), "a@b.pl")
	require.NoError(t, err)

	err = svc.Redeem(context.Background(), &model.RedeemEvent{
		EventID:   uuid.New(),
		UserEmail: "a@b.pl",
		Points:    200,
	})
	require.NoError(t, err)

	points, err := svc.GetBalance(context.Background(), "a@b.pl")
	require.NoError(t, err)
	assert.Equal(t, int64(300), points)
}
