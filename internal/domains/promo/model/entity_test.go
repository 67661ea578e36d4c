package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPromoCode_IsValid(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		uses       int
		maxUses    int
		validUntil time.Time
		want       bool
	}{
		{"fresh code", 0, 10, now.Add(time.Hour), true},
		{"last use available", 9, 10, now.Add(time.Hour), true},
		{"quota spent", 10, 10, now.Add(time.Hour), false},
		{"expired", 0, 10, now.Add(-time.Minute), false},
		{"expires exactly now", 0, 10, now, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			promo := &PromoCode{
				Code:       "TEST",
				Discount:   decimal.NewFromInt(10),
				Uses:       tc.uses,
				MaxUses:    tc.maxUses,
				ValidUntil: tc.validUntil,
			}
			assert.Equal(t, tc.want, promo.IsValid(now))
		})
	}
}

func TestPromoCode_Remaining(t *testing.T) {
	promo := &PromoCode{Uses: 3, MaxUses: 10}
	assert.Equal(t, 7, promo.Remaining())

	spent := &PromoCode{Uses: 10, MaxUses: 10}
	assert.Equal(t, 0, spent.Remaining())
}
