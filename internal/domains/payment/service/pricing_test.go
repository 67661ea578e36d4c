package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestReconciler() *PricingReconciler {
	return NewPricingReconciler(100, decimal.NewFromInt(10))
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestReconcile_PointsOnly(t *testing.T) {
	r := newTestReconciler()

	quote := r.Reconcile(d("100"), decimal.Zero, 250)

	assert.True(t, quote.PromoDiscount.IsZero())
	assert.True(t, quote.PointsDiscount.Equal(d("20")), "250 points is two full blocks")
	assert.True(t, quote.FinalAmount.Equal(d("80")))
	assert.Equal(t, int64(200), quote.PointsRedeemed)
	assert.Equal(t, int64(80), quote.PointsEarned)
}

func TestReconcile_PromoThenPointsClamped(t *testing.T) {
	r := newTestReconciler()

	quote := r.Reconcile(d("50"), d("30"), 1000)

	assert.True(t, quote.PromoDiscount.Equal(d("30")))
	assert.True(t, quote.PointsDiscount.Equal(d("20")), "points cover only what the promo left")
	assert.True(t, quote.FinalAmount.IsZero())
	assert.Equal(t, int64(200), quote.PointsRedeemed, "clamped discount still debits whole blocks")
	assert.Equal(t, int64(0), quote.PointsEarned)
}

func TestReconcile_PromoLargerThanAmount(t *testing.T) {
	r := newTestReconciler()

	quote := r.Reconcile(d("20"), d("30"), 0)

	assert.True(t, quote.PromoDiscount.Equal(d("20")), "promo never exceeds the amount")
	assert.True(t, quote.PointsDiscount.IsZero())
	assert.True(t, quote.FinalAmount.IsZero())
}

func TestReconcile_PartialBlockConsumesWholeBlock(t *testing.T) {
	r := newTestReconciler()

	quote := r.Reconcile(d("35"), decimal.Zero, 400)

	assert.True(t, quote.PointsDiscount.Equal(d("35")))
	assert.True(t, quote.FinalAmount.IsZero())
	assert.Equal(t, int64(400), quote.PointsRedeemed)
}

func TestReconcile_BelowOneBlock(t *testing.T) {
	r := newTestReconciler()

	quote := r.Reconcile(d("100"), decimal.Zero, 99)

	assert.True(t, quote.PointsDiscount.IsZero(), "99 points is not a full block")
	assert.True(t, quote.FinalAmount.Equal(d("100")))
	assert.Equal(t, int64(0), quote.PointsRedeemed)
}

func TestReconcile_FractionalAmountEarnsWholePoints(t *testing.T) {
	r := newTestReconciler()

	quote := r.Reconcile(d("42.99"), decimal.Zero, 0)

	assert.Equal(t, int64(42), quote.PointsEarned)
}

func TestReconcile_BreakdownAlwaysSumsToAmount(t *testing.T) {
	r := newTestReconciler()

	cases := []struct {
		amount string
		promo  string
		points int64
	}{
		{"100", "0", 250},
		{"50", "30", 1000},
		{"20", "30", 0},
		{"35", "0", 400},
		{"0.01", "0", 100},
		{"19.99", "5", 150},
		{"0", "10", 500},
	}

	for _, tc := range cases {
		quote := r.Reconcile(d(tc.amount), d(tc.promo), tc.points)

		sum := quote.PromoDiscount.Add(quote.PointsDiscount).Add(quote.FinalAmount)
		assert.True(t, sum.Equal(d(tc.amount)),
			"amount=%s promo=%s points=%d: %s + %s + %s != %s",
			tc.amount, tc.promo, tc.points,
			quote.PromoDiscount, quote.PointsDiscount, quote.FinalAmount, tc.amount)

		assert.False(t, quote.PromoDiscount.IsNegative())
		assert.False(t, quote.PointsDiscount.IsNegative())
		assert.False(t, quote.FinalAmount.IsNegative())
	}
}

func TestReconcile_Pure(t *testing.T) {
	r := newTestReconciler()

	first := r.Reconcile(d("77.50"), d("10"), 300)
	second := r.Reconcile(d("77.50"), d("10"), 300)

	assert.Equal(t, first, second)
}
