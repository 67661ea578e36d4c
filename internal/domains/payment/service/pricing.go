package service

import (
	"github.com/shopspring/decimal"
)

// Quote is the outcome of reconciling an order amount against the
// requested discounts. All amounts are non-negative and
// PromoDiscount + PointsDiscount + FinalAmount always equals Amount.
type Quote struct {
	Amount         decimal.Decimal
	PromoDiscount  decimal.Decimal
	PointsDiscount decimal.Decimal
	FinalAmount    decimal.Decimal

	// PointsRedeemed is what the redeem event will debit; whole blocks
	// only, rounded up when the discount is clamped mid-block. Note
	// this is derived from the applied discount, not the request:
	// points requested beyond the usable blocks stay on the account
	// (250 requested against a 20 discount debits 200, not 250).
	PointsRedeemed int64

	// PointsEarned is what the award event will credit, one point per
	// whole currency unit actually paid
	PointsEarned int64
}

// PricingReconciler computes the discount breakdown for a charge. It is
// pure: same inputs, same quote, no side effects.
type PricingReconciler struct {
	blockPoints int64
	blockValue  decimal.Decimal
}

// NewPricingReconciler creates a reconciler with the given redemption
// rate (blockPoints loyalty points are worth blockValue currency).
func NewPricingReconciler(blockPoints int64, blockValue decimal.Decimal) *PricingReconciler {
	return &PricingReconciler{
		blockPoints: blockPoints,
		blockValue:  blockValue,
	}
}

// Reconcile applies the promo discount first, then the points discount
// against whatever remains:
//
//	promoDiscount  = min(amount, promo value)
//	pointsDiscount = min(amount - promoDiscount, floor(points/block) * blockValue)
//	finalAmount    = amount - promoDiscount - pointsDiscount
//
// A zero promoValue means no promo; zero points means no redemption.
func (r *PricingReconciler) Reconcile(amount, promoValue decimal.Decimal, points int64) Quote {
	if amount.Sign() < 0 {
		amount = decimal.Zero
	}

	promoDiscount := decimal.Min(amount, promoValue)
	if promoDiscount.Sign() < 0 {
		promoDiscount = decimal.Zero
	}

	remaining := amount.Sub(promoDiscount)

	blocks := int64(0)
	if points > 0 && r.blockPoints > 0 {
		blocks = points / r.blockPoints
	}
	pointsValue := r.blockValue.Mul(decimal.NewFromInt(blocks))
	pointsDiscount := decimal.Min(remaining, pointsValue)

	finalAmount := remaining.Sub(pointsDiscount)

	return Quote{
		Amount:         amount,
		PromoDiscount:  promoDiscount,
		PointsDiscount: pointsDiscount,
		FinalAmount:    finalAmount,
		PointsRedeemed: r.pointsFor(pointsDiscount),
		PointsEarned:   finalAmount.Floor().IntPart(),
	}
}

// pointsFor converts a discount back into debited points. The debit is
// whole blocks; a discount clamped mid-block still consumes the block.
func (r *PricingReconciler) pointsFor(discount decimal.Decimal) int64 {
	if discount.Sign() <= 0 {
		return 0
	}
	blocks := discount.Div(r.blockValue).Ceil().IntPart()
	return blocks * r.blockPoints
}
