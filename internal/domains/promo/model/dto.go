package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// CreatePromoRequest registers a new promo code (staff only)
type CreatePromoRequest struct {
	Code       string          `json:"code"`
	Discount   decimal.Decimal `json:"discount"`
	MaxUses    int             `json:"max_uses"`
	ValidUntil time.Time       `json:"valid_until"`
}

// Validate checks the request fields
func (r CreatePromoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.Discount, validation.Required, validation.By(positiveDecimal)),
		validation.Field(&r.MaxUses, validation.Required, validation.Min(1)),
		validation.Field(&r.ValidUntil, validation.Required, validation.By(futureTime)),
	)
}

// PromoStatusResponse is the validity preview returned to the kiosk
// before the customer commits to payment. AppliedDiscount is only set
// when the caller supplied an order amount to preview against.
type PromoStatusResponse struct {
	Code            string           `json:"code"`
	Valid           bool             `json:"valid"`
	Discount        decimal.Decimal  `json:"discount"`
	Remaining       int              `json:"remaining"`
	AppliedDiscount *decimal.Decimal `json:"applied_discount,omitempty"`
}

func positiveDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok || d.Sign() <= 0 {
		return validation.NewError("validation_positive", "must be a positive amount")
	}
	return nil
}

func futureTime(value interface{}) error {
	t, ok := value.(time.Time)
	if !ok || !t.After(time.Now()) {
		return validation.NewError("validation_future", "must be in the future")
	}
	return nil
}
