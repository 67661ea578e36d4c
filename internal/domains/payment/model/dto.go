package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// ChargeRequest settles an order
type ChargeRequest struct {
	OrderID        int64  `json:"order_id"`
	Method         string `json:"method"`
	PromoCode      string `json:"promo_code"`
	PointsToRedeem int64  `json:"points_to_redeem"`
	TransactionID  string `json:"transaction_id"`
}

// Validate checks the request. Card and mobile payments carry the
// processor's transaction id; cash has none.
func (r ChargeRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.OrderID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Method, validation.Required,
			validation.In(MethodCard, MethodCash, MethodMobile)),
		validation.Field(&r.PointsToRedeem, validation.Min(int64(0))),
	)
	if err != nil {
		return err
	}

	if (r.Method == MethodCard || r.Method == MethodMobile) && r.TransactionID == "" {
		return validation.Errors{
			"transaction_id": validation.NewError("validation_required", "transaction id is required for card and mobile payments"),
		}
	}

	return nil
}

// ChargeResponse is the settled payment with its discount breakdown
type ChargeResponse struct {
	Payment        *Payment        `json:"payment"`
	PointsRedeemed int64           `json:"points_redeemed"`
	PointsEarned   int64           `json:"points_earned"`
	AmountSaved    decimal.Decimal `json:"amount_saved"`
}
