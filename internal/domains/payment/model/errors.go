package model

import "errors"

var (
	// ErrDuplicatePayment means the order already has a settled payment
	ErrDuplicatePayment = errors.New("payment already exists for order")

	// ErrOrderNotFound means the order id does not exist
	ErrOrderNotFound = errors.New("order not found")

	// ErrPaymentNotFound means no payment has been recorded for the order
	ErrPaymentNotFound = errors.New("no payment recorded for order")

	// ErrInvalidPromo means the promo code is unknown, expired or spent
	ErrInvalidPromo = errors.New("invalid promo code")

	// ErrInsufficientPoints means the loyalty balance cannot cover the
	// requested redemption
	ErrInsufficientPoints = errors.New("insufficient loyalty points")

	// ErrAuthRequired means the request redeems points without an
	// authenticated customer to debit them from
	ErrAuthRequired = errors.New("authentication required to redeem points")
)
