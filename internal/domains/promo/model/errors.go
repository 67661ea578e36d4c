package model

import "errors"

var (
	// ErrPromoNotFound means no code with that name exists
	ErrPromoNotFound = errors.New("promo code not found")

	// ErrInvalidPromo means the code exists but is expired or spent,
	// or does not exist at all when validity is what the caller asks
	ErrInvalidPromo = errors.New("invalid promo code")

	// ErrPromoExists means a code with that name is already registered
	ErrPromoExists = errors.New("promo code already exists")
)
