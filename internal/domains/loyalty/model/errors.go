package model

import "errors"

var (
	// ErrInsufficientPoints means the account balance cannot cover the redemption
	ErrInsufficientPoints = errors.New("insufficient loyalty points")
)
