package model

import "errors"

var (
	// ErrOrderNotFound means no order with that id exists
	ErrOrderNotFound = errors.New("order not found")

	// ErrProductUnavailable means an ordered product is missing or
	// marked unavailable
	ErrProductUnavailable = errors.New("product unavailable")
)
