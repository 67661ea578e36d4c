package model

import "errors"

var (
	// ErrProductNotFound means no product with that id exists
	ErrProductNotFound = errors.New("product not found")

	// ErrCategoryNotFound means no category with that id exists
	ErrCategoryNotFound = errors.New("category not found")
)
