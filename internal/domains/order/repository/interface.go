package repository

import (
	"context"

	"kiosk-backend/internal/domains/order/model"
)

// OrderRepository persists orders and their items
type OrderRepository interface {
	// Create inserts the order and its items, filling in the generated id
	Create(ctx context.Context, order *model.Order) error

	FindByID(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userEmail string, limit int) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}
