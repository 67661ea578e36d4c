package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Delivery options
const (
	DeliveryOnSite   = "on-site"
	DeliveryDelivery = "delivery"
	DeliveryPickup   = "pickup"
)

// OrderItem is one line of an order, with the name and unit price
// captured at order time so later menu edits cannot change history
type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Order is a captured kiosk order awaiting payment
type Order struct {
	ID              int64           `json:"id"`
	UserEmail       *string         `json:"user_email,omitempty"`
	Status          string          `json:"status"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	DeliveryOption  string          `json:"delivery_option"`
	TableNumber     *int            `json:"table_number,omitempty"`
	DeliveryAddress *string         `json:"delivery_address,omitempty"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
