package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account tracks a customer's current point balance, keyed by email
type Account struct {
	UserEmail string    `json:"user_email"`
	Points    int64     `json:"points"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HistoryItem is one line of a purchase recorded for loyalty history
type HistoryItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// HistoryEntry records a completed purchase and the points it earned
type HistoryEntry struct {
	ID        int64           `json:"id"`
	UserEmail string          `json:"user_email"`
	OrderID   int64           `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	Points    int64           `json:"points"`
	Items     []HistoryItem   `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
}

// AwardEvent credits points for a completed purchase
type AwardEvent struct {
	EventID   uuid.UUID
	UserEmail string
	Points    int64
	OrderID   int64
	Amount    decimal.Decimal
	Items     []HistoryItem
}

// RedeemEvent debits points spent as a payment discount
type RedeemEvent struct {
	EventID   uuid.UUID
	UserEmail string
	Points    int64
}

// ProductCount is an aggregate over history items, used for the
// customer's most-ordered products
type ProductCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
