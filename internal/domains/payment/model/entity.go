package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods
const (
	MethodCard   = "card"
	MethodCash   = "cash"
	MethodMobile = "mobile_app"
)

// Payment statuses
const (
	StatusCompleted = "completed"
)

// Payment records a settled charge for an order. The discount columns
// keep the full breakdown so the receipt can be reconstructed.
type Payment struct {
	ID             uuid.UUID       `json:"id"`
	OrderID        int64           `json:"order_id"`
	Amount         decimal.Decimal `json:"amount"`
	PromoCode      *string         `json:"promo_code,omitempty"`
	PromoDiscount  decimal.Decimal `json:"promo_discount"`
	PointsDiscount decimal.Decimal `json:"points_discount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
	Method         string          `json:"method"`
	Status         string          `json:"status"`
	TransactionID  *string         `json:"transaction_id,omitempty"`
	UserEmail      *string         `json:"user_email,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Outbox event types, applied in seq order per payment
const (
	EventRedeem = "redeem"
	EventAward  = "award"
)

// Outbox event statuses
const (
	OutboxPending = "pending"
	OutboxDone    = "done"
	OutboxFailed  = "failed"
)

// OutboxItem mirrors an order line into the loyalty history payload
type OutboxItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// OutboxEvent is a loyalty side effect written in the same transaction
// as its payment and applied later by the worker
type OutboxEvent struct {
	ID        uuid.UUID       `json:"id"`
	PaymentID uuid.UUID       `json:"payment_id"`
	Seq       int             `json:"seq"`
	EventType string          `json:"event_type"`
	UserEmail string          `json:"user_email"`
	Points    int64           `json:"points"`
	OrderID   int64           `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	Items     []OutboxItem    `json:"items"`
	Status    string          `json:"status"`
	Attempts  int             `json:"attempts"`
	LastError *string         `json:"last_error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
