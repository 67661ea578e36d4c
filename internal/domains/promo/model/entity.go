package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PromoCode is a fixed-amount discount with a usage quota and an expiry
type PromoCode struct {
	ID         uuid.UUID       `json:"id"`
	Code       string          `json:"code"`
	Discount   decimal.Decimal `json:"discount"`
	Uses       int             `json:"uses"`
	MaxUses    int             `json:"max_uses"`
	ValidUntil time.Time       `json:"valid_until"`
	CreatedAt  time.Time       `json:"created_at"`
}

// IsValid reports whether the code can still be applied at the given time.
// A code is spent once its uses reach the quota, and expired strictly
// after valid_until.
func (p *PromoCode) IsValid(now time.Time) bool {
	if p.Uses >= p.MaxUses {
		return false
	}
	return !now.After(p.ValidUntil)
}

// Remaining returns how many applications the code has left
func (p *PromoCode) Remaining() int {
	if p.Uses >= p.MaxUses {
		return 0
	}
	return p.MaxUses - p.Uses
}
