package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// CreateProductRequest adds a product to the menu (staff only)
type CreateProductRequest struct {
	CategoryID  int64           `json:"category_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Nutrition   NutritionalInfo `json:"nutrition"`
	Ingredients []string        `json:"ingredients"`
}

// Validate checks the request fields
func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CategoryID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Price, validation.By(nonNegativeDecimal)),
	)
}

// SetAvailabilityRequest toggles whether a product can be ordered
type SetAvailabilityRequest struct {
	Available bool `json:"available"`
}

func nonNegativeDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok || d.Sign() < 0 {
		return validation.NewError("validation_non_negative", "must not be negative")
	}
	return nil
}
