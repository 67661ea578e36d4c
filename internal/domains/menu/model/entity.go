package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products on the kiosk screen
type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

// NutritionalInfo is optional per-product nutrition data
type NutritionalInfo struct {
	Calories *int             `json:"calories,omitempty"`
	ProteinG *decimal.Decimal `json:"protein_g,omitempty"`
	FatG     *decimal.Decimal `json:"fat_g,omitempty"`
	CarbsG   *decimal.Decimal `json:"carbs_g,omitempty"`
}

// Ingredient is a component of a product, flagged when it is a
// common allergen
type Ingredient struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Allergen bool   `json:"allergen"`
}

// Product is a purchasable menu item
type Product struct {
	ID          int64           `json:"id"`
	CategoryID  int64           `json:"category_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Available   bool            `json:"available"`
	Nutrition   NutritionalInfo `json:"nutrition"`
	Ingredients []Ingredient    `json:"ingredients"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MenuCategory is a category with its products, as served to the kiosk
type MenuCategory struct {
	Category
	Products []*Product `json:"products"`
}
