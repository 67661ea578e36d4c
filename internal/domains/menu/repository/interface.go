package repository

import (
	"context"

	"kiosk-backend/internal/domains/menu/model"
)

// MenuRepository persists the catalog of categories, products and
// ingredients
type MenuRepository interface {
	ListCategories(ctx context.Context) ([]*model.Category, error)
	ListProducts(ctx context.Context) ([]*model.Product, error)
	FindProductByID(ctx context.Context, id int64) (*model.Product, error)
	FindProductsByIDs(ctx context.Context, ids []int64) ([]*model.Product, error)
	// CreateProduct inserts the product, upserting its ingredients by name
	CreateProduct(ctx context.Context, product *model.Product, ingredientNames []string) error
	SetAvailability(ctx context.Context, id int64, available bool) error
}
