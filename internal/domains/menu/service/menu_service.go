package service

import (
	"context"
	"time"

	"kiosk-backend/internal/domains/menu/model"
	"kiosk-backend/internal/domains/menu/repository"
	"kiosk-backend/pkg/cache"
	"kiosk-backend/pkg/logger"
)

const (
	menuCacheKey = "menu:full"
	menuCacheTTL = 10 * time.Minute
)

// MenuService serves the catalog and manages products
type MenuService interface {
	GetMenu(ctx context.Context) ([]*model.MenuCategory, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)
	SetAvailability(ctx context.Context, id int64, available bool) error
}

type menuService struct {
	repo  repository.MenuRepository
	cache cache.Cache
}

// NewMenuService creates a menu service
func NewMenuService(repo repository.MenuRepository, cache cache.Cache) MenuService {
	return &menuService{repo: repo, cache: cache}
}

// GetMenu returns the full catalog grouped by category. The assembled
// menu is cached; kiosks poll this endpoint constantly.
func (s *menuService) GetMenu(ctx context.Context) ([]*model.MenuCategory, error) {
	var cached []*model.MenuCategory
	if found, err := s.cache.Get(ctx, menuCacheKey, &cached); err == nil && found {
		return cached, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[int64][]*model.Product)
	for _, p := range products {
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
	}

	menu := make([]*model.MenuCategory, 0, len(categories))
	for _, c := range categories {
		entry := &model.MenuCategory{Category: *c, Products: byCategory[c.ID]}
		if entry.Products == nil {
			entry.Products = []*model.Product{}
		}
		menu = append(menu, entry)
	}

	if err := s.cache.Set(ctx, menuCacheKey, menu, menuCacheTTL); err != nil {
		logger.Debug("menu cache write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return menu, nil
}

func (s *menuService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return s.repo.FindProductByID(ctx, id)
}

// CreateProduct adds a product to the catalog.
//
// Business Logic Flow:
// 1. Validate the request fields
// 2. Insert the product and its ingredient links
// 3. Drop the cached menu so kiosks pick it up
func (s *menuService) CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product := &model.Product{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Available:   true,
		Nutrition:   req.Nutrition,
		Ingredients: []model.Ingredient{},
	}

	if err := s.repo.CreateProduct(ctx, product, req.Ingredients); err != nil {
		return nil, err
	}

	s.invalidateMenu(ctx)

	logger.Info("product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
		"price":      product.Price.String(),
	})

	return product, nil
}

func (s *menuService) SetAvailability(ctx context.Context, id int64, available bool) error {
	if err := s.repo.SetAvailability(ctx, id, available); err != nil {
		return err
	}

	s.invalidateMenu(ctx)
	return nil
}

func (s *menuService) invalidateMenu(ctx context.Context) {
	if err := s.cache.Delete(ctx, menuCacheKey); err != nil {
		logger.Debug("menu cache invalidation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
