package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	menumodel "kiosk-backend/internal/domains/menu/model"
	menurepo "kiosk-backend/internal/domains/menu/repository"
	"kiosk-backend/internal/domains/order/model"
	"kiosk-backend/internal/domains/order/repository"
	"kiosk-backend/pkg/logger"
)

const listLimit = 20

// OrderService captures and serves kiosk orders
type OrderService interface {
	CreateOrder(ctx context.Context, req *model.CreateOrderRequest, userEmail *string) (*model.Order, error)
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	ListOrders(ctx context.Context, userEmail string) ([]*model.Order, error)
	CompleteOrder(ctx context.Context, id int64) error
}

type orderService struct {
	repo     repository.OrderRepository
	menuRepo menurepo.MenuRepository
}

// NewOrderService creates an order service
func NewOrderService(repo repository.OrderRepository, menuRepo menurepo.MenuRepository) OrderService {
	return &orderService{repo: repo, menuRepo: menuRepo}
}

// CreateOrder captures a new order.
//
// Business Logic Flow:
// 1. Validate the request, including the delivery-option rules
// 2. Load the ordered products and reject unavailable ones
// 3. Price each line from the catalog, never from the client
// 4. Persist the order with its items in one transaction
func (s *orderService) CreateOrder(ctx context.Context, req *model.CreateOrderRequest, userEmail *string) (*model.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.menuRepo.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*menumodel.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	total := decimal.Zero
	items := make([]model.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		product, ok := byID[line.ProductID]
		if !ok || !product.Available {
			return nil, fmt.Errorf("product %d: %w", line.ProductID, model.ErrProductUnavailable)
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  line.Quantity,
		})
	}

	order := &model.Order{
		UserEmail:      userEmail,
		Status:         model.StatusPending,
		TotalAmount:    total,
		DeliveryOption: req.DeliveryOption,
		TableNumber:    req.TableNumber,
		Items:          items,
	}
	if req.DeliveryAddress != nil {
		formatted := fmt.Sprintf("%s, %s %s",
			req.DeliveryAddress.Street, req.DeliveryAddress.PostalCode, req.DeliveryAddress.City)
		order.DeliveryAddress = &formatted
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	logger.Info("order created", map[string]interface{}{
		"order_id":        order.ID,
		"total_amount":    order.TotalAmount.String(),
		"delivery_option": order.DeliveryOption,
		"items":           len(order.Items),
	})

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *orderService) ListOrders(ctx context.Context, userEmail string) ([]*model.Order, error) {
	return s.repo.ListByUser(ctx, userEmail, listLimit)
}

// CompleteOrder marks an order paid. Called by the payment flow after
// a successful charge.
func (s *orderService) CompleteOrder(ctx context.Context, id int64) error {
	return s.repo.UpdateStatus(ctx, id, model.StatusCompleted)
}
