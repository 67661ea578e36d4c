package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	menumodel "kiosk-backend/internal/domains/menu/model"
	"kiosk-backend/internal/domains/order/model"
)

// ===== Fakes =====

type fakeOrderRepo struct {
	created *model.Order
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *model.Order) error {
	order.ID = 1
	f.created = order
	return nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	return nil, model.ErrOrderNotFound
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userEmail string, limit int) ([]*model.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return nil
}

type fakeMenuRepo struct {
	products map[int64]*menumodel.Product
}

func (f *fakeMenuRepo) ListCategories(ctx context.Context) ([]*menumodel.Category, error) {
	return nil, nil
}

func (f *fakeMenuRepo) ListProducts(ctx context.Context) ([]*menumodel.Product, error) {
	return nil, nil
}

func (f *fakeMenuRepo) FindProductByID(ctx context.Context, id int64) (*menumodel.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, menumodel.ErrProductNotFound
}

func (f *fakeMenuRepo) FindProductsByIDs(ctx context.Context, ids []int64) ([]*menumodel.Product, error) {
	var out []*menumodel.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeMenuRepo) CreateProduct(ctx context.Context, product *menumodel.Product, ingredientNames []string) error {
	return nil
}

func (f *fakeMenuRepo) SetAvailability(ctx context.Context, id int64, available bool) error {
	return nil
}

// ===== Tests =====

func testCatalog() *fakeMenuRepo {
	return &fakeMenuRepo{products: map[int64]*menumodel.Product{
		1: {ID: 1, Name: "Burger", Price: decimal.RequireFromString("25.50"), Available: true},
		2: {ID: 2, Name: "Fries", Price: decimal.RequireFromString("9.99"), Available: true},
		3: {ID: 3, Name: "Shake", Price: decimal.RequireFromString("12.00"), Available: false},
	}}
}

func TestCreateOrder_PricesFromCatalog(t *testing.T) {
	orders := &fakeOrderRepo{}
	svc := NewOrderService(orders, testCatalog())

	order, err := svc.CreateOrder(context.Background(), &model.CreateOrderRequest{
		Items: []model.OrderItemRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
		DeliveryOption: model.DeliveryPickup,
	}, nil)
	require.NoError(t, err)

	// 2 * 25.50 + 9.99
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("60.99")))
	assert.Equal(t, model.StatusPending, order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Burger", order.Items[0].Name)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("25.50")))
}

func TestCreateOrder_UnavailableProduct(t *testing.T) {
	svc := NewOrderService(&fakeOrderRepo{}, testCatalog())

	_, err := svc.CreateOrder(context.Background(), &model.CreateOrderRequest{
		Items:          []model.OrderItemRequest{{ProductID: 3, Quantity: 1}},
		DeliveryOption: model.DeliveryPickup,
	}, nil)

	assert.ErrorIs(t, err, model.ErrProductUnavailable)
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	svc := NewOrderService(&fakeOrderRepo{}, testCatalog())

	_, err := svc.CreateOrder(context.Background(), &model.CreateOrderRequest{
		Items:          []model.OrderItemRequest{{ProductID: 99, Quantity: 1}},
		DeliveryOption: model.DeliveryPickup,
	}, nil)

	assert.ErrorIs(t, err, model.ErrProductUnavailable)
}

func TestCreateOrder_AttachesUserEmail(t *testing.T) {
	orders := &fakeOrderRepo{}
	svc := NewOrderService(orders, testCatalog())
	userEmail := "a@b.pl"

	order, err := svc.CreateOrder(context.Background(), &model.CreateOrderRequest{
		Items:          []model.OrderItemRequest{{ProductID: 1, Quantity: 1}},
		DeliveryOption: model.DeliveryPickup,
	}, &userEmail)
	require.NoError(t, err)

	require.NotNil(t, order.UserEmail)
	assert.Equal(t, "a@b.pl", *order.UserEmail)
}

func TestCreateOrder_InvalidRequestNeverPersists(t *testing.T) {
	orders := &fakeOrderRepo{}
	svc := NewOrderService(orders, testCatalog())

	_, err := svc.CreateOrder(context.Background(), &model.CreateOrderRequest{
		Items:          []model.OrderItemRequest{{ProductID: 1, Quantity: 1}},
		DeliveryOption: model.DeliveryOnSite, // missing table number
	}, nil)

	require.Error(t, err)
	assert.Nil(t, orders.created)
}
