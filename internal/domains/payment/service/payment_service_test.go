package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordermodel "kiosk-backend/internal/domains/order/model"
	"kiosk-backend/internal/domains/payment/model"
	promomodel "kiosk-backend/internal/domains/promo/model"
)

// ===== Fakes =====

type fakePaymentRepo struct {
	existing  *model.Payment
	recorded  *model.Payment
	events    []*model.OutboxEvent
	recordErr error
}

func (f *fakePaymentRepo) RecordPayment(ctx context.Context, payment *model.Payment, events []*model.OutboxEvent) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.recorded = payment
	f.events = events
	return nil
}

func (f *fakePaymentRepo) FindByOrderID(ctx context.Context, orderID int64) (*model.Payment, error) {
	if f.existing != nil && f.existing.OrderID == orderID {
		return f.existing, nil
	}
	return nil, model.ErrPaymentNotFound
}

type fakeOrderRepo struct {
	order           *ordermodel.Order
	completedOrders []int64
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *ordermodel.Order) error { return nil }

func (f *fakeOrderRepo) FindByID(ctx context.Context, id int64) (*ordermodel.Order, error) {
	if f.order != nil && f.order.ID == id {
		return f.order, nil
	}
	return nil, ordermodel.ErrOrderNotFound
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userEmail string, limit int) ([]*ordermodel.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	f.completedOrders = append(f.completedOrders, id)
	return nil
}

type fakePromoRepo struct {
	promo *promomodel.PromoCode
}

func (f *fakePromoRepo) Create(ctx context.Context, promo *promomodel.PromoCode) error { return nil }

func (f *fakePromoRepo) FindByCode(ctx context.Context, code string) (*promomodel.PromoCode, error) {
	if f.promo != nil && f.promo.Code == code {
		return f.promo, nil
	}
	return nil, promomodel.ErrPromoNotFound
}

func (f *fakePromoRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type fakeBalances struct {
	balance int64
}

func (f *fakeBalances) GetBalance(ctx context.Context, userEmail string) (int64, error) {
	return f.balance, nil
}

type fakeNotifier struct {
	notified int
}

func (f *fakeNotifier) NotifyOutbox(ctx context.Context) error {
	f.notified++
	return nil
}

// ===== Helpers =====

type fixture struct {
	payments *fakePaymentRepo
	orders   *fakeOrderRepo
	promos   *fakePromoRepo
	balances *fakeBalances
	notifier *fakeNotifier
	service  PaymentService
}

func newFixture(order *ordermodel.Order) *fixture {
	f := &fixture{
		payments: &fakePaymentRepo{},
		orders:   &fakeOrderRepo{order: order},
		promos:   &fakePromoRepo{},
		balances: &fakeBalances{},
		notifier: &fakeNotifier{},
	}
	f.service = NewPaymentService(
		f.payments, f.orders, f.promos, f.balances, f.notifier,
		NewPricingReconciler(100, decimal.NewFromInt(10)),
	)
	return f
}

func testOrder() *ordermodel.Order {
	return &ordermodel.Order{
		ID:          42,
		Status:      ordermodel.StatusPending,
		TotalAmount: decimal.NewFromInt(100),
		Items: []ordermodel.OrderItem{
			{ProductID: 1, Name: "Burger", UnitPrice: decimal.NewFromInt(40), Quantity: 2},
			{ProductID: 2, Name: "Fries", UnitPrice: decimal.NewFromInt(20), Quantity: 1},
		},
	}
}

func email(s string) *string { return &s }

// ===== Tests =====

func TestCharge_OrderNotFound(t *testing.T) {
	f := newFixture(nil)

	_, err := f.service.Charge(context.Background(), &model.ChargeRequest{
		OrderID: 42,
		Method:  model.MethodCash,
	}, nil)

	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestCharge_DuplicatePayment(t *testing.T) {
	f := newFixture(testOrder())
	f.payments.existing = &model.Payment{OrderID: 42}

	_, err := f.service.Charge(context.Background(), &model.ChargeRequest{
		OrderID: 42,
		Method:  model.MethodCash,
	}, nil)

	assert.ErrorIs(t, err, model.ErrDuplicatePayment)
}

func TestCharge_UnknownPromo(t *testing.T) {
	f := newFixture(testOrder())

	_, err := f.service.Charge(context.Background(), &model.ChargeRequest{
		OrderID:   42,
		Method:    model.MethodCash,
		PromoCode: "NOPE",
	}, nil)

	assert.ErrorIs(t, err, model.ErrInvalidPromo)
}

func TestCharge_ExpiredPromo(t *testing.T) {
	f := newFixture(testOrder())
	f.promos.promo = &promomodel.PromoCode{
		ID:         uuid.New(),
		Code:       "OLD10",
		Discount:   decimal.NewFromInt(10),
		MaxUses:    100,
		ValidUntil: time.Now().Add(-time.Hour),
	}

	_, err := f.service.Charge(context.Background(), &model.ChargeRequest{
		OrderID:   42,
		Method:    model.MethodCash,
		PromoCode: "OLD10",
	}, nil)

	assert.ErrorIs(t, err, model.ErrInvalidPromo)
}

func TestCharge_SpentPromo(t *testing.T) {
	f := newFixture(testOrder())
	f.promos.promo = &promomodel.PromoCode{
		ID:         uuid.New(),
		Code:       "SPENT",
		Discount:   decimal.NewFromInt(10),
		Uses:       5,
		MaxUses:    5,
		ValidUntil: time.Now().Add(time.Hour),
	}

	_, err := f.service.Charge(context.Background(), &model.ChargeRequest{
		OrderID:   42,
		Method:    model.MethodCash,
		PromoCode: "SPENT",
	}, nil)

	assert.ErrorIs(t, err, model.ErrInvalidPromo)
}

func TestCharge_PointsWithoutAuth(t *testing.T) {
	f := newFixture(testOrder())

	_, err := f.service.Charge(context.Background(), &model.ChargeRequest{
		OrderID:        42,
		Method:         model.MethodCash,
		PointsToRedeem: 200,
	}, nil)

	assert.ErrorIs(t, err, model.ErrAuthRequired)
}

func TestCharge_InsufficientPoints(t *testing.T) {
	f := newFixture(testOrder())
	f.balances.balance = 150

	_, err := f.service.Charge(context.Background(), &model.ChargeRequest{
		OrderID:        42,
		Method:         model.MethodCash,
		PointsToRedeem: 200,
	}, email("a@b.pl"))

	assert.ErrorIs(t, err, model.ErrInsufficientPoints)
}

func TestCharge_CardWithoutTransactionID(t *testing.T) {
	f := newFixture(testOrder())

	_, err := f.service.Charge(context.Background(), &model.ChargeRequest{
		OrderID: 42,
		Method:  model.MethodCard,
	}, nil)

	var verrs validation.Errors
	assert.ErrorAs(t, err, &verrs)
}

func TestCharge_AnonymousCash(t *testing.T) {
	f := newFixture(testOrder())

	result, err := f.service.Charge(context.Background(), &model.ChargeRequest{
		OrderID: 42,
		Method:  model.MethodCash,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, model.StatusCompleted, result.Payment.Status)
	assert.Nil(t, result.Payment.TransactionID)
	assert.Nil(t, result.Payment.PromoCode)
	assert.True(t, result.Payment.FinalAmount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, int64(0), result.PointsEarned, "anonymous payments earn nothing")
	assert.Empty(t, f.payments.events)
	assert.Equal(t, 0, f.notifier.notified)
	assert.Equal(t, []int64{42}, f.orders.completedOrders)
}

func TestCharge_AuthenticatedCardWithPromoAndPoints(t *testing.T) {
	f := newFixture(testOrder())
	f.balances.balance = 500
	f.promos.promo = &promomodel.PromoCode{
		ID:         uuid.New(),
		Code:       "SAVE30",
		Discount:   decimal.NewFromInt(30),
		MaxUses:    100,
		ValidUntil: time.Now().Add(time.Hour),
	}

	result, err := f.service.Charge(context.Background(), &model.ChargeRequest{
		OrderID:        42,
		Method:         model.MethodCard,
		PromoCode:      "SAVE30",
		PointsToRedeem: 200,
		TransactionID:  "txn-777",
	}, email("a@b.pl"))
	require.NoError(t, err)

	payment := result.Payment
	assert.True(t, payment.PromoDiscount.Equal(decimal.NewFromInt(30)))
	assert.True(t, payment.PointsDiscount.Equal(decimal.NewFromInt(20)))
	assert.True(t, payment.FinalAmount.Equal(decimal.NewFromInt(50)))
	require.NotNil(t, payment.TransactionID)
	assert.Equal(t, "txn-777", *payment.TransactionID)

	require.NotNil(t, payment.PromoCode, "recorded payment keeps the code it consumed")
	assert.Equal(t, "SAVE30", *payment.PromoCode)

	require.Len(t, f.payments.events, 2)
	redeem, award := f.payments.events[0], f.payments.events[1]

	assert.Equal(t, model.EventRedeem, redeem.EventType)
	assert.Equal(t, 1, redeem.Seq)
	assert.Equal(t, int64(200), redeem.Points)

	assert.Equal(t, model.EventAward, award.EventType)
	assert.Equal(t, 2, award.Seq)
	assert.Equal(t, int64(50), award.Points)
	assert.Len(t, award.Items, 2)

	assert.Equal(t, 1, f.notifier.notified)
	assert.True(t, result.AmountSaved.Equal(decimal.NewFromInt(50)))
}

func TestCharge_RepoDuplicateSurfaces(t *testing.T) {
	f := newFixture(testOrder())
	f.payments.recordErr = model.ErrDuplicatePayment

	_, err := f.service.Charge(context.Background(), &model.ChargeRequest{
		OrderID: 42,
		Method:  model.MethodCash,
	}, nil)

	assert.ErrorIs(t, err, model.ErrDuplicatePayment)
}

func TestCharge_RecordFailureLeavesOrderPending(t *testing.T) {
	f := newFixture(testOrder())
	f.payments.recordErr = errors.New("connection reset")

	_, err := f.service.Charge(context.Background(), &model.ChargeRequest{
		OrderID: 42,
		Method:  model.MethodCash,
	}, nil)

	require.Error(t, err)
	assert.Empty(t, f.orders.completedOrders)
	assert.Equal(t, 0, f.notifier.notified)
}

func TestGetByOrderID_NoPayment(t *testing.T) {
	f := newFixture(testOrder())

	_, err := f.service.GetByOrderID(context.Background(), 42)

	assert.ErrorIs(t, err, model.ErrPaymentNotFound)
}
