package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ordermodel "kiosk-backend/internal/domains/order/model"
	orderrepo "kiosk-backend/internal/domains/order/repository"
	"kiosk-backend/internal/domains/payment/model"
	"kiosk-backend/internal/domains/payment/repository"
	promomodel "kiosk-backend/internal/domains/promo/model"
	promorepo "kiosk-backend/internal/domains/promo/repository"
	"kiosk-backend/pkg/logger"
)

// BalanceReader reads a customer's current loyalty balance
type BalanceReader interface {
	GetBalance(ctx context.Context, userEmail string) (int64, error)
}

// OutboxNotifier nudges the worker to drain the outbox right away
// instead of waiting for the scheduled sweep
type OutboxNotifier interface {
	NotifyOutbox(ctx context.Context) error
}

// PaymentService settles orders
type PaymentService interface {
	Charge(ctx context.Context, req *model.ChargeRequest, userEmail *string) (*model.ChargeResponse, error)
	GetByOrderID(ctx context.Context, orderID int64) (*model.Payment, error)
}

type paymentService struct {
	repo       repository.PaymentRepository
	orderRepo  orderrepo.OrderRepository
	promoRepo  promorepo.PromoRepository
	balances   BalanceReader
	notifier   OutboxNotifier
	reconciler *PricingReconciler
	now        func() time.Time
}

// NewPaymentService creates a payment service
func NewPaymentService(
	repo repository.PaymentRepository,
	orderRepo orderrepo.OrderRepository,
	promoRepo promorepo.PromoRepository,
	balances BalanceReader,
	notifier OutboxNotifier,
	reconciler *PricingReconciler,
) PaymentService {
	return &paymentService{
		repo:       repo,
		orderRepo:  orderRepo,
		promoRepo:  promoRepo,
		balances:   balances,
		notifier:   notifier,
		reconciler: reconciler,
		now:        time.Now,
	}
}

// Charge settles an order.
//
// Business Logic Flow:
// 1. Validate the request fields
// 2. Reject a second payment for the same order before anything else
// 3. Load the order
// 4. Resolve the promo code and the customer's point balance
// 5. Reconcile the discount breakdown
// 6. Record the payment, consume the promo and stage the loyalty
//    events in one transaction
// 7. Mark the order completed and nudge the outbox dispatcher
//
// The loyalty side effects themselves happen asynchronously in the
// worker; the transaction only guarantees they will.
func (s *paymentService) Charge(ctx context.Context, req *model.ChargeRequest, userEmail *string) (*model.ChargeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByOrderID(ctx, req.OrderID); err == nil {
		return nil, model.ErrDuplicatePayment
	} else if !errors.Is(err, model.ErrPaymentNotFound) {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, ordermodel.ErrOrderNotFound) {
			return nil, model.ErrOrderNotFound
		}
		return nil, err
	}

	promoValue, promoCode, err := s.resolvePromo(ctx, req.PromoCode)
	if err != nil {
		return nil, err
	}

	if req.PointsToRedeem > 0 {
		if userEmail == nil {
			return nil, model.ErrAuthRequired
		}
		balance, err := s.balances.GetBalance(ctx, *userEmail)
		if err != nil {
			return nil, err
		}
		if balance < req.PointsToRedeem {
			return nil, model.ErrInsufficientPoints
		}
	}

	quote := s.reconciler.Reconcile(order.TotalAmount, promoValue, req.PointsToRedeem)

	payment := &model.Payment{
		ID:             uuid.New(),
		OrderID:        order.ID,
		Amount:         quote.Amount,
		PromoCode:      promoCode,
		PromoDiscount:  quote.PromoDiscount,
		PointsDiscount: quote.PointsDiscount,
		FinalAmount:    quote.FinalAmount,
		Method:         req.Method,
		Status:         model.StatusCompleted,
		UserEmail:      userEmail,
	}
	if req.TransactionID != "" {
		payment.TransactionID = &req.TransactionID
	}

	events := s.buildEvents(payment, order, quote, userEmail)

	if err := s.repo.RecordPayment(ctx, payment, events); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.ID, ordermodel.StatusCompleted); err != nil {
		logger.Error("failed to mark order completed", map[string]interface{}{
			"order_id": order.ID,
			"error":    err.Error(),
		})
	}

	if len(events) > 0 {
		if err := s.notifier.NotifyOutbox(ctx); err != nil {
			// The scheduled sweep will pick the events up anyway
			logger.Error("failed to notify outbox dispatcher", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	logger.Info("payment recorded", map[string]interface{}{
		"payment_id":      payment.ID.String(),
		"order_id":        payment.OrderID,
		"method":          payment.Method,
		"amount":          payment.Amount.String(),
		"promo_discount":  payment.PromoDiscount.String(),
		"points_discount": payment.PointsDiscount.String(),
		"final_amount":    payment.FinalAmount.String(),
	})

	return &model.ChargeResponse{
		Payment:        payment,
		PointsRedeemed: quote.PointsRedeemed,
		PointsEarned:   pointsEarnedFor(userEmail, quote),
		AmountSaved:    quote.PromoDiscount.Add(quote.PointsDiscount),
	}, nil
}

func (s *paymentService) GetByOrderID(ctx context.Context, orderID int64) (*model.Payment, error) {
	return s.repo.FindByOrderID(ctx, orderID)
}

// resolvePromo returns the discount value for a code, or zero when no
// code was given. Unknown, expired and spent codes are all rejected the
// same way.
func (s *paymentService) resolvePromo(ctx context.Context, code string) (decimal.Decimal, *string, error) {
	if code == "" {
		return decimal.Zero, nil, nil
	}

	promo, err := s.promoRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, promomodel.ErrPromoNotFound) {
			return decimal.Zero, nil, model.ErrInvalidPromo
		}
		return decimal.Zero, nil, err
	}

	if !promo.IsValid(s.now()) {
		return decimal.Zero, nil, model.ErrInvalidPromo
	}

	return promo.Discount, &promo.Code, nil
}

// buildEvents stages the loyalty side effects: the redeem debit first,
// then the award credit, ordered by seq so the worker applies them in
// that order.
func (s *paymentService) buildEvents(payment *model.Payment, order *ordermodel.Order, quote Quote, userEmail *string) []*model.OutboxEvent {
	if userEmail == nil {
		return nil
	}

	items := make([]model.OutboxItem, 0, len(order.Items))
	for _, line := range order.Items {
		items = append(items, model.OutboxItem{Name: line.Name, Quantity: line.Quantity})
	}

	var events []*model.OutboxEvent
	seq := 1

	if quote.PointsRedeemed > 0 {
		events = append(events, &model.OutboxEvent{
			ID:        uuid.New(),
			PaymentID: payment.ID,
			Seq:       seq,
			EventType: model.EventRedeem,
			UserEmail: *userEmail,
			Points:    quote.PointsRedeemed,
			OrderID:   order.ID,
			Amount:    quote.FinalAmount,
		})
		seq++
	}

	if quote.PointsEarned > 0 {
		events = append(events, &model.OutboxEvent{
			ID:        uuid.New(),
			PaymentID: payment.ID,
			Seq:       seq,
			EventType: model.EventAward,
			UserEmail: *userEmail,
			Points:    quote.PointsEarned,
			OrderID:   order.ID,
			Amount:    quote.FinalAmount,
			Items:     items,
		})
	}

	return events
}

func pointsEarnedFor(userEmail *string, quote Quote) int64 {
	if userEmail == nil {
		return 0
	}
	return quote.PointsEarned
}
