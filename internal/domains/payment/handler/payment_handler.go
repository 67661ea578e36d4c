package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"kiosk-backend/internal/domains/payment/model"
	"kiosk-backend/internal/domains/payment/service"
	"kiosk-backend/internal/shared/identity"
	res "kiosk-backend/internal/shared/response"
)

// PaymentHandler serves the settlement endpoints
type PaymentHandler struct {
	service service.PaymentService
}

// NewPaymentHandler creates a payment handler
func NewPaymentHandler(service service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// Charge handles POST /api/v1/payments. Anonymous kiosks can pay, but
// promo points redemption and loyalty accrual need an authenticated
// customer.
func (h *PaymentHandler) Charge(c *gin.Context) {
	var req model.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		res.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request body")
		return
	}

	var userEmail *string
	if email, ok := identity.FromContext(c).Email(); ok {
		userEmail = &email
	}

	result, err := h.service.Charge(c.Request.Context(), &req, userEmail)
	if err != nil {
		h.writeChargeError(c, err)
		return
	}

	res.Success(c, http.StatusCreated, result)
}

// GetByOrder handles GET /api/v1/payments/:orderID
func (h *PaymentHandler) GetByOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("orderID"), 10, 64)
	if err != nil {
		res.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid order id")
		return
	}

	payment, err := h.service.GetByOrderID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, model.ErrPaymentNotFound) {
			res.Error(c, http.StatusNotFound, "PAYMENT_NOT_FOUND", "No payment for that order")
			return
		}
		res.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load payment")
		return
	}

	res.Success(c, http.StatusOK, payment)
}

func (h *PaymentHandler) writeChargeError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		res.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", verrs)
		return
	}

	switch {
	case errors.Is(err, model.ErrOrderNotFound):
		res.Error(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
	case errors.Is(err, model.ErrDuplicatePayment):
		res.Error(c, http.StatusConflict, "DUPLICATE_PAYMENT", "Order is already paid")
	case errors.Is(err, model.ErrInvalidPromo):
		res.Error(c, http.StatusBadRequest, "INVALID_PROMO", "Promo code is invalid or expired")
	case errors.Is(err, model.ErrInsufficientPoints):
		res.Error(c, http.StatusBadRequest, "INSUFFICIENT_POINTS", "Not enough loyalty points")
	case errors.Is(err, model.ErrAuthRequired):
		res.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Log in to redeem points")
	default:
		res.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process payment")
	}
}
