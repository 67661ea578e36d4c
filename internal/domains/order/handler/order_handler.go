package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"kiosk-backend/internal/domains/order/model"
	"kiosk-backend/internal/domains/order/service"
	"kiosk-backend/internal/shared/identity"
	res "kiosk-backend/internal/shared/response"
)

// OrderHandler serves order capture and lookup endpoints
type OrderHandler struct {
	service service.OrderService
}

// NewOrderHandler creates an order handler
func NewOrderHandler(service service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// CreateOrder handles POST /api/v1/orders. Works for anonymous kiosks;
// an authenticated customer gets the order attached to their account.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		res.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request body")
		return
	}

	var userEmail *string
	if email, ok := identity.FromContext(c).Email(); ok {
		userEmail = &email
	}

	order, err := h.service.CreateOrder(c.Request.Context(), &req, userEmail)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			res.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", verrs)
			return
		}
		if errors.Is(err, model.ErrProductUnavailable) {
			res.Error(c, http.StatusBadRequest, "PRODUCT_UNAVAILABLE", "One or more products are unavailable")
			return
		}
		res.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create order")
		return
	}

	res.Success(c, http.StatusCreated, order)
}

// GetOrder handles GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		res.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid order id")
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			res.Error(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
			return
		}
		res.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load order")
		return
	}

	res.Success(c, http.StatusOK, order)
}

// ListOrders handles GET /api/v1/orders for the authenticated customer
func (h *OrderHandler) ListOrders(c *gin.Context) {
	email, ok := identity.FromContext(c).Email()
	if !ok {
		res.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	orders, err := h.service.ListOrders(c.Request.Context(), email)
	if err != nil {
		res.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list orders")
		return
	}

	if orders == nil {
		orders = []*model.Order{}
	}

	res.Success(c, http.StatusOK, orders)
}
