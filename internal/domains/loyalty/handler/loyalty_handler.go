package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kiosk-backend/internal/domains/loyalty/model"
	"kiosk-backend/internal/domains/loyalty/service"
	"kiosk-backend/internal/shared/identity"
	res "kiosk-backend/internal/shared/response"
)

// LoyaltyHandler serves the customer-facing loyalty endpoints
type LoyaltyHandler struct {
	service service.LoyaltyService
}

// NewLoyaltyHandler creates a loyalty handler
func NewLoyaltyHandler(service service.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{service: service}
}

// GetBalance handles GET /api/v1/loyalty/balance
func (h *LoyaltyHandler) GetBalance(c *gin.Context) {
	email, ok := identity.FromContext(c).Email()
	if !ok {
		res.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	points, err := h.service.GetBalance(c.Request.Context(), email)
	if err != nil {
		res.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get balance")
		return
	}

	res.Success(c, http.StatusOK, gin.H{"points": points})
}

// GetHistory handles GET /api/v1/loyalty/history
func (h *LoyaltyHandler) GetHistory(c *gin.Context) {
	email, ok := identity.FromContext(c).Email()
	if !ok {
		res.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	entries, err := h.service.GetHistory(c.Request.Context(), email)
	if err != nil {
		res.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get history")
		return
	}

	if entries == nil {
		entries = []*model.HistoryEntry{}
	}

	res.Success(c, http.StatusOK, entries)
}

// GetTopProducts handles GET /api/v1/loyalty/top-products
func (h *LoyaltyHandler) GetTopProducts(c *gin.Context) {
	email, ok := identity.FromContext(c).Email()
	if !ok {
		res.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	products, err := h.service.GetTopProducts(c.Request.Context(), email)
	if err != nil {
		res.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get top products")
		return
	}

	if products == nil {
		products = []*model.ProductCount{}
	}

	res.Success(c, http.StatusOK, products)
}
