package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"kiosk-backend/internal/domains/promo/model"
	"kiosk-backend/internal/domains/promo/service"
	res "kiosk-backend/internal/shared/response"
)

// PromoHandler serves promo code endpoints
type PromoHandler struct {
	service service.PromoService
}

// NewPromoHandler creates a promo handler
func NewPromoHandler(service service.PromoService) *PromoHandler {
	return &PromoHandler{service: service}
}

// CreatePromo handles POST /api/v1/promos (staff only)
func (h *PromoHandler) CreatePromo(c *gin.Context) {
	var req model.CreatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		res.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request body")
		return
	}

	promo, err := h.service.CreatePromo(c.Request.Context(), &req)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			res.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", verrs)
			return
		}
		if errors.Is(err, model.ErrPromoExists) {
			res.Error(c, http.StatusConflict, "PROMO_EXISTS", "Promo code already exists")
			return
		}
		res.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create promo code")
		return
	}

	res.Success(c, http.StatusCreated, promo)
}

// CheckPromo handles GET /api/v1/promos/:code with an optional
// ?amount= to preview the discount against a concrete order total
func (h *PromoHandler) CheckPromo(c *gin.Context) {
	code := c.Param("code")

	var amount *decimal.Decimal
	if raw := c.Query("amount"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil || parsed.Sign() < 0 {
			res.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid amount")
			return
		}
		amount = &parsed
	}

	status, err := h.service.CheckPromo(c.Request.Context(), code, amount)
	if err != nil {
		res.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check promo code")
		return
	}

	res.Success(c, http.StatusOK, status)
}
