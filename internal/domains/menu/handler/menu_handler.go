package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"kiosk-backend/internal/domains/menu/model"
	"kiosk-backend/internal/domains/menu/service"
	res "kiosk-backend/internal/shared/response"
)

// MenuHandler serves the catalog endpoints
type MenuHandler struct {
	service service.MenuService
}

// NewMenuHandler creates a menu handler
func NewMenuHandler(service service.MenuService) *MenuHandler {
	return &MenuHandler{service: service}
}

// GetMenu handles GET /api/v1/menu
func (h *MenuHandler) GetMenu(c *gin.Context) {
	menu, err := h.service.GetMenu(c.Request.Context())
	if err != nil {
		res.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load menu")
		return
	}

	res.Success(c, http.StatusOK, menu)
}

// GetProduct handles GET /api/v1/menu/products/:id
func (h *MenuHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		res.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid product id")
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			res.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		res.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load product")
		return
	}

	res.Success(c, http.StatusOK, product)
}

// CreateProduct handles POST /api/v1/menu/products (staff only)
func (h *MenuHandler) CreateProduct(c *gin.Context) {
	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		res.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request body")
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			res.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", verrs)
			return
		}
		if errors.Is(err, model.ErrCategoryNotFound) {
			res.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "Category does not exist")
			return
		}
		res.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create product")
		return
	}

	res.Success(c, http.StatusCreated, product)
}

// SetAvailability handles PATCH /api/v1/menu/products/:id/availability (staff only)
func (h *MenuHandler) SetAvailability(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		res.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid product id")
		return
	}

	var req model.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		res.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request body")
		return
	}

	if err := h.service.SetAvailability(c.Request.Context(), id, req.Available); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			res.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		res.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update availability")
		return
	}

	res.Success(c, http.StatusOK, gin.H{"id": id, "available": req.Available})
}
