package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"kiosk-backend/internal/domains/user/model"
	"kiosk-backend/internal/domains/user/service"
	"kiosk-backend/internal/shared/identity"
	res "kiosk-backend/internal/shared/response"
)

// UserHandler serves registration and login
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a user handler
func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register handles POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		res.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request body")
		return
	}

	auth, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			res.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", verrs)
			return
		}
		if errors.Is(err, model.ErrEmailTaken) {
			res.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email already registered")
			return
		}
		res.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register")
		return
	}

	res.Success(c, http.StatusCreated, auth)
}

// Login handles POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		res.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request body")
		return
	}

	auth, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			res.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", verrs)
			return
		}
		if errors.Is(err, model.ErrInvalidCredentials) {
			res.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password")
			return
		}
		res.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to log in")
		return
	}

	res.Success(c, http.StatusOK, auth)
}

// Verify handles GET /api/v1/auth/verify, returning the account behind
// the presented token. Requires auth middleware.
func (h *UserHandler) Verify(c *gin.Context) {
	userID, ok := identity.FromContext(c).UserID()
	if !ok {
		res.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			res.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Account no longer exists")
			return
		}
		res.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to verify")
		return
	}

	res.Success(c, http.StatusOK, user)
}
