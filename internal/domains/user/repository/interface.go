package repository

import (
	"context"

	"kiosk-backend/internal/domains/user/model"
)

// UserRepository persists accounts
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}
