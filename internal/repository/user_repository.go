package repository

import (
	"context"

	"mealdash/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// nil, nil when absent
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}
