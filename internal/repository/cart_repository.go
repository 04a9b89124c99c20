package repository

import (
	"context"

	"mealdash/internal/domain/model"
)

type CartRepository interface {
	GetOrCreateActiveByUserID(ctx context.Context, userID int64) (model.Cart, error)
	FindActiveByUserID(ctx context.Context, userID int64) (model.Cart, error)

	// Flips ACTIVE -> CHECKED_OUT and reports whether this call won the flip.
	// false means another transaction already checked the cart out.
	MarkCheckedOut(ctx context.Context, cartID int64) (bool, error)

	// removes all items of the cart
	Clear(ctx context.Context, cartID int64) error
}
