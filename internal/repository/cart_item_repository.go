package repository

import (
	"context"

	"mealdash/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	FindByCartAndMeal(ctx context.Context, cartID int64, mealID int64) (model.CartItem, error)

	// Merge-increment: an existing (cart, meal) row gains addQty.
	UpsertByCartAndMeal(ctx context.Context, cartID int64, mealID int64, addQty int64) error

	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error

	// No-op when the row does not exist.
	DeleteByCartAndMeal(ctx context.Context, cartID int64, mealID int64) error

	SumQuantityByCartID(ctx context.Context, cartID int64) (int64, error)
}
