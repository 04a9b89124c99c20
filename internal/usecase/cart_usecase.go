package usecase

import (
	"context"
	"errors"
	"fmt"

	repo "mealdash/internal/repository"
)

// CartUsecase owns the /cart business logic. Lines are keyed by meal: at
// most one line per (user, meal), enforced by the merge-increment upsert.
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	mealRepo     repo.MealRepository

	// per-line quantity ceiling; adds beyond it are clamped
	maxQtyPerLine int64
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	mealRepo repo.MealRepository,
	maxQtyPerLine int64,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:      cartRepo,
		cartItemRepo:  cartItemRepo,
		mealRepo:      mealRepo,
		maxQtyPerLine: maxQtyPerLine,
	}
}

// Priced at the current catalog price; nothing here is persisted.
type CartItemResponse struct {
	MealID   int64  `json:"meal_id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
	Subtotal int64  `json:"subtotal"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total int64              `json:"total"`
}

type AddCartInput struct {
	MealID   int64
	Quantity int64
}

// GetCart returns the cart, creating an empty ACTIVE one when absent.
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, ErrUnauthorized
	}

	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// AddToCart merges into an existing line for the same meal.
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, ErrUnauthorized
	}
	if in.MealID <= 0 {
		return CartResponse{}, fmt.Errorf("%w: invalid meal_id", ErrValidation)
	}
	if in.Quantity < 1 {
		return CartResponse{}, fmt.Errorf("%w: invalid quantity", ErrValidation)
	}

	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	m, err := u.mealRepo.FindByID(ctx, in.MealID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, repo.ErrNotFound
	}
	if err != nil {
		return CartResponse{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !m.IsAvailable {
		return CartResponse{}, fmt.Errorf("%w: meal unavailable", ErrValidation)
	}

	var existingQty int64
	existing, err := u.cartItemRepo.FindByCartAndMeal(ctx, cart.ID, in.MealID)
	if err == nil {
		existingQty = existing.Quantity
	} else if !errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// clamp instead of reject: the line never exceeds the ceiling
	addQty := in.Quantity
	if existingQty+addQty > u.maxQtyPerLine {
		addQty = u.maxQtyPerLine - existingQty
	}
	if addQty > 0 {
		if err := u.cartItemRepo.UpsertByCartAndMeal(ctx, cart.ID, in.MealID, addQty); err != nil {
			return CartResponse{}, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// UpdateItem sets the quantity directly. Zero removes the line; a missing
// line is an error here, unlike RemoveItem.
func (u *CartUsecase) UpdateItem(ctx context.Context, userID int64, mealID int64, qty int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, ErrUnauthorized
	}
	if mealID <= 0 {
		return CartResponse{}, fmt.Errorf("%w: invalid meal_id", ErrValidation)
	}
	if qty < 0 || qty > u.maxQtyPerLine {
		return CartResponse{}, fmt.Errorf("%w: invalid quantity", ErrValidation)
	}

	cart, err := u.cartRepo.FindActiveByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, repo.ErrNotFound
	}
	if err != nil {
		return CartResponse{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	item, err := u.cartItemRepo.FindByCartAndMeal(ctx, cart.ID, mealID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, repo.ErrNotFound
	}
	if err != nil {
		return CartResponse{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if qty == 0 {
		if err := u.cartItemRepo.DeleteByCartAndMeal(ctx, cart.ID, mealID); err != nil {
			return CartResponse{}, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return u.buildCartResponse(ctx, cart.ID)
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, item.ID, qty); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, repo.ErrNotFound
		}
		return CartResponse{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// RemoveItem is idempotent: removing an absent line is a no-op.
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, mealID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, ErrUnauthorized
	}
	if mealID <= 0 {
		return CartResponse{}, fmt.Errorf("%w: invalid meal_id", ErrValidation)
	}

	cart, err := u.cartRepo.FindActiveByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		// nothing to remove from
		return CartResponse{Items: []CartItemResponse{}}, nil
	}
	if err != nil {
		return CartResponse{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := u.cartItemRepo.DeleteByCartAndMeal(ctx, cart.ID, mealID); err != nil {
		return CartResponse{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// Total projects the cart value at current catalog prices.
func (u *CartUsecase) Total(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, ErrUnauthorized
	}

	cart, err := u.cartRepo.FindActiveByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resp, err := u.buildCartResponse(ctx, cart.ID)
	if err != nil {
		return 0, err
	}
	return resp.Total, nil
}

// Count backs the JSON cart-count endpoint.
func (u *CartUsecase) Count(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, ErrUnauthorized
	}

	cart, err := u.cartRepo.FindActiveByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	count, err := u.cartItemRepo.SumQuantityByCartID(ctx, cart.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return count, nil
}

func (u *CartUsecase) buildCartResponse(ctx context.Context, cartID int64) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	respItems := make([]CartItemResponse, 0, len(items))
	var total int64

	for _, it := range items {
		m, err := u.mealRepo.FindByID(ctx, it.MealID)
		if errors.Is(err, repo.ErrNotFound) {
			// delisted since it was added
			continue
		}
		if err != nil {
			return CartResponse{}, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if !m.IsAvailable {
			continue
		}

		subtotal := m.Price * it.Quantity
		respItems = append(respItems, CartItemResponse{
			MealID:   it.MealID,
			Name:     m.Name,
			Price:    m.Price,
			Quantity: it.Quantity,
			Subtotal: subtotal,
		})

		total += subtotal
	}

	return CartResponse{Items: respItems, Total: total}, nil
}
