package usecase_test

import (
	"context"
	"errors"
	"testing"

	"mealdash/internal/domain/model"
	repo "mealdash/internal/repository"
	"mealdash/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const maxQtyPerLine = 20

func newCartUsecase(carts *CartRepoMock, items *CartItemRepoMock, meals *MealRepoMock) *usecase.CartUsecase {
	return usecase.NewCartUsecase(carts, items, meals, maxQtyPerLine)
}

func TestCartUsecase_AddToCart_NewLine(t *testing.T) {
	ctx := context.Background()

	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	meals := new(MealRepoMock)

	carts.On("GetOrCreateActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5, UserID: 1, Status: model.CartStatusActive}, nil)
	meals.On("FindByID", mock.Anything, int64(7)).Return(model.Meal{ID: 7, Name: "Buddha Bowl", Price: 1490, IsAvailable: true}, nil)
	items.On("FindByCartAndMeal", mock.Anything, int64(5), int64(7)).Return(model.CartItem{}, repo.ErrNotFound)
	items.On("UpsertByCartAndMeal", mock.Anything, int64(5), int64(7), int64(2)).Return(nil)
	items.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{{CartID: 5, MealID: 7, Quantity: 2}}, nil)

	uc := newCartUsecase(carts, items, meals)

	out, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{MealID: 7, Quantity: 2})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, int64(2980), out.Total)

	items.AssertExpectations(t)
}

func TestCartUsecase_AddToCart_MergesIntoExistingLine(t *testing.T) {
	ctx := context.Background()

	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	meals := new(MealRepoMock)

	carts.On("GetOrCreateActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5}, nil)
	meals.On("FindByID", mock.Anything, int64(7)).Return(model.Meal{ID: 7, Name: "Buddha Bowl", Price: 1490, IsAvailable: true}, nil)
	items.On("FindByCartAndMeal", mock.Anything, int64(5), int64(7)).Return(model.CartItem{ID: 3, CartID: 5, MealID: 7, Quantity: 2}, nil)
	// still one line for the meal, quantity merged
	items.On("UpsertByCartAndMeal", mock.Anything, int64(5), int64(7), int64(3)).Return(nil)
	items.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{{CartID: 5, MealID: 7, Quantity: 5}}, nil)

	uc := newCartUsecase(carts, items, meals)

	out, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{MealID: 7, Quantity: 3})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, int64(5), out.Items[0].Quantity)

	items.AssertExpectations(t)
}

func TestCartUsecase_AddToCart_ClampsAtCeiling(t *testing.T) {
	ctx := context.Background()

	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	meals := new(MealRepoMock)

	carts.On("GetOrCreateActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5}, nil)
	meals.On("FindByID", mock.Anything, int64(7)).Return(model.Meal{ID: 7, Price: 1490, IsAvailable: true}, nil)
	items.On("FindByCartAndMeal", mock.Anything, int64(5), int64(7)).Return(model.CartItem{ID: 3, CartID: 5, MealID: 7, Quantity: 18}, nil)
	// 18 + 5 exceeds 20, only 2 get added
	items.On("UpsertByCartAndMeal", mock.Anything, int64(5), int64(7), int64(2)).Return(nil)
	items.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{{CartID: 5, MealID: 7, Quantity: 20}}, nil)

	uc := newCartUsecase(carts, items, meals)

	out, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{MealID: 7, Quantity: 5})
	assert.NoError(t, err)
	assert.Equal(t, int64(20), out.Items[0].Quantity)

	items.AssertExpectations(t)
}

func TestCartUsecase_AddToCart_AlreadyAtCeiling_NoUpsert(t *testing.T) {
	ctx := context.Background()

	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	meals := new(MealRepoMock)

	carts.On("GetOrCreateActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5}, nil)
	meals.On("FindByID", mock.Anything, int64(7)).Return(model.Meal{ID: 7, Price: 1490, IsAvailable: true}, nil)
	items.On("FindByCartAndMeal", mock.Anything, int64(5), int64(7)).Return(model.CartItem{ID: 3, CartID: 5, MealID: 7, Quantity: 20}, nil)
	items.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{{CartID: 5, MealID: 7, Quantity: 20}}, nil)

	uc := newCartUsecase(carts, items, meals)

	_, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{MealID: 7, Quantity: 1})
	assert.NoError(t, err)

	items.AssertNotCalled(t, "UpsertByCartAndMeal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddToCart_MealNotFound(t *testing.T) {
	ctx := context.Background()

	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	meals := new(MealRepoMock)

	carts.On("GetOrCreateActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5}, nil)
	meals.On("FindByID", mock.Anything, int64(99)).Return(model.Meal{}, repo.ErrNotFound)

	uc := newCartUsecase(carts, items, meals)

	_, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{MealID: 99, Quantity: 1})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestCartUsecase_AddToCart_MealUnavailable(t *testing.T) {
	ctx := context.Background()

	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	meals := new(MealRepoMock)

	carts.On("GetOrCreateActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5}, nil)
	meals.On("FindByID", mock.Anything, int64(7)).Return(model.Meal{ID: 7, IsAvailable: false}, nil)

	uc := newCartUsecase(carts, items, meals)

	_, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{MealID: 7, Quantity: 1})
	assert.ErrorIs(t, err, usecase.ErrValidation)
	assertErrContains(t, err, "unavailable")
}

func TestCartUsecase_UpdateItem_ZeroRemovesLine(t *testing.T) {
	ctx := context.Background()

	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	meals := new(MealRepoMock)

	carts.On("FindActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5}, nil)
	items.On("FindByCartAndMeal", mock.Anything, int64(5), int64(7)).Return(model.CartItem{ID: 3, CartID: 5, MealID: 7, Quantity: 4}, nil)
	items.On("DeleteByCartAndMeal", mock.Anything, int64(5), int64(7)).Return(nil)
	items.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{}, nil)

	uc := newCartUsecase(carts, items, meals)

	out, err := uc.UpdateItem(ctx, 1, 7, 0)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(out.Items))

	items.AssertExpectations(t)
	items.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_UpdateItem_MissingLine(t *testing.T) {
	ctx := context.Background()

	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	meals := new(MealRepoMock)

	carts.On("FindActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5}, nil)
	items.On("FindByCartAndMeal", mock.Anything, int64(5), int64(7)).Return(model.CartItem{}, repo.ErrNotFound)

	uc := newCartUsecase(carts, items, meals)

	_, err := uc.UpdateItem(ctx, 1, 7, 3)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestCartUsecase_UpdateItem_QuantityAboveCeiling(t *testing.T) {
	uc := newCartUsecase(new(CartRepoMock), new(CartItemRepoMock), new(MealRepoMock))

	_, err := uc.UpdateItem(context.Background(), 1, 7, maxQtyPerLine+1)
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

func TestCartUsecase_RemoveItem_NoActiveCart_NoError(t *testing.T) {
	ctx := context.Background()

	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	meals := new(MealRepoMock)

	carts.On("FindActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{}, repo.ErrNotFound)

	uc := newCartUsecase(carts, items, meals)

	out, err := uc.RemoveItem(ctx, 1, 7)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(out.Items))

	items.AssertNotCalled(t, "DeleteByCartAndMeal", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_RemoveItem_AbsentLine_Idempotent(t *testing.T) {
	ctx := context.Background()

	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	meals := new(MealRepoMock)

	carts.On("FindActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5}, nil)
	items.On("DeleteByCartAndMeal", mock.Anything, int64(5), int64(7)).Return(nil)
	items.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{}, nil)

	uc := newCartUsecase(carts, items, meals)

	_, err := uc.RemoveItem(ctx, 1, 7)
	assert.NoError(t, err)
}

func TestCartUsecase_GetCart_PricesAtCurrentCatalog(t *testing.T) {
	ctx := context.Background()

	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	meals := new(MealRepoMock)

	carts.On("GetOrCreateActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5}, nil)
	items.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{
		{CartID: 5, MealID: 7, Quantity: 2},
		{CartID: 5, MealID: 8, Quantity: 1},
	}, nil)
	meals.On("FindByID", mock.Anything, int64(7)).Return(model.Meal{ID: 7, Name: "Buddha Bowl", Price: 1490, IsAvailable: true}, nil)
	// delisted since it was added: dropped from the response
	meals.On("FindByID", mock.Anything, int64(8)).Return(model.Meal{ID: 8, Name: "Lasagna", Price: 1590, IsAvailable: false}, nil)

	uc := newCartUsecase(carts, items, meals)

	out, err := uc.GetCart(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, int64(2980), out.Total)
}

func TestCartUsecase_Total_MealLookupFailureSurfaces(t *testing.T) {
	ctx := context.Background()

	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	meals := new(MealRepoMock)

	carts.On("FindActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5}, nil)
	items.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{
		{CartID: 5, MealID: 7, Quantity: 2},
		{CartID: 5, MealID: 8, Quantity: 1},
	}, nil)
	meals.On("FindByID", mock.Anything, int64(7)).Return(model.Meal{ID: 7, Price: 1000, IsAvailable: true}, nil)
	// a store hiccup is not a delisted meal: the total must not silently shrink
	meals.On("FindByID", mock.Anything, int64(8)).Return(model.Meal{}, errors.New("connection reset"))

	uc := newCartUsecase(carts, items, meals)

	total, err := uc.Total(ctx, 1)
	assert.ErrorIs(t, err, usecase.ErrInternal)
	assert.Equal(t, int64(0), total)
}

func TestCartUsecase_Count_SumsQuantities(t *testing.T) {
	ctx := context.Background()

	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	meals := new(MealRepoMock)

	carts.On("FindActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5}, nil)
	items.On("SumQuantityByCartID", mock.Anything, int64(5)).Return(int64(7), nil)

	uc := newCartUsecase(carts, items, meals)

	count, err := uc.Count(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestCartUsecase_Count_NoCartIsZero(t *testing.T) {
	carts := new(CartRepoMock)
	carts.On("FindActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{}, repo.ErrNotFound)

	uc := newCartUsecase(carts, new(CartItemRepoMock), new(MealRepoMock))

	count, err := uc.Count(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
