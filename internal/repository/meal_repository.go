package repository

import (
	"context"
	"errors"

	"mealdash/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

type MealListQuery struct {
	Page       int
	Limit      int
	Q          string
	Category   string
	Vegetarian *bool
	Vegan      *bool
	Sort       string
}

type MealRepository interface {
	// available meals only
	ListAvailable(ctx context.Context, q MealListQuery) ([]model.Meal, int64, error)
	FindByID(ctx context.Context, id int64) (model.Meal, error)

	Create(ctx context.Context, m model.Meal) (model.Meal, error)
	Update(ctx context.Context, m model.Meal) error
	SoftDelete(ctx context.Context, id int64) error
}
