package repository

import (
	"context"
	"errors"
	"strings"

	"mealdash/internal/domain/model"
	repo "mealdash/internal/repository"

	"gorm.io/gorm"
)

type MealGormRepository struct {
	db *gorm.DB
}

// DI
func NewMealGormRepository(db *gorm.DB) *MealGormRepository {
	return &MealGormRepository{db: db}
}

// Available meals only, with search, category and diet filters, paging.
func (r *MealGormRepository) ListAvailable(ctx context.Context, q repo.MealListQuery) ([]model.Meal, int64, error) {
	var meals []model.Meal
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Meal{})

	tx = tx.Where("is_available = ?", true)

	if strings.TrimSpace(q.Q) != "" {
		like := "%" + strings.TrimSpace(q.Q) + "%"
		tx = tx.Where("name LIKE ?", like)
	}

	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Vegetarian != nil {
		tx = tx.Where("is_vegetarian = ?", *q.Vegetarian)
	}
	if q.Vegan != nil {
		tx = tx.Where("is_vegan = ?", *q.Vegan)
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Meal{}, 0, err
	}

	switch q.Sort {
	case "price_asc":
		tx = tx.Order("price asc").Order("id asc")
	case "price_desc":
		tx = tx.Order("price desc").Order("id desc")
	default:
		tx = tx.Order("name asc").Order("id asc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&meals).Error; err != nil {
		return []model.Meal{}, 0, err
	}

	return meals, total, nil
}

func (r *MealGormRepository) FindByID(ctx context.Context, id int64) (model.Meal, error) {
	var m model.Meal
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Meal{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Meal{}, err
	}
	return m, nil
}

func (r *MealGormRepository) Create(ctx context.Context, m model.Meal) (model.Meal, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return model.Meal{}, err
	}
	return m, nil
}

func (r *MealGormRepository) Update(ctx context.Context, m model.Meal) error {
	res := r.db.WithContext(ctx).Model(&model.Meal{}).Where("id = ?", m.ID).Updates(map[string]interface{}{
		"name":             m.Name,
		"description":      m.Description,
		"category":         m.Category,
		"price":            m.Price,
		"image_url":        m.ImageURL,
		"is_available":     m.IsAvailable,
		"preparation_time": m.PreparationTime,
		"calories":         m.Calories,
		"is_vegetarian":    m.IsVegetarian,
		"is_vegan":         m.IsVegan,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *MealGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Meal{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
