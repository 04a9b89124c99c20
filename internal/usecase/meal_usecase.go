package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"mealdash/internal/domain/model"
	repo "mealdash/internal/repository"
)

type MealUsecase struct {
	mealRepo  repo.MealRepository
	auditRepo repo.AuditLogRepository
}

func NewMealUsecase(mealRepo repo.MealRepository, auditRepo repo.AuditLogRepository) *MealUsecase {
	return &MealUsecase{mealRepo: mealRepo, auditRepo: auditRepo}
}

type MealListOutput struct {
	Meals []model.Meal `json:"meals"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

func (u *MealUsecase) List(ctx context.Context, q repo.MealListQuery) (MealListOutput, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Category != "" && !model.MealCategory(q.Category).Valid() {
		return MealListOutput{}, fmt.Errorf("%w: invalid category", ErrValidation)
	}

	meals, total, err := u.mealRepo.ListAvailable(ctx, q)
	if err != nil {
		return MealListOutput{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return MealListOutput{Meals: meals, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func (u *MealUsecase) Detail(ctx context.Context, id int64) (model.Meal, error) {
	if id <= 0 {
		return model.Meal{}, fmt.Errorf("%w: invalid id", ErrValidation)
	}

	m, err := u.mealRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Meal{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Meal{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return m, nil
}

type AdminMealInput struct {
	Name            string
	Description     string
	Category        string
	Price           int64
	ImageURL        string
	IsAvailable     bool
	PreparationTime int
	Calories        int
	IsVegetarian    bool
	IsVegan         bool
}

func (in AdminMealInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if !model.MealCategory(in.Category).Valid() {
		return fmt.Errorf("%w: invalid category", ErrValidation)
	}
	if in.Price <= 0 {
		return fmt.Errorf("%w: invalid price", ErrValidation)
	}
	return nil
}

func (u *MealUsecase) AdminCreate(ctx context.Context, actorID int64, in AdminMealInput) (model.Meal, error) {
	if actorID <= 0 {
		return model.Meal{}, ErrUnauthorized
	}
	if err := in.validate(); err != nil {
		return model.Meal{}, err
	}

	m := model.Meal{
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		Category:        model.MealCategory(in.Category),
		Price:           in.Price,
		ImageURL:        in.ImageURL,
		IsAvailable:     in.IsAvailable,
		PreparationTime: in.PreparationTime,
		Calories:        in.Calories,
		IsVegetarian:    in.IsVegetarian,
		IsVegan:         in.IsVegan,
	}

	created, err := u.mealRepo.Create(ctx, m)
	if err != nil {
		return model.Meal{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	afterJSON, _ := json.Marshal(created)
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       model.AuditActionCreateMeal,
		ResourceType: model.AuditResourceMeal,
		ResourceID:   created.ID,
		AfterJSON:    string(afterJSON),
		CreatedAt:    time.Now(),
	}); err != nil {
		return model.Meal{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return created, nil
}

// AdminUpdate edits the catalog entry. Historical orders keep the prices
// they snapshotted; nothing here touches them.
func (u *MealUsecase) AdminUpdate(ctx context.Context, actorID int64, mealID int64, in AdminMealInput) (model.Meal, error) {
	if actorID <= 0 {
		return model.Meal{}, ErrUnauthorized
	}
	if mealID <= 0 {
		return model.Meal{}, fmt.Errorf("%w: invalid id", ErrValidation)
	}
	if err := in.validate(); err != nil {
		return model.Meal{}, err
	}

	before, err := u.mealRepo.FindByID(ctx, mealID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Meal{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Meal{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	after := before
	after.Name = strings.TrimSpace(in.Name)
	after.Description = in.Description
	after.Category = model.MealCategory(in.Category)
	after.Price = in.Price
	after.ImageURL = in.ImageURL
	after.IsAvailable = in.IsAvailable
	after.PreparationTime = in.PreparationTime
	after.Calories = in.Calories
	after.IsVegetarian = in.IsVegetarian
	after.IsVegan = in.IsVegan

	if err := u.mealRepo.Update(ctx, after); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Meal{}, repo.ErrNotFound
		}
		return model.Meal{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	beforeJSON, _ := json.Marshal(before)
	afterJSON, _ := json.Marshal(after)
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       model.AuditActionUpdateMeal,
		ResourceType: model.AuditResourceMeal,
		ResourceID:   mealID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
		CreatedAt:    time.Now(),
	}); err != nil {
		return model.Meal{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return after, nil
}

// AdminDelete delists a meal. Soft delete: existing carts drop the line at
// display time and past orders keep their snapshots.
func (u *MealUsecase) AdminDelete(ctx context.Context, actorID int64, mealID int64) error {
	if actorID <= 0 {
		return ErrUnauthorized
	}
	if mealID <= 0 {
		return fmt.Errorf("%w: invalid id", ErrValidation)
	}

	before, err := u.mealRepo.FindByID(ctx, mealID)
	if errors.Is(err, repo.ErrNotFound) {
		return repo.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := u.mealRepo.SoftDelete(ctx, mealID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return repo.ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	beforeJSON, _ := json.Marshal(before)
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       model.AuditActionDeleteMeal,
		ResourceType: model.AuditResourceMeal,
		ResourceID:   mealID,
		BeforeJSON:   string(beforeJSON),
		CreatedAt:    time.Now(),
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return nil
}
