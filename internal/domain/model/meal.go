package model

import (
	"time"

	"gorm.io/gorm"
)

type MealCategory string

const (
	MealCategoryBowl    MealCategory = "bowl"
	MealCategoryAsian   MealCategory = "asian"
	MealCategoryItalian MealCategory = "italian"
	MealCategoryBurger  MealCategory = "burger"
	MealCategorySalad   MealCategory = "salad"
	MealCategoryOther   MealCategory = "other"
)

func (c MealCategory) Valid() bool {
	switch c {
	case MealCategoryBowl, MealCategoryAsian, MealCategoryItalian,
		MealCategoryBurger, MealCategorySalad, MealCategoryOther:
		return true
	}
	return false
}

// Price is in cents.
type Meal struct {
	ID          int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string       `gorm:"type:varchar(100);not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Category    MealCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Price       int64        `gorm:"not null" json:"price"`
	ImageURL    string       `gorm:"type:varchar(200)" json:"image_url"`
	IsAvailable bool         `gorm:"not null;default:true" json:"is_available"`

	// minutes
	PreparationTime int `gorm:"not null;default:30" json:"preparation_time"`

	Calories     int            `json:"calories"`
	IsVegetarian bool           `gorm:"not null;default:false" json:"is_vegetarian"`
	IsVegan      bool           `gorm:"not null;default:false" json:"is_vegan"`
	CreatedAt    time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
