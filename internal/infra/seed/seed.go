package seed

import (
	"errors"
	"os"

	"mealdash/internal/domain/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Meals fills the catalog with the demo menu. Runs at startup and does
// nothing when meals already exist.
func Meals(db *gorm.DB) error {
	var existing model.Meal
	err := db.First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	meals := demoMeals()
	return db.Create(&meals).Error
}

// Admin creates the administrator account from ADMIN_EMAIL / ADMIN_PASSWORD.
// Skipped when the vars are unset or the account already exists.
func Admin(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var existing model.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "admin",
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	return db.Create(&admin).Error
}

func demoMeals() []model.Meal {
	return []model.Meal{
		{
			Name:            "Buddha Bowl with Grilled Vegetables",
			Description:     "A generous bowl of quinoa, grilled zucchini, peppers and eggplant, homemade hummus, avocado and sesame seeds.",
			Category:        model.MealCategoryBowl,
			Price:           1490,
			ImageURL:        "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?w=400",
			IsAvailable:     true,
			PreparationTime: 25,
			Calories:        520,
			IsVegetarian:    true,
			IsVegan:         true,
		},
		{
			Name:            "Teriyaki Chicken with Jasmine Rice",
			Description:     "Chicken fillet in a homemade teriyaki marinade, fragrant jasmine rice and wok-fried vegetables.",
			Category:        model.MealCategoryAsian,
			Price:           1650,
			ImageURL:        "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?w=400",
			IsAvailable:     true,
			PreparationTime: 30,
			Calories:        680,
		},
		{
			Name:            "Homemade Lasagna Bolognese",
			Description:     "Traditional lasagna with slow-simmered bolognese, creamy bechamel and gratinated parmesan.",
			Category:        model.MealCategoryItalian,
			Price:           1590,
			ImageURL:        "https://images.unsplash.com/photo-1574894709920-11b28e7367e3?w=400",
			IsAvailable:     true,
			PreparationTime: 35,
			Calories:        750,
		},
		{
			Name:            "Caesar Salad with Grilled Chicken",
			Description:     "Crunchy romaine, grilled chicken, garlic croutons, parmesan and creamy Caesar dressing.",
			Category:        model.MealCategorySalad,
			Price:           1350,
			ImageURL:        "https://images.unsplash.com/photo-1550304943-4f24f54ddde9?w=400",
			IsAvailable:     true,
			PreparationTime: 20,
			Calories:        450,
		},
		{
			Name:            "Vegetable Curry with Coconut Milk",
			Description:     "Mild seasonal vegetable curry with coconut milk, Indian spices and basmati rice.",
			Category:        model.MealCategoryOther,
			Price:           1450,
			ImageURL:        "https://images.unsplash.com/photo-1455619452474-d2be8b1e70cd?w=400",
			IsAvailable:     true,
			PreparationTime: 30,
			Calories:        580,
			IsVegetarian:    true,
			IsVegan:         true,
		},
		{
			Name:            "Gourmet Angus Burger",
			Description:     "180g Angus steak, aged cheddar, crispy bacon, caramelized onions, house sauce and fries.",
			Category:        model.MealCategoryBurger,
			Price:           1890,
			ImageURL:        "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=400",
			IsAvailable:     true,
			PreparationTime: 25,
			Calories:        920,
		},
		{
			Name:            "Salmon Poke Bowl",
			Description:     "Seasoned rice, marinated fresh salmon, avocado, edamame, mango, wakame and ponzu sauce.",
			Category:        model.MealCategoryBowl,
			Price:           1750,
			ImageURL:        "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?w=400",
			IsAvailable:     true,
			PreparationTime: 20,
			Calories:        550,
		},
		{
			Name:            "Shrimp Pad Thai",
			Description:     "Stir-fried rice noodles, shrimp, egg, peanuts, bean sprouts and tamarind sauce.",
			Category:        model.MealCategoryAsian,
			Price:           1690,
			ImageURL:        "https://images.unsplash.com/photo-1559314809-0d155014e29e?w=400",
			IsAvailable:     true,
			PreparationTime: 25,
			Calories:        620,
		},
		{
			Name:            "Mushroom Risotto",
			Description:     "Creamy risotto with forest mushrooms, parmesan and truffle oil.",
			Category:        model.MealCategoryItalian,
			Price:           1650,
			ImageURL:        "https://images.unsplash.com/photo-1476124369491-e7addf5db371?w=400",
			IsAvailable:     true,
			PreparationTime: 35,
			Calories:        650,
			IsVegetarian:    true,
		},
		{
			Name:            "Falafel Wrap",
			Description:     "Wrap filled with crispy falafel, raw vegetables, hummus and tahini sauce.",
			Category:        model.MealCategoryOther,
			Price:           1290,
			ImageURL:        "https://images.unsplash.com/photo-1529006557810-274b9b2fc783?w=400",
			IsAvailable:     true,
			PreparationTime: 15,
			Calories:        480,
			IsVegetarian:    true,
			IsVegan:         true,
		},
		{
			Name:            "Spicy Beef Tacos",
			Description:     "Three tacos with marinated beef, guacamole, pico de gallo, sour cream and cheddar.",
			Category:        model.MealCategoryOther,
			Price:           1550,
			ImageURL:        "https://images.unsplash.com/photo-1565299585323-38d6b0865b47?w=400",
			IsAvailable:     true,
			PreparationTime: 20,
			Calories:        720,
		},
		{
			Name:            "Beef Pho Soup",
			Description:     "Broth fragrant with Vietnamese spices, rice noodles, beef and fresh herbs.",
			Category:        model.MealCategoryAsian,
			Price:           1490,
			ImageURL:        "https://images.unsplash.com/photo-1582878826629-29b7ad1cdc43?w=400",
			IsAvailable:     true,
			PreparationTime: 25,
			Calories:        420,
		},
	}
}
