package model

import "time"

// One row per (cart, meal). Prices are not stored here; the cart is priced
// at the current catalog price and only checkout freezes a snapshot.
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64     `gorm:"not null;index;uniqueIndex:idx_cart_meal" json:"cart_id"`
	MealID    int64     `gorm:"not null;index;uniqueIndex:idx_cart_meal" json:"meal_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
