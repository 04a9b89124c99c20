package model

import "time"

// Name and unit price are frozen at checkout. Later catalog edits must not
// change what a past order says it cost.
type OrderItem struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID           int64     `gorm:"not null;index" json:"order_id"`
	MealID            int64     `gorm:"not null;index" json:"meal_id"`
	MealNameSnapshot  string    `gorm:"type:varchar(100);not null" json:"meal_name_snapshot"`
	UnitPriceSnapshot int64     `gorm:"not null" json:"unit_price_snapshot"`
	Quantity          int64     `gorm:"not null" json:"quantity"`
	CreatedAt         time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
