package model

import "time"

type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "PLACED"
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

// Forward progression is single-step; CANCELLED is reachable from any
// non-terminal state. DELIVERED and CANCELLED accept nothing.
var allowedTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPlaced:         {OrderStatusConfirmed: true, OrderStatusCancelled: true},
	OrderStatusConfirmed:      {OrderStatusPreparing: true, OrderStatusCancelled: true},
	OrderStatusPreparing:      {OrderStatusOutForDelivery: true, OrderStatusCancelled: true},
	OrderStatusOutForDelivery: {OrderStatusDelivered: true, OrderStatusCancelled: true},
	OrderStatusDelivered:      {},
	OrderStatusCancelled:      {},
}

func (s OrderStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return allowedTransitions[s][next]
}

// RequiredRoleFor is the minimum role that may request the move. The owning
// user may cancel before preparation starts; every other change is staff only.
func RequiredRoleFor(from, to OrderStatus) Role {
	if to == OrderStatusCancelled &&
		(from == OrderStatusPlaced || from == OrderStatusConfirmed) {
		return RoleUser
	}
	return RoleAdmin
}

type Order struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	// public order number shown to the customer
	Reference string `gorm:"type:varchar(36);not null;uniqueIndex" json:"reference"`

	Status OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	// cents
	TotalPrice int64 `gorm:"not null" json:"total_price"`

	DeliveryAddress     string    `gorm:"type:varchar(200);not null" json:"delivery_address"`
	RequestedDeliveryAt time.Time `gorm:"not null" json:"requested_delivery_at"`

	IdempotencyKey string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	OrderedAt      time.Time `gorm:"not null;autoCreateTime;index" json:"ordered_at"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
