package model

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	DisplayName  string `gorm:"type:varchar(80);not null" json:"display_name"`

	// default delivery details, overridable per order
	Address string `gorm:"type:varchar(200)" json:"address"`
	Phone   string `gorm:"type:varchar(20)" json:"phone"`

	Role        Role       `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"-"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
