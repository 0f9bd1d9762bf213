package domain

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID             uint    `gorm:"primaryKey"`
	FullName       string  `gorm:"column:full_name;not null"`
	Email          string  `gorm:"column:email;unique;not null"`
	IsVerified     bool    `gorm:"column:is_verified;default:false"`
	Password       string  `gorm:"column:password;not null"`
	Role           string  `gorm:"column:role;default:customer"`
	OrganizationID *uint64 `gorm:"column:organization_id;index"`
	ReferredBy     *uint   `gorm:"column:referred_by"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
