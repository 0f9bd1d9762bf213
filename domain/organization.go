package domain

import "time"

type Organization struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string    `gorm:"column:name;not null" json:"name"`
	OwnerID          uint      `gorm:"column:owner_id;not null" json:"owner_id"`
	StripeCustomerID string    `gorm:"column:stripe_customer_id;uniqueIndex" json:"stripe_customer_id"`
	Plan             string    `gorm:"column:plan;default:free" json:"plan"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Organization) TableName() string {
	return "organizations"
}
