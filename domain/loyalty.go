package domain

import "time"

const (
	LoyaltyReasonOrder    = "ORDER"
	LoyaltyReasonReferral = "REFERRAL"
)

// LoyaltyEntry is an append-only points ledger row. Balance is the sum of
// Points over a user's entries.
type LoyaltyEntry struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	OrderID   *uint64   `gorm:"column:order_id" json:"order_id,omitempty"`
	Points    int64     `gorm:"column:points;not null" json:"points"`
	Reason    string    `gorm:"column:reason;not null" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func (LoyaltyEntry) TableName() string {
	return "loyalty_entries"
}

type LoyaltyBalance struct {
	UserID         uint  `json:"user_id"`
	Balance        int64 `json:"balance"`
	LifetimePoints int64 `json:"lifetime_points"`
}
