package domain

import "time"

const (
	ReferralStatusPending   = "PENDING"
	ReferralStatusConverted = "CONVERTED"
)

// CREATE TABLE public.referrals (
//     id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     referrer_id  BIGINT NOT NULL,
//     code         TEXT UNIQUE NOT NULL,
//     status       TEXT DEFAULT 'PENDING',
//     referred_id  BIGINT,
//     converted_at TIMESTAMPTZ,
//     created_at   TIMESTAMPTZ DEFAULT NOW()
// );

type Referral struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ReferrerID  uint       `gorm:"column:referrer_id;not null;index" json:"referrer_id"`
	Code        string     `gorm:"column:code;uniqueIndex;not null" json:"code"`
	Status      string     `gorm:"column:status;default:PENDING" json:"status"`
	ReferredID  *uint      `gorm:"column:referred_id" json:"referred_id,omitempty"`
	ConvertedAt *time.Time `gorm:"column:converted_at" json:"converted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (Referral) TableName() string {
	return "referrals"
}
