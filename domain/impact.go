package domain

import "time"

// ImpactMetric records the sustainability contribution of a paid order,
// derived from green-tagged line items. Written best-effort after the
// webhook transaction commits.
type ImpactMetric struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	OrderID       uint64    `gorm:"column:order_id;not null" json:"order_id"`
	CO2SavedGrams int64     `gorm:"column:co2_saved_grams;not null" json:"co2_saved_grams"`
	GreenItems    int64     `gorm:"column:green_items;not null" json:"green_items"`
	CreatedAt     time.Time `json:"created_at"`
}

func (ImpactMetric) TableName() string {
	return "impact_metrics"
}

type ImpactSummary struct {
	UserID        uint  `json:"user_id"`
	CO2SavedGrams int64 `json:"co2_saved_grams"`
	GreenItems    int64 `json:"green_items"`
	Orders        int64 `json:"orders"`
}
