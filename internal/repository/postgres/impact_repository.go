package postgres

import (
	"context"
	"fmt"

	"linkFlame/domain"

	"gorm.io/gorm"
)

type ImpactRepository struct {
	DB *gorm.DB
}

func NewImpactRepository(db *gorm.DB) *ImpactRepository {
	return &ImpactRepository{
		DB: db,
	}
}

func (r *ImpactRepository) Record(ctx context.Context, metric *domain.ImpactMetric) error {
	if err := r.DB.WithContext(ctx).Create(metric).Error; err != nil {
		return fmt.Errorf("failed to record impact metric: %w", err)
	}

	return nil
}

func (r *ImpactRepository) SummaryForUser(ctx context.Context, userID uint) (domain.ImpactSummary, error) {
	summary := domain.ImpactSummary{UserID: userID}

	row := r.DB.WithContext(ctx).Model(&domain.ImpactMetric{}).
		Select("COALESCE(SUM(co2_saved_grams), 0), COALESCE(SUM(green_items), 0), COUNT(*)").
		Where("user_id = ?", userID).
		Row()
	if err := row.Scan(&summary.CO2SavedGrams, &summary.GreenItems, &summary.Orders); err != nil {
		return domain.ImpactSummary{}, fmt.Errorf("failed to summarize impact: %w", err)
	}

	return summary, nil
}
