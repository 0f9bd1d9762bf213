package postgres

import (
	"context"
	"fmt"

	"linkFlame/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{
		DB: db,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if err := r.DB.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// AggregatesFor returns the average rating and review count per product for
// the given product ids.
func (r *ReviewRepository) AggregatesFor(ctx context.Context, productIDs []uint64) (map[uint64]domain.RatingAggregate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	aggregates := make(map[uint64]domain.RatingAggregate, len(productIDs))
	if len(productIDs) == 0 {
		return aggregates, nil
	}

	var rows []domain.RatingAggregate
	err := r.DB.WithContext(ctx).Model(&domain.Review{}).
		Select("product_id, AVG(rating) AS average_rating, COUNT(*) AS review_count").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	for _, row := range rows {
		aggregates[row.ProductID] = row
	}

	return aggregates, nil
}

func (r *ReviewRepository) FindByProduct(ctx context.Context, productID uint64) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.DB.WithContext(ctx).Where("product_id = ?", productID).Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}

	return reviews, nil
}
