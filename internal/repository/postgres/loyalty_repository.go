package postgres

import (
	"context"
	"fmt"

	"linkFlame/domain"

	"gorm.io/gorm"
)

type LoyaltyRepository struct {
	DB *gorm.DB
}

func NewLoyaltyRepository(db *gorm.DB) *LoyaltyRepository {
	return &LoyaltyRepository{
		DB: db,
	}
}

func (r *LoyaltyRepository) Append(ctx context.Context, entry *domain.LoyaltyEntry) error {
	if err := r.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append loyalty entry: %w", err)
	}

	return nil
}

func (r *LoyaltyRepository) Balance(ctx context.Context, userID uint) (domain.LoyaltyBalance, error) {
	balance := domain.LoyaltyBalance{UserID: userID}

	row := r.DB.WithContext(ctx).Model(&domain.LoyaltyEntry{}).
		Select("COALESCE(SUM(points), 0) AS balance, COALESCE(SUM(points) FILTER (WHERE points > 0), 0) AS lifetime").
		Where("user_id = ?", userID).
		Row()
	if err := row.Scan(&balance.Balance, &balance.LifetimePoints); err != nil {
		return domain.LoyaltyBalance{}, fmt.Errorf("failed to compute loyalty balance: %w", err)
	}

	return balance, nil
}

func (r *LoyaltyRepository) History(ctx context.Context, userID uint) ([]domain.LoyaltyEntry, error) {
	var entries []domain.LoyaltyEntry
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find loyalty entries: %w", err)
	}

	return entries, nil
}
