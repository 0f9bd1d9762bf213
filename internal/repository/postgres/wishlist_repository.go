package postgres

import (
	"context"
	"errors"
	"fmt"

	"linkFlame/domain"

	"gorm.io/gorm"
)

type WishlistRepository struct {
	DB *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{
		DB: db,
	}
}

func (r *WishlistRepository) Add(ctx context.Context, item *domain.WishlistItem) error {
	err := r.DB.WithContext(ctx).Create(item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New("product already in wishlist")
		}
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return nil
}

func (r *WishlistRepository) FindByUser(ctx context.Context, userID uint) ([]domain.WishlistItem, error) {
	var items []domain.WishlistItem
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find wishlist items: %w", err)
	}

	return items, nil
}

func (r *WishlistRepository) Remove(ctx context.Context, userID uint, productID uint64) error {
	row := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.WishlistItem{})
	if err := row.Error; err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	if row.RowsAffected == 0 {
		return errors.New("wishlist item not found")
	}

	return nil
}
