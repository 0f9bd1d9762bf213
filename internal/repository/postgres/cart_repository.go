package postgres

import (
	"context"
	"errors"
	"fmt"

	"linkFlame/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct {
	DB *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{
		DB: db,
	}
}

// Upsert adds the item, bumping quantity when the (user, product) row already
// exists.
func (r *CartRepository) Upsert(ctx context.Context, item *domain.CartItem) error {
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("cart_items.quantity + ?", item.Quantity)}),
	}).Create(item).Error
	if err != nil {
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return nil
}

func (r *CartRepository) FindByUser(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	var items []domain.CartItem
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find cart items: %w", err)
	}

	return items, nil
}

func (r *CartRepository) SetQuantity(ctx context.Context, userID uint, productID uint64, quantity int64) error {
	row := r.DB.WithContext(ctx).Model(&domain.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if err := row.Error; err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	if row.RowsAffected == 0 {
		return errors.New("cart item not found")
	}

	return nil
}

func (r *CartRepository) Remove(ctx context.Context, userID uint, productID uint64) error {
	row := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.CartItem{})
	if err := row.Error; err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if row.RowsAffected == 0 {
		return errors.New("cart item not found")
	}

	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID uint) error {
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
