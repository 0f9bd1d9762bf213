package postgres

import (
	"context"
	"errors"
	"fmt"

	"linkFlame/domain"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

// CreatePending writes the snapshot order together with its line items.
func (r *OrdersRepository) CreatePending(ctx context.Context, order *domain.Order) error {
	if err := r.DB.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create pending order: %w", err)
	}

	return nil
}

func (r *OrdersRepository) FindByID(ctx context.Context, orderID uint64) (domain.Order, error) {
	var order domain.Order
	err := r.DB.WithContext(ctx).Preload("Items").First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, errors.New("order not found")
		}
		return domain.Order{}, fmt.Errorf("failed to find order: %w", err)
	}

	return order, nil
}

func (r *OrdersRepository) FindBySessionID(ctx context.Context, sessionID string) (domain.Order, error) {
	var order domain.Order
	err := r.DB.WithContext(ctx).Preload("Items").Where("stripe_session_id = ?", sessionID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, errors.New("order not found")
		}
		return domain.Order{}, fmt.Errorf("failed to find order by session: %w", err)
	}

	return order, nil
}

func (r *OrdersRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.DB.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	return orders, nil
}

// SetSessionID attaches the Stripe session to the pending order. The unique
// index on stripe_session_id rejects a second order for the same session.
func (r *OrdersRepository) SetSessionID(ctx context.Context, orderID uint64, sessionID string) error {
	row := r.DB.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", orderID).Update("stripe_session_id", sessionID)
	if err := row.Error; err != nil {
		return fmt.Errorf("failed to set session id: %w", err)
	}
	if row.RowsAffected == 0 {
		return errors.New("order not found")
	}

	return nil
}

// UsageForOrganization aggregates paid orders for a billing period.
func (r *OrdersRepository) UsageForOrganization(ctx context.Context, orgID uint64, summary *domain.UsageSummary) error {
	row := r.DB.WithContext(ctx).Model(&domain.Order{}).
		Select("COUNT(*) AS order_count, COALESCE(SUM(amount_total), 0) AS amount_total").
		Where("organization_id = ?", orgID).
		Where("order_status = ?", domain.OrderStatusPaid).
		Where("paid_at >= ? AND paid_at < ?", summary.PeriodStart, summary.PeriodEnd).
		Row()

	if err := row.Scan(&summary.OrderCount, &summary.AmountTotal); err != nil {
		return fmt.Errorf("failed to aggregate usage: %w", err)
	}

	return nil
}
