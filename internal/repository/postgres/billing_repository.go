package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"linkFlame/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BillingRepository struct {
	DB *gorm.DB
}

func NewBillingRepository(db *gorm.DB) *BillingRepository {
	return &BillingRepository{
		DB: db,
	}
}

func (r *BillingRepository) EventExists(ctx context.Context, eventID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.BillingEvent{}).Where("event_id = ?", eventID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up billing event: %w", err)
	}

	return count > 0, nil
}

func (r *BillingRepository) FindEvents(ctx context.Context, limit int) ([]domain.BillingEvent, error) {
	var events []domain.BillingEvent
	err := r.DB.WithContext(ctx).Order("processed_at DESC").Limit(limit).Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list billing events: %w", err)
	}

	return events, nil
}

// FinalizeOrder runs the webhook critical path in a single transaction:
//
//  1. insert the billing event row (unique event_id is the idempotency
//     marker; a concurrent duplicate delivery loses here and rolls back),
//  2. decrement stock per line item with a guarded conditional update,
//  3. flip the order PENDING -> PAID,
//  4. remove the purchased quantities from the user's cart.
//
// Any error rolls the whole thing back, so a provider retry starts clean.
func (r *BillingRepository) FinalizeOrder(ctx context.Context, eventID, eventType string, payload []byte, order *domain.Order, amountTotal float64) error {
	if len(order.Items) == 0 {
		return errors.New("order has no line items")
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event := domain.BillingEvent{
			EventID:     eventID,
			EventType:   eventType,
			SessionID:   order.StripeSessionID,
			Payload:     datatypes.JSON(payload),
			ProcessedAt: time.Now(),
		}
		if err := tx.Create(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrEventAlreadyProcessed
			}
			return fmt.Errorf("failed to record billing event: %w", err)
		}

		for _, item := range order.Items {
			row := tx.Model(&domain.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if err := row.Error; err != nil {
				return fmt.Errorf("failed to decrement stock for product %d: %w", item.ProductID, err)
			}
			if row.RowsAffected == 0 {
				return fmt.Errorf("product %d: %w", item.ProductID, domain.ErrInsufficientStock)
			}
		}

		now := time.Now()
		row := tx.Model(&domain.Order{}).
			Where("id = ? AND order_status = ?", order.ID, domain.OrderStatusPending).
			Updates(map[string]interface{}{
				"order_status": domain.OrderStatusPaid,
				"amount_total": amountTotal,
				"paid_at":      now,
			})
		if err := row.Error; err != nil {
			return fmt.Errorf("failed to mark order paid: %w", err)
		}
		if row.RowsAffected == 0 {
			return domain.ErrOrderNotPending
		}

		for _, item := range order.Items {
			if err := reconcileCartItem(tx, order.UserID, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		return nil
	})
}

// reconcileCartItem removes the purchased quantity from the cart row,
// deleting it when nothing is left.
func reconcileCartItem(tx *gorm.DB, userID uint, productID uint64, quantity int64) error {
	row := tx.Model(&domain.CartItem{}).
		Where("user_id = ? AND product_id = ? AND quantity > ?", userID, productID, quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if err := row.Error; err != nil {
		return fmt.Errorf("failed to reconcile cart: %w", err)
	}
	if row.RowsAffected > 0 {
		return nil
	}

	// Quantity fully purchased (or the row never existed): drop it.
	if err := tx.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to reconcile cart: %w", err)
	}

	return nil
}
