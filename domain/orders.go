package domain

import "time"

const (
	OrderStatusPending  = "PENDING"
	OrderStatusPaid     = "PAID"
	OrderStatusCanceled = "CANCELED"
)

// Order is created as a pending snapshot when a checkout session is opened
// and finalized to PAID by the Stripe webhook. StripeSessionID is unique so
// a redelivered completion event can never produce a second paid order.
type Order struct {
	ID              uint64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint        `gorm:"column:user_id;not null;index" json:"user_id"`
	OrganizationID  *uint64     `gorm:"column:organization_id;index" json:"organization_id,omitempty"`
	StripeSessionID string      `gorm:"column:stripe_session_id;uniqueIndex" json:"stripe_session_id"`
	OrderStatus     string      `gorm:"column:order_status;default:PENDING" json:"order_status"`
	AmountTotal     float64     `gorm:"column:amount_total;type:numeric" json:"amount_total"`
	Currency        string      `gorm:"column:currency;default:usd" json:"currency"`
	PaidAt          *time.Time  `gorm:"column:paid_at" json:"paid_at,omitempty"`
	Items           []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint64  `gorm:"column:order_id;not null;index" json:"order_id"`
	ProductID uint64  `gorm:"column:product_id;not null" json:"product_id"`
	Quantity  int64   `gorm:"column:quantity;not null" json:"quantity"`
	PriceEach float64 `gorm:"column:price_each;type:numeric;not null" json:"price_each"`
	Subtotal  float64 `gorm:"column:subtotal;type:numeric;not null" json:"subtotal"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
