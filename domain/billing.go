package domain

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

var (
	// ErrInsufficientStock aborts the whole finalization transaction: no
	// partial decrement survives across line items.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrEventAlreadyProcessed signals an idempotent no-op for a redelivered
	// webhook event.
	ErrEventAlreadyProcessed = errors.New("billing event already processed")

	// ErrOrderNotPending is a data-integrity failure: a completion event
	// arrived for a session with no pending snapshot order.
	ErrOrderNotPending = errors.New("no pending order for session")
)

// BillingEvent is the idempotency marker for webhook deliveries. EventID is
// the provider-assigned event id; the unique index makes a replayed delivery
// a no-op.
type BillingEvent struct {
	ID          uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID     string         `gorm:"column:event_id;uniqueIndex;not null" json:"event_id"`
	EventType   string         `gorm:"column:event_type;not null" json:"event_type"`
	SessionID   string         `gorm:"column:session_id;index" json:"session_id"`
	Payload     datatypes.JSON `gorm:"column:payload" json:"payload"`
	ProcessedAt time.Time      `gorm:"column:processed_at" json:"processed_at"`
}

func (BillingEvent) TableName() string {
	return "billing_events"
}

// CheckoutResult is what the checkout endpoint returns to the front-end.
type CheckoutResult struct {
	OrderID     uint64  `json:"order_id"`
	SessionID   string  `json:"session_id"`
	CheckoutURL string  `json:"checkout_url"`
	AmountTotal float64 `json:"amount_total"`
}

// UsageSummary aggregates an organization's paid orders for the current
// billing period.
type UsageSummary struct {
	OrganizationID uint64    `json:"organization_id"`
	PeriodStart    time.Time `json:"period_start"`
	PeriodEnd      time.Time `json:"period_end"`
	OrderCount     int64     `json:"order_count"`
	AmountTotal    float64   `json:"amount_total"`
}
