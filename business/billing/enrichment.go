package billing

import (
	"context"
	"fmt"

	"linkFlame/domain"
	"linkFlame/pkg/logger"
)

// LoyaltyRepository contract interface
type LoyaltyRepository interface {
	Append(ctx context.Context, entry *domain.LoyaltyEntry) error
}

// ImpactRepository contract interface
type ImpactRepository interface {
	Record(ctx context.Context, metric *domain.ImpactMetric) error
}

// ReferralRepository contract interface
type ReferralRepository interface {
	MarkConverted(ctx context.Context, referredID uint) (domain.Referral, error)
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) (err error)
}

// ProductLookup contract interface
type ProductLookup interface {
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error)
}

const (
	SubjectOrderReceipt = "Thanks for your Link Flame order!"

	// points per whole currency unit of a paid order
	pointsPerCurrencyUnit = 1
	referralBonusPoints   = 250
)

// OrderEnricher performs the non-critical enrichments after a webhook
// finalization commits. Every step logs and moves on; the webhook already
// answered the provider, so nothing here may bubble up.
type OrderEnricher struct {
	loyaltyRepo  LoyaltyRepository
	impactRepo   ImpactRepository
	referralRepo ReferralRepository
	notifRepo    NotificationRepository
	userRepo     UserRepository
	productRepo  ProductLookup
}

func NewOrderEnricher(
	loyaltyRepo LoyaltyRepository,
	impactRepo ImpactRepository,
	referralRepo ReferralRepository,
	notifRepo NotificationRepository,
	userRepo UserRepository,
	productRepo ProductLookup,
) *OrderEnricher {
	return &OrderEnricher{
		loyaltyRepo:  loyaltyRepo,
		impactRepo:   impactRepo,
		referralRepo: referralRepo,
		notifRepo:    notifRepo,
		userRepo:     userRepo,
		productRepo:  productRepo,
	}
}

func (e *OrderEnricher) OrderPaid(ctx context.Context, order domain.Order) {
	e.awardLoyaltyPoints(ctx, order)
	e.recordImpact(ctx, order)
	e.creditReferrer(ctx, order)
	e.sendReceipt(ctx, order)
}

func (e *OrderEnricher) awardLoyaltyPoints(ctx context.Context, order domain.Order) {
	points := int64(order.AmountTotal) * pointsPerCurrencyUnit
	if points <= 0 {
		return
	}

	entry := domain.LoyaltyEntry{
		UserID:  order.UserID,
		OrderID: &order.ID,
		Points:  points,
		Reason:  domain.LoyaltyReasonOrder,
	}
	if err := e.loyaltyRepo.Append(ctx, &entry); err != nil {
		logger.Warn("Failed to award loyalty points", "order_id", order.ID, "error", err)
	}
}

func (e *OrderEnricher) recordImpact(ctx context.Context, order domain.Order) {
	ids := make([]uint64, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := e.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		logger.Warn("Failed to load products for impact metric", "order_id", order.ID, "error", err)
		return
	}
	productByID := make(map[uint64]domain.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	var co2 int64
	var greenItems int64
	for _, item := range order.Items {
		product, ok := productByID[item.ProductID]
		if !ok || !product.IsGreenTag {
			continue
		}
		co2 += product.CO2SavedGrams * item.Quantity
		greenItems += item.Quantity
	}

	if greenItems == 0 {
		return
	}

	metric := domain.ImpactMetric{
		UserID:        order.UserID,
		OrderID:       order.ID,
		CO2SavedGrams: co2,
		GreenItems:    greenItems,
	}
	if err := e.impactRepo.Record(ctx, &metric); err != nil {
		logger.Warn("Failed to record impact metric", "order_id", order.ID, "error", err)
	}
}

// creditReferrer converts a pending referral the first time a referred user
// pays. The repository's status guard keeps later orders from double
// crediting.
func (e *OrderEnricher) creditReferrer(ctx context.Context, order domain.Order) {
	referral, err := e.referralRepo.MarkConverted(ctx, order.UserID)
	if err != nil {
		// the common case: this user was never referred
		return
	}

	entry := domain.LoyaltyEntry{
		UserID: referral.ReferrerID,
		Points: referralBonusPoints,
		Reason: domain.LoyaltyReasonReferral,
	}
	if err := e.loyaltyRepo.Append(ctx, &entry); err != nil {
		logger.Warn("Failed to credit referrer", "referral_id", referral.ID, "error", err)
	}
}

func (e *OrderEnricher) sendReceipt(ctx context.Context, order domain.Order) {
	user, err := e.userRepo.FindByID(ctx, order.UserID)
	if err != nil {
		logger.Warn("Failed to load user for receipt", "order_id", order.ID, "error", err)
		return
	}

	message := fmt.Sprintf(
		"Hi %v, we received your payment of %.2f %v for order #%d. Your items are on the way!",
		user.FullName, order.AmountTotal, order.Currency, order.ID,
	)
	if err := e.notifRepo.SendEmail(user.FullName, user.Email, SubjectOrderReceipt, message); err != nil {
		logger.Warn("Failed to send receipt email", "order_id", order.ID, "error", err)
	}
}
