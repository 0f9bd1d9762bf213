package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"linkFlame/domain"
	"linkFlame/internal/repository/stripe"
	"linkFlame/pkg/logger"
	"linkFlame/pkg/metrics"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNoOrganization     = errors.New("user has no organization")
	ErrUnhandledEventType = errors.New("unhandled event type")
)

// OrdersRepository contract interface
type OrdersRepository interface {
	CreatePending(ctx context.Context, order *domain.Order) error
	FindBySessionID(ctx context.Context, sessionID string) (domain.Order, error)
	SetSessionID(ctx context.Context, orderID uint64, sessionID string) error
	UsageForOrganization(ctx context.Context, orgID uint64, summary *domain.UsageSummary) error
}

// BillingRepository contract interface
type BillingRepository interface {
	EventExists(ctx context.Context, eventID string) (bool, error)
	FindEvents(ctx context.Context, limit int) ([]domain.BillingEvent, error)
	FinalizeOrder(ctx context.Context, eventID, eventType string, payload []byte, order *domain.Order, amountTotal float64) error
}

// CartRepository contract interface
type CartRepository interface {
	FindByUser(ctx context.Context, userID uint) ([]domain.CartItem, error)
}

// ProductRepository contract interface
type ProductRepository interface {
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error)
}

// UserRepository contract interface
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

// OrganizationRepository contract interface
type OrganizationRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Organization, error)
}

// StripeGateway contract interface
type StripeGateway interface {
	CreateCheckoutSession(ctx context.Context, orderID uint64, customerEmail string, items []stripe.SessionLineItem) (domain.StripeCheckoutSession, error)
	CreatePortalSession(ctx context.Context, customerID string) (domain.StripePortalSession, error)
}

// Enricher runs the best-effort side effects after a successful
// finalization (receipt email, loyalty award, impact metric, referral
// credit). Implementations must never fail the webhook.
type Enricher interface {
	OrderPaid(ctx context.Context, order domain.Order)
}

type BillingService struct {
	ordersRepo  OrdersRepository
	billingRepo BillingRepository
	cartRepo    CartRepository
	productRepo ProductRepository
	userRepo    UserRepository
	orgRepo     OrganizationRepository
	gateway     StripeGateway
	enricher    Enricher
}

func NewBillingService(
	ordersRepo OrdersRepository,
	billingRepo BillingRepository,
	cartRepo CartRepository,
	productRepo ProductRepository,
	userRepo UserRepository,
	orgRepo OrganizationRepository,
	gateway StripeGateway,
	enricher Enricher,
) *BillingService {
	return &BillingService{
		ordersRepo:  ordersRepo,
		billingRepo: billingRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		orgRepo:     orgRepo,
		gateway:     gateway,
		enricher:    enricher,
	}
}

// CreateCheckout snapshots the user's cart into a pending order and opens a
// Stripe checkout session for it.
func (s *BillingService) CreateCheckout(ctx context.Context, userID uint) (domain.CheckoutResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return domain.CheckoutResult{}, err
	}

	cartItems, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return domain.CheckoutResult{}, err
	}
	if len(cartItems) == 0 {
		return domain.CheckoutResult{}, ErrEmptyCart
	}

	ids := make([]uint64, 0, len(cartItems))
	for _, item := range cartItems {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return domain.CheckoutResult{}, err
	}
	productByID := make(map[uint64]domain.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	order := domain.Order{
		UserID:         userID,
		OrganizationID: user.OrganizationID,
		OrderStatus:    domain.OrderStatusPending,
		Currency:       "usd",
	}

	var total float64
	lineItems := make([]stripe.SessionLineItem, 0, len(cartItems))
	for _, item := range cartItems {
		product, ok := productByID[item.ProductID]
		if !ok {
			return domain.CheckoutResult{}, fmt.Errorf("product %d no longer exists", item.ProductID)
		}
		// Soft availability check; the webhook's guarded decrement is the
		// authoritative one.
		if product.Stock < item.Quantity {
			return domain.CheckoutResult{}, fmt.Errorf("product %d: %w", product.ID, ErrNotEnoughStock)
		}

		price := product.EffectivePrice()
		subtotal := price * float64(item.Quantity)
		total += subtotal

		order.Items = append(order.Items, domain.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			PriceEach: price,
			Subtotal:  subtotal,
		})
		lineItems = append(lineItems, stripe.SessionLineItem{
			Name:     product.ProductName,
			Amount:   price,
			Quantity: item.Quantity,
			Currency: order.Currency,
		})
	}
	order.AmountTotal = total

	if err := s.ordersRepo.CreatePending(ctx, &order); err != nil {
		return domain.CheckoutResult{}, err
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, order.ID, user.Email, lineItems)
	if err != nil {
		logger.Error("Failed to create stripe checkout session", err)
		return domain.CheckoutResult{}, err
	}

	if err := s.ordersRepo.SetSessionID(ctx, order.ID, session.ID); err != nil {
		return domain.CheckoutResult{}, err
	}

	metrics.CheckoutSessionsCreated.Inc()

	return domain.CheckoutResult{
		OrderID:     order.ID,
		SessionID:   session.ID,
		CheckoutURL: session.URL,
		AmountTotal: total,
	}, nil
}

// ErrNotEnoughStock rejects a checkout attempt up front when the cart asks
// for more than the shelf holds.
var ErrNotEnoughStock = errors.New("not enough stock")

// HandleEvent processes a verified webhook delivery. Replays of an already
// processed event (or a session whose order is already paid) are successful
// no-ops; any critical-path failure is returned so the handler answers 500
// and the provider redelivers.
func (s *BillingService) HandleEvent(ctx context.Context, event domain.StripeEvent, rawPayload []byte) error {
	if event.Type != "checkout.session.completed" {
		return ErrUnhandledEventType
	}

	exists, err := s.billingRepo.EventExists(ctx, event.ID)
	if err != nil {
		return err
	}
	if exists {
		logger.Info("Duplicate webhook event, skipping", "event_id", event.ID)
		metrics.WebhookEvents.WithLabelValues("duplicate").Inc()
		return nil
	}

	session := event.Data.Object

	order, err := s.ordersRepo.FindBySessionID(ctx, session.ID)
	if err != nil {
		// Data-integrity gap: there is no pending snapshot for this
		// session. Surfacing the error triggers a retry that will keep
		// failing until the order is corrected manually.
		logger.Error("No order for completed session", "session_id", session.ID)
		return err
	}

	if order.OrderStatus == domain.OrderStatusPaid {
		logger.Info("Order already paid, skipping", "order_id", order.ID)
		metrics.WebhookEvents.WithLabelValues("duplicate").Inc()
		return nil
	}

	amountTotal := float64(session.AmountTotal) / 100

	err = s.billingRepo.FinalizeOrder(ctx, event.ID, event.Type, rawPayload, &order, amountTotal)
	if err != nil {
		if errors.Is(err, domain.ErrEventAlreadyProcessed) {
			metrics.WebhookEvents.WithLabelValues("duplicate").Inc()
			return nil
		}
		metrics.WebhookEvents.WithLabelValues("failed").Inc()
		return err
	}

	metrics.WebhookEvents.WithLabelValues("processed").Inc()

	order.OrderStatus = domain.OrderStatusPaid
	order.AmountTotal = amountTotal
	now := time.Now()
	order.PaidAt = &now

	if s.enricher != nil {
		s.enricher.OrderPaid(ctx, order)
	}

	return nil
}

// CreatePortal opens a billing-portal session for the caller's organization.
func (s *BillingService) CreatePortal(ctx context.Context, userID uint) (domain.StripePortalSession, error) {
	org, err := s.organizationFor(ctx, userID)
	if err != nil {
		return domain.StripePortalSession{}, err
	}

	return s.gateway.CreatePortalSession(ctx, org.StripeCustomerID)
}

// Usage summarizes the caller organization's paid orders for the current
// calendar month.
func (s *BillingService) Usage(ctx context.Context, userID uint) (domain.UsageSummary, error) {
	org, err := s.organizationFor(ctx, userID)
	if err != nil {
		return domain.UsageSummary{}, err
	}

	now := time.Now()
	periodStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	periodEnd := periodStart.AddDate(0, 1, 0)

	summary := domain.UsageSummary{
		OrganizationID: org.ID,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
	}
	if err := s.ordersRepo.UsageForOrganization(ctx, org.ID, &summary); err != nil {
		return domain.UsageSummary{}, err
	}

	return summary, nil
}

func (s *BillingService) ListEvents(ctx context.Context, limit int) ([]domain.BillingEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.billingRepo.FindEvents(ctx, limit)
}

func (s *BillingService) organizationFor(ctx context.Context, userID uint) (domain.Organization, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return domain.Organization{}, err
	}
	if user.OrganizationID == nil {
		return domain.Organization{}, ErrNoOrganization
	}

	return s.orgRepo.FindByID(ctx, *user.OrganizationID)
}
