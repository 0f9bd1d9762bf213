package billing

import (
	"context"
	"errors"
	"testing"

	"linkFlame/domain"
	"linkFlame/internal/repository/stripe"
)

type fakeOrdersRepo struct {
	orders        map[string]domain.Order
	nextOrderID   uint64
	sessionForID  map[uint64]string
	createPending []domain.Order
}

func newFakeOrdersRepo() *fakeOrdersRepo {
	return &fakeOrdersRepo{
		orders:       map[string]domain.Order{},
		nextOrderID:  100,
		sessionForID: map[uint64]string{},
	}
}

func (f *fakeOrdersRepo) CreatePending(ctx context.Context, order *domain.Order) error {
	f.nextOrderID++
	order.ID = f.nextOrderID
	f.createPending = append(f.createPending, *order)
	return nil
}

func (f *fakeOrdersRepo) FindBySessionID(ctx context.Context, sessionID string) (domain.Order, error) {
	order, ok := f.orders[sessionID]
	if !ok {
		return domain.Order{}, errors.New("order not found")
	}
	return order, nil
}

func (f *fakeOrdersRepo) SetSessionID(ctx context.Context, orderID uint64, sessionID string) error {
	f.sessionForID[orderID] = sessionID
	return nil
}

func (f *fakeOrdersRepo) UsageForOrganization(ctx context.Context, orgID uint64, summary *domain.UsageSummary) error {
	summary.OrderCount = 3
	summary.AmountTotal = 120.50
	return nil
}

type fakeBillingRepo struct {
	processed   map[string]bool
	finalizeErr error
	finalized   []string
}

func newFakeBillingRepo() *fakeBillingRepo {
	return &fakeBillingRepo{processed: map[string]bool{}}
}

func (f *fakeBillingRepo) EventExists(ctx context.Context, eventID string) (bool, error) {
	return f.processed[eventID], nil
}

func (f *fakeBillingRepo) FindEvents(ctx context.Context, limit int) ([]domain.BillingEvent, error) {
	return nil, nil
}

func (f *fakeBillingRepo) FinalizeOrder(ctx context.Context, eventID, eventType string, payload []byte, order *domain.Order, amountTotal float64) error {
	if f.finalizeErr != nil {
		return f.finalizeErr
	}
	f.processed[eventID] = true
	f.finalized = append(f.finalized, eventID)
	return nil
}

type fakeCartRepo struct {
	items []domain.CartItem
}

func (f *fakeCartRepo) FindByUser(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	return f.items, nil
}

type fakeProductLookup struct {
	products []domain.Product
}

func (f *fakeProductLookup) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error) {
	return f.products, nil
}

type fakeUserRepo struct {
	user domain.User
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	return f.user, nil
}

type fakeOrgRepo struct {
	org domain.Organization
}

func (f *fakeOrgRepo) FindByID(ctx context.Context, id uint64) (domain.Organization, error) {
	return f.org, nil
}

type fakeGateway struct {
	session    domain.StripeCheckoutSession
	sessionErr error
	lineItems  []stripe.SessionLineItem
}

func (f *fakeGateway) CreateCheckoutSession(ctx context.Context, orderID uint64, customerEmail string, items []stripe.SessionLineItem) (domain.StripeCheckoutSession, error) {
	if f.sessionErr != nil {
		return domain.StripeCheckoutSession{}, f.sessionErr
	}
	f.lineItems = items
	return f.session, nil
}

func (f *fakeGateway) CreatePortalSession(ctx context.Context, customerID string) (domain.StripePortalSession, error) {
	return domain.StripePortalSession{ID: "bps_1", URL: "https://billing.stripe.com/session"}, nil
}

type recordingEnricher struct {
	paid []domain.Order
}

func (r *recordingEnricher) OrderPaid(ctx context.Context, order domain.Order) {
	r.paid = append(r.paid, order)
}

func completedEvent(eventID, sessionID string, amountCents int64) domain.StripeEvent {
	var event domain.StripeEvent
	event.ID = eventID
	event.Type = "checkout.session.completed"
	event.Data.Object = domain.StripeCheckoutSession{
		ID:          sessionID,
		AmountTotal: amountCents,
	}
	return event
}

func newTestService(ordersRepo *fakeOrdersRepo, billingRepo *fakeBillingRepo, enricher Enricher) *BillingService {
	return NewBillingService(
		ordersRepo,
		billingRepo,
		&fakeCartRepo{},
		&fakeProductLookup{},
		&fakeUserRepo{},
		&fakeOrgRepo{},
		&fakeGateway{},
		enricher,
	)
}

func TestHandleEventUnhandledType(t *testing.T) {
	svc := newTestService(newFakeOrdersRepo(), newFakeBillingRepo(), nil)

	var event domain.StripeEvent
	event.ID = "evt_1"
	event.Type = "invoice.created"

	err := svc.HandleEvent(context.Background(), event, nil)
	if !errors.Is(err, ErrUnhandledEventType) {
		t.Fatalf("expected ErrUnhandledEventType, got %v", err)
	}
}

func TestHandleEventFinalizesPendingOrder(t *testing.T) {
	ordersRepo := newFakeOrdersRepo()
	ordersRepo.orders["cs_1"] = domain.Order{
		ID:              1,
		UserID:          42,
		StripeSessionID: "cs_1",
		OrderStatus:     domain.OrderStatusPending,
	}
	billingRepo := newFakeBillingRepo()
	enricher := &recordingEnricher{}
	svc := newTestService(ordersRepo, billingRepo, enricher)

	err := svc.HandleEvent(context.Background(), completedEvent("evt_1", "cs_1", 2599), []byte(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(billingRepo.finalized) != 1 {
		t.Fatalf("expected 1 finalization, got %d", len(billingRepo.finalized))
	}
	if len(enricher.paid) != 1 {
		t.Fatalf("expected enricher to run once, got %d", len(enricher.paid))
	}
	if enricher.paid[0].AmountTotal != 25.99 {
		t.Errorf("expected amount 25.99, got %v", enricher.paid[0].AmountTotal)
	}
	if enricher.paid[0].OrderStatus != domain.OrderStatusPaid {
		t.Errorf("enricher saw status %q", enricher.paid[0].OrderStatus)
	}
}

func TestHandleEventReplayIsNoOp(t *testing.T) {
	ordersRepo := newFakeOrdersRepo()
	ordersRepo.orders["cs_1"] = domain.Order{
		ID:              1,
		StripeSessionID: "cs_1",
		OrderStatus:     domain.OrderStatusPending,
	}
	billingRepo := newFakeBillingRepo()
	enricher := &recordingEnricher{}
	svc := newTestService(ordersRepo, billingRepo, enricher)

	event := completedEvent("evt_1", "cs_1", 1000)
	if err := svc.HandleEvent(context.Background(), event, []byte(`{}`)); err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}
	if err := svc.HandleEvent(context.Background(), event, []byte(`{}`)); err != nil {
		t.Fatalf("replay should be a no-op, got %v", err)
	}

	if len(billingRepo.finalized) != 1 {
		t.Errorf("expected exactly 1 finalization, got %d", len(billingRepo.finalized))
	}
	if len(enricher.paid) != 1 {
		t.Errorf("enricher must not run on replay, ran %d times", len(enricher.paid))
	}
}

func TestHandleEventAlreadyPaidOrderIsNoOp(t *testing.T) {
	ordersRepo := newFakeOrdersRepo()
	ordersRepo.orders["cs_1"] = domain.Order{
		ID:              1,
		StripeSessionID: "cs_1",
		OrderStatus:     domain.OrderStatusPaid,
	}
	billingRepo := newFakeBillingRepo()
	svc := newTestService(ordersRepo, billingRepo, nil)

	err := svc.HandleEvent(context.Background(), completedEvent("evt_2", "cs_1", 1000), []byte(`{}`))
	if err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	if len(billingRepo.finalized) != 0 {
		t.Errorf("paid order must not be finalized again")
	}
}

func TestHandleEventMissingOrderFails(t *testing.T) {
	svc := newTestService(newFakeOrdersRepo(), newFakeBillingRepo(), nil)

	err := svc.HandleEvent(context.Background(), completedEvent("evt_3", "cs_missing", 1000), []byte(`{}`))
	if err == nil {
		t.Fatal("expected error for session with no order")
	}
}

func TestHandleEventInsufficientStockPropagates(t *testing.T) {
	ordersRepo := newFakeOrdersRepo()
	ordersRepo.orders["cs_1"] = domain.Order{
		ID:              1,
		StripeSessionID: "cs_1",
		OrderStatus:     domain.OrderStatusPending,
	}
	billingRepo := newFakeBillingRepo()
	billingRepo.finalizeErr = domain.ErrInsufficientStock
	enricher := &recordingEnricher{}
	svc := newTestService(ordersRepo, billingRepo, enricher)

	err := svc.HandleEvent(context.Background(), completedEvent("evt_4", "cs_1", 1000), []byte(`{}`))
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if len(enricher.paid) != 0 {
		t.Errorf("enricher must not run when finalization fails")
	}
}

func TestHandleEventConcurrentInsertTreatedAsDuplicate(t *testing.T) {
	ordersRepo := newFakeOrdersRepo()
	ordersRepo.orders["cs_1"] = domain.Order{
		ID:              1,
		StripeSessionID: "cs_1",
		OrderStatus:     domain.OrderStatusPending,
	}
	billingRepo := newFakeBillingRepo()
	billingRepo.finalizeErr = domain.ErrEventAlreadyProcessed
	svc := newTestService(ordersRepo, billingRepo, nil)

	err := svc.HandleEvent(context.Background(), completedEvent("evt_5", "cs_1", 1000), []byte(`{}`))
	if err != nil {
		t.Fatalf("racing duplicate must be a successful no-op, got %v", err)
	}
}

func TestCreateCheckoutEmptyCart(t *testing.T) {
	svc := NewBillingService(
		newFakeOrdersRepo(),
		newFakeBillingRepo(),
		&fakeCartRepo{},
		&fakeProductLookup{},
		&fakeUserRepo{user: domain.User{ID: 42, Email: "a@b.c"}},
		&fakeOrgRepo{},
		&fakeGateway{},
		nil,
	)

	_, err := svc.CreateCheckout(context.Background(), 42)
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCreateCheckoutUsesSalePrice(t *testing.T) {
	ordersRepo := newFakeOrdersRepo()
	gateway := &fakeGateway{session: domain.StripeCheckoutSession{ID: "cs_9", URL: "https://checkout.stripe.com/cs_9"}}
	svc := NewBillingService(
		ordersRepo,
		newFakeBillingRepo(),
		&fakeCartRepo{items: []domain.CartItem{{UserID: 42, ProductID: 5, Quantity: 2}}},
		&fakeProductLookup{products: []domain.Product{
			{ID: 5, ProductName: "Solar Lamp", Price: 30, SalePrice: 20, Stock: 10},
		}},
		&fakeUserRepo{user: domain.User{ID: 42, Email: "a@b.c"}},
		&fakeOrgRepo{},
		gateway,
		nil,
	)

	result, err := svc.CreateCheckout(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.AmountTotal != 40 {
		t.Errorf("expected total 40 (sale price), got %v", result.AmountTotal)
	}
	if result.SessionID != "cs_9" {
		t.Errorf("expected session cs_9, got %q", result.SessionID)
	}
	if len(gateway.lineItems) != 1 || gateway.lineItems[0].Amount != 20 {
		t.Errorf("gateway line items wrong: %+v", gateway.lineItems)
	}
	if ordersRepo.sessionForID[result.OrderID] != "cs_9" {
		t.Errorf("session id not bound to pending order")
	}
}

func TestCreateCheckoutRejectsOverstockedCart(t *testing.T) {
	svc := NewBillingService(
		newFakeOrdersRepo(),
		newFakeBillingRepo(),
		&fakeCartRepo{items: []domain.CartItem{{UserID: 42, ProductID: 5, Quantity: 99}}},
		&fakeProductLookup{products: []domain.Product{
			{ID: 5, ProductName: "Solar Lamp", Price: 30, Stock: 1},
		}},
		&fakeUserRepo{user: domain.User{ID: 42, Email: "a@b.c"}},
		&fakeOrgRepo{},
		&fakeGateway{},
		nil,
	)

	_, err := svc.CreateCheckout(context.Background(), 42)
	if !errors.Is(err, ErrNotEnoughStock) {
		t.Fatalf("expected ErrNotEnoughStock, got %v", err)
	}
}

func TestUsageRequiresOrganization(t *testing.T) {
	svc := newTestService(newFakeOrdersRepo(), newFakeBillingRepo(), nil)

	_, err := svc.Usage(context.Background(), 42)
	if !errors.Is(err, ErrNoOrganization) {
		t.Fatalf("expected ErrNoOrganization, got %v", err)
	}
}

func TestUsageSummarizesCurrentMonth(t *testing.T) {
	orgID := uint64(7)
	svc := NewBillingService(
		newFakeOrdersRepo(),
		newFakeBillingRepo(),
		&fakeCartRepo{},
		&fakeProductLookup{},
		&fakeUserRepo{user: domain.User{ID: 42, OrganizationID: &orgID}},
		&fakeOrgRepo{org: domain.Organization{ID: 7}},
		&fakeGateway{},
		nil,
	)

	summary, err := svc.Usage(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.OrderCount != 3 || summary.AmountTotal != 120.50 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if !summary.PeriodEnd.After(summary.PeriodStart) {
		t.Errorf("period end must follow period start")
	}
	if summary.PeriodStart.Day() != 1 {
		t.Errorf("period must start on the first of the month, got day %d", summary.PeriodStart.Day())
	}
}
