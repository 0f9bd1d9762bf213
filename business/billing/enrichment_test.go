package billing

import (
	"context"
	"errors"
	"testing"

	"linkFlame/domain"
)

type fakeLoyaltyRepo struct {
	entries   []domain.LoyaltyEntry
	appendErr error
}

func (f *fakeLoyaltyRepo) Append(ctx context.Context, entry *domain.LoyaltyEntry) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, *entry)
	return nil
}

type fakeImpactRepo struct {
	metrics []domain.ImpactMetric
}

func (f *fakeImpactRepo) Record(ctx context.Context, metric *domain.ImpactMetric) error {
	f.metrics = append(f.metrics, *metric)
	return nil
}

type fakeEnrichReferralRepo struct {
	referral   domain.Referral
	convertErr error
}

func (f *fakeEnrichReferralRepo) MarkConverted(ctx context.Context, referredID uint) (domain.Referral, error) {
	if f.convertErr != nil {
		return domain.Referral{}, f.convertErr
	}
	return f.referral, nil
}

type fakeNotifRepo struct {
	sent    int
	sendErr error
}

func (f *fakeNotifRepo) SendEmail(toName, toEmail, subject, message string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent++
	return nil
}

func paidOrder() domain.Order {
	return domain.Order{
		ID:          10,
		UserID:      42,
		OrderStatus: domain.OrderStatusPaid,
		AmountTotal: 37.50,
		Currency:    "usd",
		Items: []domain.OrderItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	}
}

func TestOrderPaidAwardsPointsAndImpact(t *testing.T) {
	loyaltyRepo := &fakeLoyaltyRepo{}
	impactRepo := &fakeImpactRepo{}
	enricher := NewOrderEnricher(
		loyaltyRepo,
		impactRepo,
		&fakeEnrichReferralRepo{convertErr: errors.New("not referred")},
		&fakeNotifRepo{},
		&fakeUserRepo{user: domain.User{ID: 42, FullName: "Ada", Email: "ada@example.com"}},
		&fakeProductLookup{products: []domain.Product{
			{ID: 1, IsGreenTag: true, CO2SavedGrams: 500},
			{ID: 2, IsGreenTag: false, CO2SavedGrams: 100},
		}},
	)

	enricher.OrderPaid(context.Background(), paidOrder())

	if len(loyaltyRepo.entries) != 1 {
		t.Fatalf("expected 1 loyalty entry, got %d", len(loyaltyRepo.entries))
	}
	if loyaltyRepo.entries[0].Points != 37 {
		t.Errorf("expected 37 points for a 37.50 order, got %d", loyaltyRepo.entries[0].Points)
	}
	if loyaltyRepo.entries[0].Reason != domain.LoyaltyReasonOrder {
		t.Errorf("wrong reason %q", loyaltyRepo.entries[0].Reason)
	}

	if len(impactRepo.metrics) != 1 {
		t.Fatalf("expected 1 impact metric, got %d", len(impactRepo.metrics))
	}
	metric := impactRepo.metrics[0]
	// only the green-tagged line counts: 2 units x 500g
	if metric.CO2SavedGrams != 1000 || metric.GreenItems != 2 {
		t.Errorf("unexpected metric: %+v", metric)
	}
}

func TestOrderPaidCreditsReferrerOnce(t *testing.T) {
	loyaltyRepo := &fakeLoyaltyRepo{}
	enricher := NewOrderEnricher(
		loyaltyRepo,
		&fakeImpactRepo{},
		&fakeEnrichReferralRepo{referral: domain.Referral{ID: 3, ReferrerID: 7}},
		&fakeNotifRepo{},
		&fakeUserRepo{user: domain.User{ID: 42}},
		&fakeProductLookup{},
	)

	enricher.OrderPaid(context.Background(), paidOrder())

	var bonus *domain.LoyaltyEntry
	for i := range loyaltyRepo.entries {
		if loyaltyRepo.entries[i].Reason == domain.LoyaltyReasonReferral {
			bonus = &loyaltyRepo.entries[i]
		}
	}
	if bonus == nil {
		t.Fatal("referrer bonus entry missing")
	}
	if bonus.UserID != 7 {
		t.Errorf("bonus went to user %d, want referrer 7", bonus.UserID)
	}
	if bonus.Points != referralBonusPoints {
		t.Errorf("bonus points %d, want %d", bonus.Points, referralBonusPoints)
	}
}

func TestOrderPaidSurvivesFailures(t *testing.T) {
	// every side effect fails; OrderPaid must not panic or abort early
	notifRepo := &fakeNotifRepo{sendErr: errors.New("smtp down")}
	enricher := NewOrderEnricher(
		&fakeLoyaltyRepo{appendErr: errors.New("db down")},
		&fakeImpactRepo{},
		&fakeEnrichReferralRepo{convertErr: errors.New("not referred")},
		notifRepo,
		&fakeUserRepo{user: domain.User{ID: 42, Email: "a@b.c"}},
		&fakeProductLookup{},
	)

	enricher.OrderPaid(context.Background(), paidOrder())

	if notifRepo.sent != 0 {
		t.Errorf("send should have failed, got %d sends", notifRepo.sent)
	}
}

func TestOrderPaidSendsReceipt(t *testing.T) {
	notifRepo := &fakeNotifRepo{}
	enricher := NewOrderEnricher(
		&fakeLoyaltyRepo{},
		&fakeImpactRepo{},
		&fakeEnrichReferralRepo{convertErr: errors.New("not referred")},
		notifRepo,
		&fakeUserRepo{user: domain.User{ID: 42, FullName: "Ada", Email: "ada@example.com"}},
		&fakeProductLookup{},
	)

	enricher.OrderPaid(context.Background(), paidOrder())

	if notifRepo.sent != 1 {
		t.Errorf("expected 1 receipt email, got %d", notifRepo.sent)
	}
}
