package referral

import (
	"context"
	"errors"
	"testing"

	"linkFlame/domain"
)

type fakeReferralRepo struct {
	byCode   map[string]domain.Referral
	attached map[string]uint
}

func newFakeReferralRepo() *fakeReferralRepo {
	return &fakeReferralRepo{
		byCode:   map[string]domain.Referral{},
		attached: map[string]uint{},
	}
}

func (f *fakeReferralRepo) Create(ctx context.Context, referral *domain.Referral) error {
	referral.ID = uint64(len(f.byCode) + 1)
	f.byCode[referral.Code] = *referral
	return nil
}

func (f *fakeReferralRepo) FindByCode(ctx context.Context, code string) (domain.Referral, error) {
	ref, ok := f.byCode[code]
	if !ok {
		return domain.Referral{}, errors.New("referral not found")
	}
	return ref, nil
}

func (f *fakeReferralRepo) FindByReferrer(ctx context.Context, referrerID uint) ([]domain.Referral, error) {
	var out []domain.Referral
	for _, ref := range f.byCode {
		if ref.ReferrerID == referrerID {
			out = append(out, ref)
		}
	}
	return out, nil
}

func (f *fakeReferralRepo) AttachReferred(ctx context.Context, code string, referredID uint) error {
	ref, ok := f.byCode[code]
	if !ok || ref.ReferredID != nil {
		return errors.New("referral not claimable")
	}
	ref.ReferredID = &referredID
	f.byCode[code] = ref
	f.attached[code] = referredID
	return nil
}

type fakeReferralUserRepo struct {
	referredBy map[uint]uint
}

func (f *fakeReferralUserRepo) SetReferredBy(ctx context.Context, id uint, referrerID uint) error {
	if f.referredBy == nil {
		f.referredBy = map[uint]uint{}
	}
	f.referredBy[id] = referrerID
	return nil
}

func TestCreateCodeShape(t *testing.T) {
	repo := newFakeReferralRepo()
	svc := NewReferralService(repo, &fakeReferralUserRepo{})

	ref, err := svc.CreateCode(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ref.Code) != 10 {
		t.Errorf("expected 10-char code, got %q", ref.Code)
	}
	if ref.Status != domain.ReferralStatusPending {
		t.Errorf("new code must be pending, got %q", ref.Status)
	}
	if ref.ReferrerID != 42 {
		t.Errorf("wrong referrer: %d", ref.ReferrerID)
	}
}

func TestValidateCodeNormalizesInput(t *testing.T) {
	repo := newFakeReferralRepo()
	repo.byCode["ABCDEF1234"] = domain.Referral{ID: 1, Code: "ABCDEF1234", ReferrerID: 1}
	svc := NewReferralService(repo, &fakeReferralUserRepo{})

	if _, err := svc.ValidateCode(context.Background(), "  abcdef1234 "); err != nil {
		t.Fatalf("lowercase code with whitespace should validate, got %v", err)
	}
}

func TestValidateCodeUnknown(t *testing.T) {
	svc := NewReferralService(newFakeReferralRepo(), &fakeReferralUserRepo{})

	_, err := svc.ValidateCode(context.Background(), "NOPE123456")
	if !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
}

func TestValidateCodeAlreadyUsed(t *testing.T) {
	used := uint(99)
	repo := newFakeReferralRepo()
	repo.byCode["ABCDEF1234"] = domain.Referral{ID: 1, Code: "ABCDEF1234", ReferrerID: 1, ReferredID: &used}
	svc := NewReferralService(repo, &fakeReferralUserRepo{})

	_, err := svc.ValidateCode(context.Background(), "ABCDEF1234")
	if !errors.Is(err, ErrCodeUsed) {
		t.Fatalf("expected ErrCodeUsed, got %v", err)
	}
}

func TestClaimRejectsSelfReferral(t *testing.T) {
	repo := newFakeReferralRepo()
	repo.byCode["ABCDEF1234"] = domain.Referral{ID: 1, Code: "ABCDEF1234", ReferrerID: 42}
	svc := NewReferralService(repo, &fakeReferralUserRepo{})

	err := svc.Claim(context.Background(), "ABCDEF1234", 42)
	if !errors.Is(err, ErrSelfReferral) {
		t.Fatalf("expected ErrSelfReferral, got %v", err)
	}
}

func TestClaimBindsReferredUser(t *testing.T) {
	repo := newFakeReferralRepo()
	repo.byCode["ABCDEF1234"] = domain.Referral{ID: 1, Code: "ABCDEF1234", ReferrerID: 1}
	userRepo := &fakeReferralUserRepo{}
	svc := NewReferralService(repo, userRepo)

	if err := svc.Claim(context.Background(), "ABCDEF1234", 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.attached["ABCDEF1234"] != 7 {
		t.Errorf("referred user not attached")
	}
	if userRepo.referredBy[7] != 1 {
		t.Errorf("referred_by not set on the user")
	}

	// second claim of the same code must fail
	if err := svc.Claim(context.Background(), "ABCDEF1234", 8); !errors.Is(err, ErrCodeUsed) {
		t.Errorf("expected ErrCodeUsed on second claim, got %v", err)
	}
}
