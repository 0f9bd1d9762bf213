package referral

import (
	"context"
	"errors"
	"strings"

	"linkFlame/domain"
	"linkFlame/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrSelfReferral = errors.New("cannot use your own referral code")
	ErrCodeUsed     = errors.New("referral code already used")
	ErrInvalidCode  = errors.New("invalid referral code")
)

// ReferralRepository contract interface
type ReferralRepository interface {
	Create(ctx context.Context, referral *domain.Referral) error
	FindByCode(ctx context.Context, code string) (domain.Referral, error)
	FindByReferrer(ctx context.Context, referrerID uint) ([]domain.Referral, error)
	AttachReferred(ctx context.Context, code string, referredID uint) error
}

// UserRepository contract interface
type UserRepository interface {
	SetReferredBy(ctx context.Context, id uint, referrerID uint) error
}

type referralService struct {
	referralRepo ReferralRepository
	userRepo     UserRepository
}

func NewReferralService(referralRepo ReferralRepository, userRepo UserRepository) *referralService {
	return &referralService{
		referralRepo: referralRepo,
		userRepo:     userRepo,
	}
}

// CreateCode mints a fresh referral code for the user. Codes are short
// uppercase uuid fragments, unique by constraint.
func (s *referralService) CreateCode(ctx context.Context, userID uint) (domain.Referral, error) {
	code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])

	referral := domain.Referral{
		ReferrerID: userID,
		Code:       code,
		Status:     domain.ReferralStatusPending,
	}
	if err := s.referralRepo.Create(ctx, &referral); err != nil {
		logger.Error("Failed to create referral code", err)
		return domain.Referral{}, err
	}

	return referral, nil
}

// ValidateCode is the public check used by the signup form. It reports
// whether the code exists and is still claimable.
func (s *referralService) ValidateCode(ctx context.Context, code string) (domain.Referral, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.Referral{}, ErrInvalidCode
	}

	referral, err := s.referralRepo.FindByCode(ctx, code)
	if err != nil {
		return domain.Referral{}, ErrInvalidCode
	}
	if referral.ReferredID != nil {
		return domain.Referral{}, ErrCodeUsed
	}

	return referral, nil
}

// Claim binds a referral code to a newly registered user.
func (s *referralService) Claim(ctx context.Context, code string, userID uint) error {
	referral, err := s.ValidateCode(ctx, code)
	if err != nil {
		return err
	}
	if referral.ReferrerID == userID {
		return ErrSelfReferral
	}

	if err := s.referralRepo.AttachReferred(ctx, referral.Code, userID); err != nil {
		return ErrCodeUsed
	}

	if err := s.userRepo.SetReferredBy(ctx, userID, referral.ReferrerID); err != nil {
		logger.Warn("Failed to set referred_by", "user_id", userID, "error", err)
	}

	return nil
}

func (s *referralService) ListMine(ctx context.Context, userID uint) ([]domain.Referral, error) {
	return s.referralRepo.FindByReferrer(ctx, userID)
}
