package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"linkFlame/domain"

	"gorm.io/gorm"
)

type ReferralRepository struct {
	DB *gorm.DB
}

func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{
		DB: db,
	}
}

func (r *ReferralRepository) Create(ctx context.Context, referral *domain.Referral) error {
	if err := r.DB.WithContext(ctx).Create(referral).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.New("referral code already exists")
		}
		return fmt.Errorf("failed to create referral: %w", err)
	}

	return nil
}

func (r *ReferralRepository) FindByCode(ctx context.Context, code string) (domain.Referral, error) {
	var referral domain.Referral
	err := r.DB.WithContext(ctx).Where("code = ?", code).First(&referral).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Referral{}, errors.New("referral not found")
		}
		return domain.Referral{}, fmt.Errorf("failed to find referral: %w", err)
	}

	return referral, nil
}

func (r *ReferralRepository) FindByReferrer(ctx context.Context, referrerID uint) ([]domain.Referral, error) {
	var referrals []domain.Referral
	err := r.DB.WithContext(ctx).Where("referrer_id = ?", referrerID).Order("created_at DESC").Find(&referrals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find referrals: %w", err)
	}

	return referrals, nil
}

// MarkConverted flips a pending referral for the referred user. The status
// guard keeps a second paid order from crediting the referrer twice.
func (r *ReferralRepository) MarkConverted(ctx context.Context, referredID uint) (domain.Referral, error) {
	var referral domain.Referral
	err := r.DB.WithContext(ctx).
		Where("referred_id = ? AND status = ?", referredID, domain.ReferralStatusPending).
		First(&referral).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Referral{}, errors.New("referral not found")
		}
		return domain.Referral{}, fmt.Errorf("failed to find referral: %w", err)
	}

	now := time.Now()
	row := r.DB.WithContext(ctx).Model(&domain.Referral{}).
		Where("id = ? AND status = ?", referral.ID, domain.ReferralStatusPending).
		Updates(map[string]interface{}{
			"status":       domain.ReferralStatusConverted,
			"converted_at": now,
		})
	if err := row.Error; err != nil {
		return domain.Referral{}, fmt.Errorf("failed to convert referral: %w", err)
	}
	if row.RowsAffected == 0 {
		return domain.Referral{}, errors.New("referral not found")
	}

	referral.Status = domain.ReferralStatusConverted
	referral.ConvertedAt = &now
	return referral, nil
}

func (r *ReferralRepository) AttachReferred(ctx context.Context, code string, referredID uint) error {
	row := r.DB.WithContext(ctx).Model(&domain.Referral{}).
		Where("code = ? AND referred_id IS NULL", code).
		Update("referred_id", referredID)
	if err := row.Error; err != nil {
		return fmt.Errorf("failed to attach referred user: %w", err)
	}
	if row.RowsAffected == 0 {
		return errors.New("referral code not available")
	}

	return nil
}
