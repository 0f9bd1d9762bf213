package postgres

import (
	"context"
	"errors"
	"fmt"

	"linkFlame/domain"

	"gorm.io/gorm"
)

type OrganizationRepository struct {
	DB *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{
		DB: db,
	}
}

func (r *OrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	if err := r.DB.WithContext(ctx).Create(org).Error; err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}

	return nil
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uint64) (domain.Organization, error) {
	var org domain.Organization
	err := r.DB.WithContext(ctx).First(&org, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Organization{}, errors.New("organization not found")
		}
		return domain.Organization{}, fmt.Errorf("failed to find organization: %w", err)
	}

	return org, nil
}

func (r *OrganizationRepository) UpdatePlan(ctx context.Context, id uint64, plan string) error {
	row := r.DB.WithContext(ctx).Model(&domain.Organization{}).Where("id = ?", id).Update("plan", plan)
	if err := row.Error; err != nil {
		return fmt.Errorf("failed to update organization plan: %w", err)
	}
	if row.RowsAffected == 0 {
		return errors.New("organization not found")
	}

	return nil
}
