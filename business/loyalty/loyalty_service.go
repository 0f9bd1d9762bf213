package loyalty

import (
	"context"

	"linkFlame/domain"
)

// LoyaltyRepository contract interface
type LoyaltyRepository interface {
	Append(ctx context.Context, entry *domain.LoyaltyEntry) error
	Balance(ctx context.Context, userID uint) (domain.LoyaltyBalance, error)
	History(ctx context.Context, userID uint) ([]domain.LoyaltyEntry, error)
}

type loyaltyService struct {
	loyaltyRepo LoyaltyRepository
}

func NewLoyaltyService(loyaltyRepo LoyaltyRepository) *loyaltyService {
	return &loyaltyService{
		loyaltyRepo: loyaltyRepo,
	}
}

func (s *loyaltyService) Balance(ctx context.Context, userID uint) (domain.LoyaltyBalance, error) {
	return s.loyaltyRepo.Balance(ctx, userID)
}

func (s *loyaltyService) History(ctx context.Context, userID uint) ([]domain.LoyaltyEntry, error) {
	return s.loyaltyRepo.History(ctx, userID)
}
