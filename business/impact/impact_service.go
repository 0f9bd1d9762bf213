package impact

import (
	"context"

	"linkFlame/domain"
)

// ImpactRepository contract interface
type ImpactRepository interface {
	SummaryForUser(ctx context.Context, userID uint) (domain.ImpactSummary, error)
}

type impactService struct {
	impactRepo ImpactRepository
}

func NewImpactService(impactRepo ImpactRepository) *impactService {
	return &impactService{
		impactRepo: impactRepo,
	}
}

func (s *impactService) Summary(ctx context.Context, userID uint) (domain.ImpactSummary, error) {
	return s.impactRepo.SummaryForUser(ctx, userID)
}
