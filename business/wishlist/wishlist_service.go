package wishlist

import (
	"context"

	"linkFlame/domain"
	"linkFlame/pkg/logger"
)

// WishlistRepository contract interface
type WishlistRepository interface {
	Add(ctx context.Context, item *domain.WishlistItem) error
	FindByUser(ctx context.Context, userID uint) ([]domain.WishlistItem, error)
	Remove(ctx context.Context, userID uint, productID uint64) error
}

// ProductRepository contract interface
type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error)
}

type wishlistService struct {
	wishlistRepo WishlistRepository
	productRepo  ProductRepository
}

func NewWishlistService(wishlistRepo WishlistRepository, productRepo ProductRepository) *wishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (s *wishlistService) Add(ctx context.Context, userID uint, productID uint64) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}

	item := domain.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.wishlistRepo.Add(ctx, &item); err != nil {
		logger.Error("Failed to add wishlist item", err)
		return err
	}

	return nil
}

func (s *wishlistService) List(ctx context.Context, userID uint) ([]domain.Product, error) {
	items, err := s.wishlistRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []domain.Product{}, nil
	}

	ids := make([]uint64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	return s.productRepo.FindByIDs(ctx, ids)
}

func (s *wishlistService) Remove(ctx context.Context, userID uint, productID uint64) error {
	return s.wishlistRepo.Remove(ctx, userID, productID)
}
