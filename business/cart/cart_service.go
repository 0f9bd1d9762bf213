package cart

import (
	"context"
	"errors"

	"linkFlame/domain"
	"linkFlame/pkg/logger"
)

// CartRepository contract interface
type CartRepository interface {
	Upsert(ctx context.Context, item *domain.CartItem) error
	FindByUser(ctx context.Context, userID uint) ([]domain.CartItem, error)
	SetQuantity(ctx context.Context, userID uint, productID uint64, quantity int64) error
	Remove(ctx context.Context, userID uint, productID uint64) error
	Clear(ctx context.Context, userID uint) error
}

// ProductRepository contract interface
type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error)
}

// CartView is a cart item joined with its product and line subtotal.
type CartView struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
}

type CartLine struct {
	Product  domain.Product `json:"product"`
	Quantity int64          `json:"quantity"`
	Subtotal float64        `json:"subtotal"`
}

type cartService struct {
	cartRepo    CartRepository
	productRepo ProductRepository
}

func NewCartService(cartRepo CartRepository, productRepo ProductRepository) *cartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) AddItem(ctx context.Context, userID uint, productID uint64, quantity int64) error {
	if quantity <= 0 {
		return errors.New("quantity must be positive")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if product.Stock < quantity {
		return errors.New("not enough stock")
	}

	item := domain.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Upsert(ctx, &item); err != nil {
		logger.Error("Failed to add cart item", err)
		return err
	}

	return nil
}

func (s *cartService) GetCart(ctx context.Context, userID uint) (CartView, error) {
	items, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return CartView{}, err
	}

	view := CartView{Items: []CartLine{}}
	if len(items) == 0 {
		return view, nil
	}

	ids := make([]uint64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return CartView{}, err
	}
	productByID := make(map[uint64]domain.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	for _, item := range items {
		product, ok := productByID[item.ProductID]
		if !ok {
			// product was deleted since it was carted; skip the orphan row
			continue
		}
		subtotal := product.EffectivePrice() * float64(item.Quantity)
		view.Items = append(view.Items, CartLine{
			Product:  product,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
		view.Total += subtotal
	}

	return view, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID uint, productID uint64, quantity int64) error {
	if quantity <= 0 {
		return s.cartRepo.Remove(ctx, userID, productID)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if product.Stock < quantity {
		return errors.New("not enough stock")
	}

	return s.cartRepo.SetQuantity(ctx, userID, productID, quantity)
}

func (s *cartService) RemoveItem(ctx context.Context, userID uint, productID uint64) error {
	return s.cartRepo.Remove(ctx, userID, productID)
}

func (s *cartService) ClearCart(ctx context.Context, userID uint) error {
	return s.cartRepo.Clear(ctx, userID)
}
