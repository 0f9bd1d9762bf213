package orders

import (
	"context"
	"errors"

	"linkFlame/domain"
)

// OrdersRepository contract interface
type OrdersRepository interface {
	FindByID(ctx context.Context, orderID uint64) (domain.Order, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Order, error)
}

type ordersService struct {
	ordersRepo OrdersRepository
}

func NewOrdersService(ordersRepo OrdersRepository) *ordersService {
	return &ordersService{
		ordersRepo: ordersRepo,
	}
}

func (s *ordersService) GetMyOrders(ctx context.Context, userID uint) ([]domain.Order, error) {
	return s.ordersRepo.FindByUser(ctx, userID)
}

// GetOrder returns the order only when it belongs to the caller.
func (s *ordersService) GetOrder(ctx context.Context, orderID uint64, userID uint) (domain.Order, error) {
	order, err := s.ordersRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if order.UserID != userID {
		return domain.Order{}, errors.New("order not found")
	}

	return order, nil
}
