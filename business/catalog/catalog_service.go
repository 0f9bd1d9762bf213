package catalog

import (
	"context"
	"errors"
	"fmt"

	"linkFlame/domain"
	"linkFlame/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error)
	Search(ctx context.Context, filter domain.CatalogFilter) ([]domain.Product, int64, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint64) error
}

// ReviewRepository contract interface
type ReviewRepository interface {
	AggregatesFor(ctx context.Context, productIDs []uint64) (map[uint64]domain.RatingAggregate, error)
}

type catalogService struct {
	productRepo ProductRepository
	reviewRepo  ReviewRepository
}

func NewCatalogService(productRepo ProductRepository, reviewRepo ReviewRepository) *catalogService {
	return &catalogService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
	}
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SearchProducts runs the filtered count + paginated fetch, then attaches
// review aggregates and applies the minimum-rating filter in memory. The
// rating filter runs after pagination, so a page can come back shorter than
// page_size; pagination metadata still reflects the unfiltered total.
func (s *catalogService) SearchProducts(ctx context.Context, filter domain.CatalogFilter) (domain.ProductPage, error) {
	if err := ctx.Err(); err != nil {
		return domain.ProductPage{}, fmt.Errorf("context error: %w", err)
	}

	filter = normalizeFilter(filter)

	products, total, err := s.productRepo.Search(ctx, filter)
	if err != nil {
		logger.Error("Failed to search products", err)
		return domain.ProductPage{}, err
	}

	ids := make([]uint64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	aggregates, err := s.reviewRepo.AggregatesFor(ctx, ids)
	if err != nil {
		logger.Error("Failed to load review aggregates", err)
		return domain.ProductPage{}, err
	}

	page := make([]domain.ProductWithRating, 0, len(products))
	for _, p := range products {
		agg := aggregates[p.ID]
		if filter.MinRating > 0 && agg.AverageRating < filter.MinRating {
			continue
		}
		page = append(page, domain.ProductWithRating{
			Product:       p,
			AverageRating: agg.AverageRating,
			ReviewCount:   agg.ReviewCount,
		})
	}

	return domain.ProductPage{
		Products:   page,
		Pagination: NewPagination(total, filter.Page, filter.PageSize),
	}, nil
}

func (s *catalogService) GetProductByID(ctx context.Context, id uint64) (*domain.Product, error) {
	if id == 0 {
		return nil, errors.New("invalid product id")
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find product by id", err)
		return nil, err
	}

	return &product, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.ProductName == "" {
		return nil, errors.New("product name is required")
	}

	if product.ProductCategory == "" {
		return nil, errors.New("product category is required")
	}

	if product.Price <= 0 {
		return nil, errors.New("price must be greater than 0")
	}

	if product.Stock < 0 {
		return nil, errors.New("stock cannot be negative")
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create new product", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info("product created", "product_id", product.ID)

	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.ID == 0 {
		return nil, errors.New("product ID is required")
	}

	if product.ProductName == "" {
		return nil, errors.New("product name is required")
	}

	if product.Price <= 0 {
		return nil, errors.New("price must be greater than 0")
	}

	if product.Stock < 0 {
		return nil, errors.New("stock cannot be negative")
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("failed to update product", err)
		return nil, err
	}

	updatedProduct, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		logger.Error("failed to fetch updated product", err)
		return nil, fmt.Errorf("failed to fetch updated product: %w", err)
	}

	return &updatedProduct, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uint64) error {
	if id == 0 {
		return errors.New("invalid product id")
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete product", err)
		return err
	}

	return nil
}

func normalizeFilter(filter domain.CatalogFilter) domain.CatalogFilter {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = DefaultPageSize
	}
	if filter.PageSize > MaxPageSize {
		filter.PageSize = MaxPageSize
	}
	return filter
}
