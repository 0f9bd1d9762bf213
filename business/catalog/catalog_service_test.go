package catalog

import (
	"context"
	"errors"
	"testing"

	"linkFlame/domain"
)

type fakeProductRepo struct {
	products   []domain.Product
	total      int64
	lastFilter domain.CatalogFilter
	searchErr  error
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error { return nil }

func (f *fakeProductRepo) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, errors.New("product not found")
}

func (f *fakeProductRepo) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error) {
	return f.products, nil
}

func (f *fakeProductRepo) Search(ctx context.Context, filter domain.CatalogFilter) ([]domain.Product, int64, error) {
	f.lastFilter = filter
	if f.searchErr != nil {
		return nil, 0, f.searchErr
	}
	return f.products, f.total, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error { return nil }
func (f *fakeProductRepo) Delete(ctx context.Context, id uint64) error               { return nil }

type fakeReviewRepo struct {
	aggregates map[uint64]domain.RatingAggregate
}

func (f *fakeReviewRepo) AggregatesFor(ctx context.Context, productIDs []uint64) (map[uint64]domain.RatingAggregate, error) {
	if f.aggregates == nil {
		return map[uint64]domain.RatingAggregate{}, nil
	}
	return f.aggregates, nil
}

func TestSearchProductsNormalizesPaging(t *testing.T) {
	productRepo := &fakeProductRepo{total: 0}
	svc := NewCatalogService(productRepo, &fakeReviewRepo{})

	_, err := svc.SearchProducts(context.Background(), domain.CatalogFilter{Page: 0, PageSize: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if productRepo.lastFilter.Page != 1 {
		t.Errorf("expected page 1, got %d", productRepo.lastFilter.Page)
	}
	if productRepo.lastFilter.PageSize != DefaultPageSize {
		t.Errorf("expected page size %d, got %d", DefaultPageSize, productRepo.lastFilter.PageSize)
	}
}

func TestSearchProductsCapsPageSize(t *testing.T) {
	productRepo := &fakeProductRepo{}
	svc := NewCatalogService(productRepo, &fakeReviewRepo{})

	_, err := svc.SearchProducts(context.Background(), domain.CatalogFilter{PageSize: 5000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if productRepo.lastFilter.PageSize != MaxPageSize {
		t.Errorf("expected page size capped at %d, got %d", MaxPageSize, productRepo.lastFilter.PageSize)
	}
}

func TestSearchProductsRatingFilterRunsAfterPagination(t *testing.T) {
	productRepo := &fakeProductRepo{
		products: []domain.Product{
			{ID: 1, ProductName: "Bamboo Brush"},
			{ID: 2, ProductName: "Solar Lamp"},
			{ID: 3, ProductName: "Hemp Tote"},
		},
		total: 30,
	}
	reviewRepo := &fakeReviewRepo{
		aggregates: map[uint64]domain.RatingAggregate{
			1: {AverageRating: 4.5, ReviewCount: 12},
			2: {AverageRating: 2.0, ReviewCount: 3},
			// product 3 has no reviews at all
		},
	}
	svc := NewCatalogService(productRepo, reviewRepo)

	page, err := svc.SearchProducts(context.Background(), domain.CatalogFilter{MinRating: 4.0, PageSize: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(page.Products) != 1 {
		t.Fatalf("expected 1 product after rating filter, got %d", len(page.Products))
	}
	if page.Products[0].ID != 1 {
		t.Errorf("expected product 1, got %d", page.Products[0].ID)
	}

	// pagination metadata reflects the unfiltered total
	if page.Pagination.Total != 30 {
		t.Errorf("expected total 30, got %d", page.Pagination.Total)
	}
	if page.Pagination.TotalPages != 10 {
		t.Errorf("expected 10 pages, got %d", page.Pagination.TotalPages)
	}
}

func TestSearchProductsAttachesAggregates(t *testing.T) {
	productRepo := &fakeProductRepo{
		products: []domain.Product{{ID: 7, ProductName: "Compost Bin"}},
		total:    1,
	}
	reviewRepo := &fakeReviewRepo{
		aggregates: map[uint64]domain.RatingAggregate{
			7: {AverageRating: 3.5, ReviewCount: 4},
		},
	}
	svc := NewCatalogService(productRepo, reviewRepo)

	page, err := svc.SearchProducts(context.Background(), domain.CatalogFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := page.Products[0]
	if got.AverageRating != 3.5 || got.ReviewCount != 4 {
		t.Errorf("aggregate not attached: %+v", got)
	}
}

func TestSearchProductsPropagatesRepoError(t *testing.T) {
	productRepo := &fakeProductRepo{searchErr: errors.New("db down")}
	svc := NewCatalogService(productRepo, &fakeReviewRepo{})

	if _, err := svc.SearchProducts(context.Background(), domain.CatalogFilter{}); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewCatalogService(&fakeProductRepo{}, &fakeReviewRepo{})

	cases := []struct {
		name    string
		product domain.Product
		wantErr string
	}{
		{"missing name", domain.Product{ProductCategory: "home", Price: 10}, "product name is required"},
		{"missing category", domain.Product{ProductName: "Brush", Price: 10}, "product category is required"},
		{"zero price", domain.Product{ProductName: "Brush", ProductCategory: "home"}, "price must be greater than 0"},
		{"negative stock", domain.Product{ProductName: "Brush", ProductCategory: "home", Price: 10, Stock: -1}, "stock cannot be negative"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), &tc.product)
			if err == nil || err.Error() != tc.wantErr {
				t.Errorf("expected %q, got %v", tc.wantErr, err)
			}
		})
	}
}
