package quiz

import (
	"context"
	"errors"
	"testing"

	"linkFlame/domain"
)

type fakeQuizRepo struct {
	created []domain.QuizResult
	latest  *domain.QuizResult
}

func (f *fakeQuizRepo) Create(ctx context.Context, result *domain.QuizResult) error {
	f.created = append(f.created, *result)
	return nil
}

func (f *fakeQuizRepo) FindLatestByUser(ctx context.Context, userID uint) (domain.QuizResult, error) {
	if f.latest == nil {
		return domain.QuizResult{}, errors.New("quiz result not found")
	}
	return *f.latest, nil
}

type fakeQuizProductRepo struct {
	products []domain.Product
}

func (f *fakeQuizProductRepo) Search(ctx context.Context, filter domain.CatalogFilter) ([]domain.Product, int64, error) {
	return f.products, int64(len(f.products)), nil
}

func TestScoreProductsWeighting(t *testing.T) {
	products := []domain.Product{
		{ID: 1, ProductCategory: "kitchen", Price: 15, IsGreenTag: true},  // 2 + 1 + 1.5
		{ID: 2, ProductCategory: "kitchen", Price: 50, IsGreenTag: false}, // 2
		{ID: 3, ProductCategory: "garden", Price: 10, IsGreenTag: false},  // 1
		{ID: 4, ProductCategory: "garden", Price: 99, IsGreenTag: false},  // 0, dropped
	}
	answers := domain.QuizAnswers{
		Categories:  []string{"kitchen"},
		BudgetMax:   20,
		EcoPriority: 1.5,
	}

	got := scoreProducts(products, answers, 10)

	if len(got) != 3 {
		t.Fatalf("expected 3 scored products, got %d", len(got))
	}
	if got[0].Product.ID != 1 || got[0].Score != 4.5 {
		t.Errorf("first place wrong: id=%d score=%v", got[0].Product.ID, got[0].Score)
	}
	if got[1].Product.ID != 2 {
		t.Errorf("second place wrong: id=%d", got[1].Product.ID)
	}
	if got[2].Product.ID != 3 {
		t.Errorf("third place wrong: id=%d", got[2].Product.ID)
	}
}

func TestScoreProductsTieBreaksByID(t *testing.T) {
	products := []domain.Product{
		{ID: 9, ProductCategory: "kitchen", Price: 10},
		{ID: 2, ProductCategory: "kitchen", Price: 10},
	}
	answers := domain.QuizAnswers{Categories: []string{"kitchen"}}

	got := scoreProducts(products, answers, 10)

	if got[0].Product.ID != 2 || got[1].Product.ID != 9 {
		t.Errorf("ties must break by ascending id, got %d then %d", got[0].Product.ID, got[1].Product.ID)
	}
}

func TestScoreProductsUsesSalePrice(t *testing.T) {
	products := []domain.Product{
		{ID: 1, ProductCategory: "other", Price: 50, SalePrice: 15},
	}
	answers := domain.QuizAnswers{BudgetMax: 20}

	got := scoreProducts(products, answers, 10)
	if len(got) != 1 {
		t.Fatalf("discounted product should fit the budget")
	}
	if got[0].Score != 1.0 {
		t.Errorf("expected budget-only score 1.0, got %v", got[0].Score)
	}
}

func TestScoreProductsHonorsLimit(t *testing.T) {
	var products []domain.Product
	for i := 1; i <= 30; i++ {
		products = append(products, domain.Product{ID: uint64(i), ProductCategory: "kitchen", Price: 5})
	}
	answers := domain.QuizAnswers{Categories: []string{"kitchen"}}

	got := scoreProducts(products, answers, 5)
	if len(got) != 5 {
		t.Errorf("expected 5 recommendations, got %d", len(got))
	}
}

func TestRecommendStoresSubmission(t *testing.T) {
	quizRepo := &fakeQuizRepo{}
	svc := NewQuizService(quizRepo, &fakeQuizProductRepo{
		products: []domain.Product{{ID: 1, ProductCategory: "kitchen", Price: 5}},
	})

	answers := domain.QuizAnswers{Categories: []string{"kitchen"}}
	recs, err := svc.Recommend(context.Background(), 42, answers, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}

	if len(quizRepo.created) != 1 {
		t.Fatalf("submission not stored")
	}
	if quizRepo.created[0].UserID != 42 {
		t.Errorf("stored for wrong user: %d", quizRepo.created[0].UserID)
	}
}

func TestLatestRoundTripsAnswers(t *testing.T) {
	quizRepo := &fakeQuizRepo{}
	svc := NewQuizService(quizRepo, &fakeQuizProductRepo{
		products: []domain.Product{{ID: 1, ProductCategory: "kitchen", Price: 5}},
	})

	answers := domain.QuizAnswers{Categories: []string{"kitchen"}, BudgetMax: 25, EcoPriority: 2}
	if _, err := svc.Recommend(context.Background(), 42, answers, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	quizRepo.latest = &quizRepo.created[0]

	got, err := svc.Latest(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BudgetMax != 25 || got.EcoPriority != 2 || len(got.Categories) != 1 {
		t.Errorf("answers did not round trip: %+v", got)
	}
}
