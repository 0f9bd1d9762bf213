package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"linkFlame/domain"
	"linkFlame/pkg/logger"

	"gorm.io/datatypes"
)

// QuizRepository contract interface
type QuizRepository interface {
	Create(ctx context.Context, result *domain.QuizResult) error
	FindLatestByUser(ctx context.Context, userID uint) (domain.QuizResult, error)
}

// ProductRepository contract interface
type ProductRepository interface {
	Search(ctx context.Context, filter domain.CatalogFilter) ([]domain.Product, int64, error)
}

type quizService struct {
	quizRepo    QuizRepository
	productRepo ProductRepository
}

func NewQuizService(quizRepo QuizRepository, productRepo ProductRepository) *quizService {
	return &quizService{
		quizRepo:    quizRepo,
		productRepo: productRepo,
	}
}

// candidatePoolSize bounds how many products the scorer considers.
const candidatePoolSize = 200

// Recommend scores the catalog against the quiz answers and stores the
// submission. Scoring is deterministic: category match, budget fit and the
// green tag each contribute a weighted term, ties broken by product id.
func (s *quizService) Recommend(ctx context.Context, userID uint, answers domain.QuizAnswers, limit int) ([]domain.QuizRecommendation, error) {
	if limit <= 0 {
		limit = 10
	}

	products, _, err := s.productRepo.Search(ctx, domain.CatalogFilter{
		Page:     1,
		PageSize: candidatePoolSize,
	})
	if err != nil {
		logger.Error("Failed to load quiz candidates", err)
		return nil, err
	}

	recommendations := scoreProducts(products, answers, limit)

	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, errors.New("failed to encode quiz answers")
	}

	result := domain.QuizResult{
		UserID:  userID,
		Answers: datatypes.JSON(raw),
	}
	if err := s.quizRepo.Create(ctx, &result); err != nil {
		// the recommendation is still useful without the stored submission
		logger.Warn("Failed to store quiz result", "user_id", userID, "error", err)
	}

	return recommendations, nil
}

func (s *quizService) Latest(ctx context.Context, userID uint) (domain.QuizAnswers, error) {
	result, err := s.quizRepo.FindLatestByUser(ctx, userID)
	if err != nil {
		return domain.QuizAnswers{}, err
	}

	var answers domain.QuizAnswers
	if err := json.Unmarshal(result.Answers, &answers); err != nil {
		return domain.QuizAnswers{}, errors.New("stored quiz answers are corrupt")
	}

	return answers, nil
}

func scoreProducts(products []domain.Product, answers domain.QuizAnswers, limit int) []domain.QuizRecommendation {
	wanted := make(map[string]bool, len(answers.Categories))
	for _, c := range answers.Categories {
		wanted[c] = true
	}

	scored := make([]domain.QuizRecommendation, 0, len(products))
	for _, p := range products {
		var score float64

		if wanted[p.ProductCategory] {
			score += 2.0
		}
		if answers.BudgetMax > 0 && p.EffectivePrice() <= answers.BudgetMax {
			score += 1.0
		}
		if p.IsGreenTag {
			score += answers.EcoPriority
		}

		if score <= 0 {
			continue
		}
		scored = append(scored, domain.QuizRecommendation{Product: p, Score: score})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Product.ID < scored[j].Product.ID
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	return scored
}
