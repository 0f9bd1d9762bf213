package postgres

import (
	"context"
	"errors"
	"fmt"

	"linkFlame/domain"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{
		DB: db,
	}
}

func (r *QuizRepository) Create(ctx context.Context, result *domain.QuizResult) error {
	if err := r.DB.WithContext(ctx).Create(result).Error; err != nil {
		return fmt.Errorf("failed to store quiz result: %w", err)
	}

	return nil
}

func (r *QuizRepository) FindLatestByUser(ctx context.Context, userID uint) (domain.QuizResult, error) {
	var result domain.QuizResult
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.QuizResult{}, errors.New("quiz result not found")
		}
		return domain.QuizResult{}, fmt.Errorf("failed to find quiz result: %w", err)
	}

	return result, nil
}
