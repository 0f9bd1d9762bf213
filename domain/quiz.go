package domain

import (
	"time"

	"gorm.io/datatypes"
)

// QuizResult stores a submitted quiz (answers as JSONB) together with the
// product ids that were recommended for it.
type QuizResult struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint           `gorm:"column:user_id;not null;index" json:"user_id"`
	Answers   datatypes.JSON `gorm:"column:answers" json:"answers"`
	CreatedAt time.Time      `json:"created_at"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}

// QuizAnswers is the decoded shape of QuizResult.Answers.
type QuizAnswers struct {
	Categories  []string `json:"categories"`
	BudgetMax   float64  `json:"budget_max"`
	EcoPriority float64  `json:"eco_priority"`
}

type QuizRecommendation struct {
	Product Product `json:"product"`
	Score   float64 `json:"score"`
}
