package rest

import (
	"context"
	"net/http"
	"strconv"

	"linkFlame/domain"
	"linkFlame/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type QuizService interface {
	Recommend(ctx context.Context, userID uint, answers domain.QuizAnswers, limit int) ([]domain.QuizRecommendation, error)
	Latest(ctx context.Context, userID uint) (domain.QuizAnswers, error)
}

type QuizHandler struct {
	quizService QuizService
	validator   *validator.Validate
}

func NewQuizHandler(quizService QuizService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		validator:   validator.New(),
	}
}

type QuizRequest struct {
	Categories  []string `json:"categories" validate:"required,min=1"`
	BudgetMax   float64  `json:"budget_max" validate:"gte=0"`
	EcoPriority float64  `json:"eco_priority" validate:"gte=0,lte=5"`
}

func (h *QuizHandler) Recommend(c echo.Context) error {
	user_id := c.Get("user_id").(uint)

	var req QuizRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	answers := domain.QuizAnswers{
		Categories:  req.Categories,
		BudgetMax:   req.BudgetMax,
		EcoPriority: req.EcoPriority,
	}

	recommendations, err := h.quizService.Recommend(c.Request().Context(), user_id, answers, limit)
	if err != nil {
		logger.Error("Failed to build recommendations", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recommendations))
}

func (h *QuizHandler) Latest(c echo.Context) error {
	user_id := c.Get("user_id").(uint)

	answers, err := h.quizService.Latest(c.Request().Context(), user_id)
	if err != nil {
		if err.Error() == "quiz result not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to load latest quiz", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(answers))
}
