package rest

import (
	"context"
	"net/http"

	"linkFlame/domain"
	"linkFlame/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type LoyaltyService interface {
	Balance(ctx context.Context, userID uint) (domain.LoyaltyBalance, error)
	History(ctx context.Context, userID uint) ([]domain.LoyaltyEntry, error)
}

type LoyaltyHandler struct {
	loyaltyService LoyaltyService
}

func NewLoyaltyHandler(loyaltyService LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{
		loyaltyService: loyaltyService,
	}
}

func (h *LoyaltyHandler) Balance(c echo.Context) error {
	user_id := c.Get("user_id").(uint)

	balance, err := h.loyaltyService.Balance(c.Request().Context(), user_id)
	if err != nil {
		logger.Error("Failed to load loyalty balance", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(balance))
}

func (h *LoyaltyHandler) History(c echo.Context) error {
	user_id := c.Get("user_id").(uint)

	entries, err := h.loyaltyService.History(c.Request().Context(), user_id)
	if err != nil {
		logger.Error("Failed to load loyalty history", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(entries))
}
