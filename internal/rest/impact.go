package rest

import (
	"context"
	"net/http"

	"linkFlame/domain"
	"linkFlame/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type ImpactService interface {
	Summary(ctx context.Context, userID uint) (domain.ImpactSummary, error)
}

type ImpactHandler struct {
	impactService ImpactService
}

func NewImpactHandler(impactService ImpactService) *ImpactHandler {
	return &ImpactHandler{
		impactService: impactService,
	}
}

func (h *ImpactHandler) Summary(c echo.Context) error {
	user_id := c.Get("user_id").(uint)

	summary, err := h.impactService.Summary(c.Request().Context(), user_id)
	if err != nil {
		logger.Error("Failed to load impact summary", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(summary))
}
