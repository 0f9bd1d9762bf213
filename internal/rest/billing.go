package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"linkFlame/business/billing"
	"linkFlame/domain"
	"linkFlame/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type BillingService interface {
	CreateCheckout(ctx context.Context, userID uint) (domain.CheckoutResult, error)
	CreatePortal(ctx context.Context, userID uint) (domain.StripePortalSession, error)
	Usage(ctx context.Context, userID uint) (domain.UsageSummary, error)
	ListEvents(ctx context.Context, limit int) ([]domain.BillingEvent, error)
}

type BillingHandler struct {
	billingService BillingService
}

func NewBillingHandler(billingService BillingService) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
	}
}

func (h *BillingHandler) Checkout(c echo.Context) error {
	user_id := c.Get("user_id").(uint)

	result, err := h.billingService.CreateCheckout(c.Request().Context(), user_id)
	if err != nil {
		logger.Error("Failed to create checkout", err)
		if errors.Is(err, billing.ErrEmptyCart) || errors.Is(err, billing.ErrNotEnoughStock) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(result))
}

func (h *BillingHandler) Portal(c echo.Context) error {
	user_id := c.Get("user_id").(uint)

	session, err := h.billingService.CreatePortal(c.Request().Context(), user_id)
	if err != nil {
		logger.Error("Failed to create billing portal session", err)
		if errors.Is(err, billing.ErrNoOrganization) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(session))
}

func (h *BillingHandler) Usage(c echo.Context) error {
	user_id := c.Get("user_id").(uint)

	summary, err := h.billingService.Usage(c.Request().Context(), user_id)
	if err != nil {
		logger.Error("Failed to compute usage", err)
		if errors.Is(err, billing.ErrNoOrganization) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(summary))
}

func (h *BillingHandler) ListEvents(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	events, err := h.billingService.ListEvents(c.Request().Context(), limit)
	if err != nil {
		logger.Error("Failed to list billing events", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(events))
}
