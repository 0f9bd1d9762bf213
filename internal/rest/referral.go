package rest

import (
	"context"
	"errors"
	"net/http"

	"linkFlame/business/referral"
	"linkFlame/domain"
	"linkFlame/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type ReferralService interface {
	CreateCode(ctx context.Context, userID uint) (domain.Referral, error)
	ValidateCode(ctx context.Context, code string) (domain.Referral, error)
	ListMine(ctx context.Context, userID uint) ([]domain.Referral, error)
}

type ReferralHandler struct {
	referralService ReferralService
}

func NewReferralHandler(referralService ReferralService) *ReferralHandler {
	return &ReferralHandler{
		referralService: referralService,
	}
}

func (h *ReferralHandler) CreateCode(c echo.Context) error {
	user_id := c.Get("user_id").(uint)

	ref, err := h.referralService.CreateCode(c.Request().Context(), user_id)
	if err != nil {
		logger.Error("Failed to create referral code", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(ref))
}

// ValidateCode is public so the signup form can check a code before
// the account exists.
func (h *ReferralHandler) ValidateCode(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing code parameter"})
	}

	ref, err := h.referralService.ValidateCode(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, referral.ErrInvalidCode) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if errors.Is(err, referral.ErrCodeUsed) {
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"valid": true,
		"code":  ref.Code,
	})
}

func (h *ReferralHandler) ListMine(c echo.Context) error {
	user_id := c.Get("user_id").(uint)

	refs, err := h.referralService.ListMine(c.Request().Context(), user_id)
	if err != nil {
		logger.Error("Failed to list referrals", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(refs))
}
