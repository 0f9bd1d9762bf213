package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"linkFlame/business/billing"
	"linkFlame/domain"
	"linkFlame/internal/repository/stripe"
	"linkFlame/pkg/logger"
	"linkFlame/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type WebhookService interface {
	HandleEvent(ctx context.Context, event domain.StripeEvent, rawPayload []byte) error
}

type WebhookHandler struct {
	webhookService WebhookService
	webhookSecret  string
}

func NewWebhookHandler(webhookService WebhookService, webhookSecret string) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
		webhookSecret:  webhookSecret,
	}
}

// HandleStripeWebhook verifies the signature before anything else touches
// state. A verification failure is terminal (400, Stripe will not retry);
// a critical-path failure returns 500 so Stripe redelivers, which is safe
// because processing is idempotent.
func (h *WebhookHandler) HandleStripeWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		logger.Error("Failed to read webhook body", err)
		return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest("Invalid request"))
	}

	sigHeader := c.Request().Header.Get("Stripe-Signature")
	if err := stripe.VerifySignature(payload, sigHeader, h.webhookSecret, stripe.DefaultSignatureTolerance, time.Now()); err != nil {
		logger.Warn("Rejected webhook with bad signature", "error", err)
		metrics.WebhookEvents.WithLabelValues("invalid_signature").Inc()
		return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest("Invalid signature"))
	}

	var event domain.StripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		logger.Error("Failed to decode webhook event", err)
		return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest("Invalid payload"))
	}

	err = h.webhookService.HandleEvent(c.Request().Context(), event, payload)
	if err != nil {
		if errors.Is(err, billing.ErrUnhandledEventType) {
			// acknowledged but ignored, Stripe should not retry these
			return c.JSON(http.StatusOK, fres.Response.StatusOK("ignored"))
		}
		logger.Error("Failed to process webhook event", "event_id", event.ID, "error", err)
		return c.JSON(http.StatusInternalServerError, fres.Response.StatusInternalServerError(http.StatusInternalServerError))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("ok"))
}
