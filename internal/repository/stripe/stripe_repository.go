package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"linkFlame/domain"
)

type StripeConfig struct {
	SecretKey       string
	APIBaseUrl      string
	SuccessUrl      string
	CancelUrl       string
	PortalReturnUrl string
}

type StripeRepository struct {
	stripeConfig StripeConfig
	client       *http.Client
}

func NewStripeRepository(cfg StripeConfig) *StripeRepository {
	return &StripeRepository{
		stripeConfig: cfg,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

type SessionLineItem struct {
	Name     string
	Amount   float64
	Quantity int64
	Currency string
}

// CreateCheckoutSession opens a Stripe Checkout Session for the given pending
// order. The order id travels in client_reference_id so the webhook can match
// the session back without metadata.
func (r *StripeRepository) CreateCheckoutSession(ctx context.Context, orderID uint64, customerEmail string, items []SessionLineItem) (domain.StripeCheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("client_reference_id", strconv.FormatUint(orderID, 10))
	form.Set("customer_email", customerEmail)
	form.Set("success_url", r.stripeConfig.SuccessUrl)
	form.Set("cancel_url", r.stripeConfig.CancelUrl)

	for i, item := range items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		currency := item.Currency
		if currency == "" {
			currency = "usd"
		}
		form.Set(prefix+"[price_data][currency]", currency)
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		// Stripe wants the unit amount in the smallest currency unit.
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(int64(item.Amount*100), 10))
		form.Set(prefix+"[quantity]", strconv.FormatInt(item.Quantity, 10))
	}

	var session domain.StripeCheckoutSession
	if err := r.postForm(ctx, "/v1/checkout/sessions", form, &session); err != nil {
		return domain.StripeCheckoutSession{}, err
	}

	return session, nil
}

// CreatePortalSession opens a billing portal session for an existing Stripe
// customer.
func (r *StripeRepository) CreatePortalSession(ctx context.Context, customerID string) (domain.StripePortalSession, error) {
	form := url.Values{}
	form.Set("customer", customerID)
	form.Set("return_url", r.stripeConfig.PortalReturnUrl)

	var session domain.StripePortalSession
	if err := r.postForm(ctx, "/v1/billing_portal/sessions", form, &session); err != nil {
		return domain.StripePortalSession{}, err
	}

	return session, nil
}

type stripeErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (r *StripeRepository) postForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.stripeConfig.APIBaseUrl+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(r.stripeConfig.SecretKey, "")

	res, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var stripeErr stripeErrorResponse
		if err := json.Unmarshal(body, &stripeErr); err == nil && stripeErr.Error.Message != "" {
			return fmt.Errorf("stripe api error (%s): %s", stripeErr.Error.Type, stripeErr.Error.Message)
		}
		return fmt.Errorf("stripe api returned status %d", res.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode stripe response: %w", err)
	}

	return nil
}
