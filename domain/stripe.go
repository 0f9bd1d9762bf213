package domain

// StripeCheckoutSession is the subset of the Checkout Session object this
// service reads back from the Stripe API.
type StripeCheckoutSession struct {
	ID            string `json:"id"`
	Object        string `json:"object"`
	URL           string `json:"url"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
	Customer      string `json:"customer"`
	CustomerEmail string `json:"customer_email"`
	ClientRefID   string `json:"client_reference_id"`
}

// StripePortalSession is the billing portal session response.
type StripePortalSession struct {
	ID       string `json:"id"`
	Object   string `json:"object"`
	URL      string `json:"url"`
	Customer string `json:"customer"`
}

// StripeEvent is the envelope delivered to the webhook endpoint.
type StripeEvent struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object StripeCheckoutSession `json:"object"`
	} `json:"data"`
}
