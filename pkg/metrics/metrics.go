package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the catalog listing handler
	CatalogQueryLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_query_latency_seconds",
		Help:    "Latency of the product catalog listing handler",
		Buckets: prometheus.DefBuckets,
	})

	// Checkout sessions created against Stripe
	CheckoutSessionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_sessions_created_total",
		Help: "Total number of Stripe checkout sessions created",
	})

	// Webhook deliveries by outcome (processed, duplicate, invalid_signature, failed)
	WebhookEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stripe_webhook_events_total",
		Help: "Total number of Stripe webhook deliveries by outcome",
	}, []string{"outcome"})

	// Requests rejected by the Redis rate limiter
	RateLimitRejections = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_rejections_total",
		Help: "Total number of requests rejected by the rate limiter",
	})
)

func Init() {
	prometheus.MustRegister(
		CatalogQueryLatency,
		CheckoutSessionsCreated,
		WebhookEvents,
		RateLimitRejections,
	)
}
