package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CheckoutSessionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_sessions_created_total",
		Help: "Total number of checkout sessions created",
	})

	CheckoutSessionsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_sessions_failed_total",
		Help: "Total number of failed checkout session creations",
	}, []string{"reason"})

	CartItemsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_items_dropped_total",
		Help: "Total number of cart items dropped because the product no longer exists",
	})

	WebhooksReceivedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "webhooks_received_total",
		Help: "Total number of webhook deliveries received",
	})

	WebhooksRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "webhooks_rejected_total",
		Help: "Total number of webhook deliveries rejected for bad signatures",
	})

	WebhooksIgnoredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webhooks_ignored_total",
		Help: "Total number of webhook deliveries ignored by event type",
	}, []string{"event_type"})

	OrdersFulfilledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_fulfilled_total",
		Help: "Total number of orders persisted",
	})

	OrdersFulfillFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_fulfill_failed_total",
		Help: "Total number of failed fulfillment attempts",
	}, []string{"reason"})

	FulfillmentRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_retries_total",
		Help: "Total number of fulfillment attempts re-queued for retry",
	})

	FormSubmissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "form_submissions_total",
		Help: "Total number of contact form submissions stored",
	})

	FormSubmissionsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "form_submissions_failed_total",
		Help: "Total number of failed contact form submissions",
	}, []string{"reason"})

	CatalogLookupLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_lookup_latency_seconds",
		Help:    "Latency of catalog product lookups",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
