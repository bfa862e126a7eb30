package transport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for requestsTotal.
const (
	outcomeSuccess     = "success"
	outcomeHTTPError   = "http_error"
	outcomeNetwork     = "network_error"
	outcomeInterceptor = "interceptor_error"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "apitoast",
			Name:      "requests_total",
			Help:      "HTTP calls settled by the transport, by outcome.",
		},
		[]string{"method", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "apitoast",
			Name:      "request_duration_seconds",
			Help:      "Time from dispatch until the HTTP call settled.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)
