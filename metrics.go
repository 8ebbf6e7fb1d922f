package wandbox

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wandbox_client",
			Name:      "requests_total",
			Help:      "API requests issued, by endpoint path and method.",
		},
		[]string{"endpoint", "method"},
	)

	requestFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wandbox_client",
			Name:      "request_failures_total",
			Help:      "API requests that ended in a transport, status, or decode error.",
		},
		[]string{"endpoint", "method"},
	)

	streamEventsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wandbox_client",
			Name:      "stream_events_total",
			Help:      "ND-JSON events decoded from compile streams.",
		},
	)
)
