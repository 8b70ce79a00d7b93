package client

import (
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects the requests a Client sends to its node. A nil *Metrics disables the collection.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	statementCache  *prometheus.CounterVec
}

// NewMetrics creates the metrics of a Client and registers them with the given registerer.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	metrics := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catapult_client_requests_total",
				Help: "Number of requests sent to the node by method, route and status code (0 if the node was unreachable).",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catapult_client_request_duration_seconds",
				Help:    "Duration of the answered requests sent to the node.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		statementCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catapult_client_statement_cache_total",
				Help: "Lookups of receipt statements by result (hit or miss).",
			},
			[]string{"result"},
		),
	}

	for _, collector := range []prometheus.Collector{metrics.requests, metrics.requestDuration, metrics.statementCache} {
		if err := registerer.Register(collector); err != nil {
			return nil, errors.Wrap(err, "failed to register client metrics")
		}
	}

	return metrics, nil
}

func (m *Metrics) observe(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	if status != 0 {
		m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	}
}

func (m *Metrics) observeStatementCache(hit bool) {
	if m == nil {
		return
	}

	if hit {
		m.statementCache.WithLabelValues("hit").Inc()
		return
	}
	m.statementCache.WithLabelValues("miss").Inc()
}
