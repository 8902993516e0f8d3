// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics exported by the HTTP server.
type Metrics struct {
	// RequestsTotal counts /api/ check requests served.
	RequestsTotal prometheus.Counter
	// ChecksTotal counts domain checks started.
	ChecksTotal prometheus.Counter
	// CheckFailures counts domain checks that ended in failure.
	CheckFailures prometheus.Counter
	// ActiveChecks tracks checks currently in flight.
	ActiveChecks prometheus.Gauge
}

// NewMetrics creates and registers the server metrics on reg. Each server
// owns its own registry so tests can build servers side by side without
// duplicate registration panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "cert_expiry_api_requests_total",
			Help: "Total number of check requests served by the API",
		}),
		ChecksTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "cert_expiry_checks_total",
			Help: "Total number of domain checks started",
		}),
		CheckFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "cert_expiry_check_failures_total",
			Help: "Total number of domain checks that failed",
		}),
		ActiveChecks: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cert_expiry_active_checks",
			Help: "Number of domain checks currently in flight",
		}),
	}
}
