// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package vault

import "github.com/prometheus/client_golang/prometheus"

const (
	opStore = "store"
	opFetch = "fetch"
	opErase = "erase"

	outcomeStored      = "stored"
	outcomeFetched     = "fetched"
	outcomeErased      = "erased"
	outcomeMissing     = "missing"
	outcomeUnavailable = "unavailable"
	outcomeFailed      = "failed"
)

// Metrics is a prometheus.Collector counting vault operations by
// operation and outcome.
type Metrics struct {
	operations *prometheus.CounterVec
}

// NewMetrics returns a new, unregistered collector.
func NewMetrics() *Metrics {
	return &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rootstore",
			Subsystem: "vault",
			Name:      "operations_total",
			Help:      "Number of vault operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
	}
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.operations.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.operations.Collect(ch)
}

// Operations returns the counter for one operation and outcome.
func (m *Metrics) Operations(operation, outcome string) prometheus.Counter {
	return m.operations.WithLabelValues(operation, outcome)
}

func (m *Metrics) observe(operation, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
}
