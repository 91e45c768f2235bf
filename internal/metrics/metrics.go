// Package metrics exposes Prometheus collectors for the server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Curator finding kinds.
const (
	FindingDuplicate       = "duplicate"
	FindingPattern         = "pattern"
	FindingCategoryApplied = "category_applied"
	FindingCategoryQueued  = "category_queued"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	rpcRequests *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec
	aiRequests  *prometheus.CounterVec
	findings    *prometheus.CounterVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "famledger",
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "famledger",
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		aiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "famledger",
			Name:      "ai_requests_total",
			Help:      "Calls to the AI provider by provider, kind and outcome.",
		}, []string{"provider", "kind", "outcome"}),
		findings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "famledger",
			Name:      "curator_findings_total",
			Help:      "Curator findings by kind.",
		}, []string{"kind"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.rpcRequests,
		m.rpcDuration,
		m.aiRequests,
		m.findings,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry (tests gather from it).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RPC records one completed call.
func (m *Metrics) RPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(d.Seconds())
}

// AIRequest records one provider call.
func (m *Metrics) AIRequest(provider, kind string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.aiRequests.WithLabelValues(provider, kind, outcome).Inc()
}

// CuratorFindings adds n findings of kind.
func (m *Metrics) CuratorFindings(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.findings.WithLabelValues(kind).Add(float64(n))
}
