package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// weather tool server.
type Metrics struct {
	ToolInvocations *prometheus.CounterVec   // labels: tool, outcome={success,error,denied}
	ToolDuration    *prometheus.HistogramVec // labels: tool

	// Upstream API metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: api={geocoding,forecast,imagegen}, outcome={success,error}
	UpstreamDuration *prometheus.HistogramVec // labels: api

	AlertsEmitted prometheus.Counter
	ServerRunning prometheus.Gauge
}

// NewMetrics creates and registers all server metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ToolInvocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_mcp",
			Name:      "tool_invocations_total",
			Help:      "Tool invocations by tool name and outcome.",
		}, []string{"tool", "outcome"}),
		ToolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_mcp",
			Name:      "tool_duration_seconds",
			Help:      "Duration of a complete tool invocation, including upstream calls.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"tool"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_mcp",
			Name:      "upstream_requests_total",
			Help:      "Upstream API requests by API and outcome.",
		}, []string{"api", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_mcp",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"api"}),
		AlertsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_mcp",
			Name:      "alerts_emitted_total",
			Help:      "Total derived weather alerts returned to callers.",
		}),
		ServerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_mcp",
			Name:      "server_running",
			Help:      "1 when the MCP server is serving, 0 when shut down.",
		}),
	}

	prometheus.MustRegister(
		m.ToolInvocations,
		m.ToolDuration,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.AlertsEmitted,
		m.ServerRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ToolInvocations:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_mcp", Name: "tool_invocations_total"}, []string{"tool", "outcome"}),
		ToolDuration:     prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_mcp", Name: "tool_duration_seconds"}, []string{"tool"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_mcp", Name: "upstream_requests_total"}, []string{"api", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_mcp", Name: "upstream_request_duration_seconds"}, []string{"api"}),
		AlertsEmitted:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_mcp", Name: "alerts_emitted_total"}),
		ServerRunning:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_mcp", Name: "server_running"}),
	}
}
