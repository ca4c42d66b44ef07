package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/taskflow/internal/llm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so that tests and multiple servers in one
// process do not collide on global registration.
type Metrics struct {
	registry *prometheus.Registry

	// Plans produced, by the layer that produced them.
	PlansCreated *prometheus.CounterVec

	// Completion call latency in milliseconds.
	LLMCallLatency *prometheus.HistogramVec

	// HTTP request latency in seconds.
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers the TaskFlow collectors plus the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		PlansCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskflow_plans_created_total",
				Help: "Total number of daily plans created",
			},
			[]string{"source"}, // llm_structured, llm_text, keyword_fallback
		),
		LLMCallLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "taskflow_llm_call_latency_ms",
				Help:    "Completion call latency in milliseconds",
				Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~50s
			},
			[]string{"provider", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "taskflow_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 16), // 1ms to ~32s
			},
			[]string{"method", "path", "status"},
		),
	}
}

// RecordPlan counts a produced plan.
func (m *Metrics) RecordPlan(source string) {
	m.PlansCreated.WithLabelValues(source).Inc()
}

// OnCallComplete records completion call latency. It makes Metrics an llm.Observer.
func (m *Metrics) OnCallComplete(event llm.CallEvent) {
	status := "ok"
	if !event.Success {
		status = event.ErrorCode
	}
	m.LLMCallLatency.WithLabelValues(string(event.Provider), status).Observe(float64(event.LatencyMs))
}

// RecordHTTPRequest records a served request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
