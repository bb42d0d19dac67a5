// Package metrics provides Prometheus instrumentation for the parlour API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns every collector of the service. A nil *Manager is valid and records nothing.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	punches            *prometheus.CounterVec
	broadcasts         *prometheus.CounterVec
	broadcastDeliver   prometheus.Counter
	broadcastDropped   prometheus.Counter
	realtimeClients    prometheus.Gauge
	notifierFailures   *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpRequestLatency *prometheus.HistogramVec
}

// NewManager registers all collectors on a private registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "parlour",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.punches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "attendance",
		Name:      "punches_total",
		Help:      "Punch requests by action and outcome",
	}, []string{"action", "result"})

	m.broadcasts = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "realtime",
		Name:      "broadcasts_total",
		Help:      "Broadcast calls by room and event",
	}, []string{"room", "event"})

	m.broadcastDeliver = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "realtime",
		Name:      "messages_queued_total",
		Help:      "Messages queued to subscriber connections",
	})

	m.broadcastDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "realtime",
		Name:      "messages_dropped_total",
		Help:      "Messages dropped because a subscriber send queue was full",
	})

	m.realtimeClients = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "realtime",
		Name:      "connections",
		Help:      "Currently registered realtime connections",
	})

	m.notifierFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "notify",
		Name:      "failures_total",
		Help:      "Failed or dropped outbound notifications by sink",
	}, []string{"sink"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status code",
	}, []string{"route", "method", "status_code"})

	m.httpRequestLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and method",
		Buckets:   m.histogramBuckets,
	}, []string{"route", "method"})

	m.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry, mainly for tests.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Manager) RecordPunch(action, result string) {
	if m == nil {
		return
	}
	m.punches.WithLabelValues(action, result).Inc()
}

func (m *Manager) RecordBroadcast(room, event string, queued, dropped int) {
	if m == nil {
		return
	}
	m.broadcasts.WithLabelValues(room, event).Inc()
	m.broadcastDeliver.Add(float64(queued))
	m.broadcastDropped.Add(float64(dropped))
}

func (m *Manager) SetRealtimeConnections(n int) {
	if m == nil {
		return
	}
	m.realtimeClients.Set(float64(n))
}

func (m *Manager) RecordNotifierFailure(sink string) {
	if m == nil {
		return
	}
	m.notifierFailures.WithLabelValues(sink).Inc()
}

func (m *Manager) RecordHTTPRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestLatency.WithLabelValues(route, method).Observe(elapsed.Seconds())
}
