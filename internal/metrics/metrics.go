// metrics — Prometheus-коллекторы simo-web: входящие HTTP-запросы,
// вызовы удалённого API и число живых наборов состояния сессий.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "simo_web"

// Metrics — набор коллекторов в собственном реестре.
type Metrics struct {
	reg *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	remoteCalls    *prometheus.CounterVec
	remoteDuration *prometheus.HistogramVec
	viewsActive    prometheus.Gauge
}

// New регистрирует коллекторы; withRuntime добавляет go_* и process_* метрики.
func New(withRuntime bool) *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Incoming HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Incoming HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		remoteCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "remote",
			Name:      "calls_total",
			Help:      "Calls to the remote Simo API by operation and status (0 = transport failure).",
		}, []string{"operation", "status"}),
		remoteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "remote",
			Name:      "call_duration_seconds",
			Help:      "Remote Simo API call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		viewsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "views",
			Name:      "active",
			Help:      "Live per-session view sets.",
		}),
	}

	m.reg.MustRegister(m.httpRequests, m.httpDuration, m.remoteCalls, m.remoteDuration, m.viewsActive)
	if withRuntime {
		m.reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return m
}

// ObserveHTTP учитывает один входящий запрос.
func (m *Metrics) ObserveHTTP(method, route string, status int, dur time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(dur.Seconds())
}

// ObserveRemote учитывает один вызов удалённого API (реализует transport.Observer).
func (m *Metrics) ObserveRemote(operation string, status int, dur time.Duration) {
	m.remoteCalls.WithLabelValues(operation, strconv.Itoa(status)).Inc()
	m.remoteDuration.WithLabelValues(operation).Observe(dur.Seconds())
}

// ViewsActive — gauge для views.Registry.
func (m *Metrics) ViewsActive() prometheus.Gauge { return m.viewsActive }

// Registry — реестр для тестов и внешних экспортеров.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler — /metrics поверх собственного реестра.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
