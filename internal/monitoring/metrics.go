package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_http_requests_total",
			Help: "Total number of HTTP requests served by the console",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "console_http_request_duration_seconds",
			Help:    "Duration of HTTP requests served by the console",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_api_requests_total",
			Help: "Requests issued to the clinic API",
		},
		[]string{"method", "endpoint", "status"},
	)

	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clinic_api_request_duration_seconds",
			Help:    "Latency of requests issued to the clinic API",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	SessionEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_session_events_total",
			Help: "Login, logout and restore outcomes",
		},
		[]string{"event", "outcome"},
	)
)

var registerOnce sync.Once

// Init registra las métricas en el registry por defecto. Es idempotente.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestsTotal)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(UpstreamRequests)
		prometheus.MustRegister(UpstreamDuration)
		prometheus.MustRegister(SessionEvents)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveUpstream registra una llamada a la API de la clínica.
func ObserveUpstream(method, endpoint, status string, d time.Duration) {
	UpstreamRequests.WithLabelValues(method, endpoint, status).Inc()
	UpstreamDuration.WithLabelValues(method, endpoint).Observe(d.Seconds())
}

// SessionEvent cuenta un evento de sesión (login, logout, restore).
func SessionEvent(event, outcome string) {
	SessionEvents.WithLabelValues(event, outcome).Inc()
}
