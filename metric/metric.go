package metric

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa os coletores da aplicação num registry próprio.
type Metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	pixPayloads   prometheus.Counter
	mbwayPayloads prometheus.Counter
	confirmations *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, route and status class",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
			},
			[]string{"method", "route"},
		),
		pixPayloads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pix_payloads_generated_total",
			Help: "Total number of PIX BR Code payloads generated",
		}),
		mbwayPayloads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mbway_payloads_generated_total",
			Help: "Total number of MB WAY payloads generated",
		}),
		confirmations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "confirmations_saved_total",
				Help: "Total number of RSVP confirmations saved by backend",
			},
			[]string{"backend"},
		),
	}

	m.registry.MustRegister(m.requests, m.duration, m.pixPayloads, m.mbwayPayloads, m.confirmations)
	return m
}

func (m *Metrics) Request(method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, statusClass(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) PixGenerated() {
	m.pixPayloads.Inc()
}

func (m *Metrics) MbwayGenerated() {
	m.mbwayPayloads.Inc()
}

func (m *Metrics) ConfirmationSaved(backend string) {
	m.confirmations.WithLabelValues(backend).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func statusClass(status int) string {
	return strconv.Itoa(status/100) + "xx"
}
