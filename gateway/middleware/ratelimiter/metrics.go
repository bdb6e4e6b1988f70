package ratelimiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is safe to use as a nil pointer; every method is a no-op then.
type Metrics struct {
	requests      *prometheus.CounterVec
	backendErrors prometheus.Counter
	swept         prometheus.Counter
	records       prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gateway",
				Subsystem: "ratelimit",
				Name:      "requests_total",
				Help:      "Rate limit decisions by result",
			},
			[]string{"result"},
		),
		backendErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gateway",
			Subsystem: "ratelimit",
			Name:      "backend_errors_total",
			Help:      "Backend failures during rate limit checks; such requests are admitted",
		}),
		swept: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gateway",
			Subsystem: "ratelimit",
			Name:      "swept_records_total",
			Help:      "Expired records removed by the cleanup sweep",
		}),
		records: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "gateway",
			Subsystem: "ratelimit",
			Name:      "records",
			Help:      "Records left after the last cleanup sweep",
		}),
	}
}

func (m *Metrics) observe(allowed bool) {
	if m == nil {
		return
	}
	if allowed {
		m.requests.WithLabelValues("allowed").Inc()
		return
	}
	m.requests.WithLabelValues("rejected").Inc()
}

func (m *Metrics) backendError() {
	if m == nil {
		return
	}
	m.backendErrors.Inc()
}

func (m *Metrics) sweep(removed, remaining int) {
	if m == nil {
		return
	}
	m.swept.Add(float64(removed))
	m.records.Set(float64(remaining))
}
