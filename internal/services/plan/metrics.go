package plan

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	sourceAI       = "ai"
	sourceFallback = "fallback"
)

// Metrics records plan generation outcomes. A nil *Metrics records nothing.
type Metrics struct {
	generationsTotal   *prometheus.CounterVec
	fallbacksTotal     *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	credentialPresent  prometheus.Gauge
}

// NewMetrics registers the plan metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		generationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sleep_plan_generations_total",
				Help: "Total number of sleep plans returned, by source",
			},
			[]string{"source"},
		),
		fallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sleep_plan_fallbacks_total",
				Help: "Total number of fallback plans served, by failure reason",
			},
			[]string{"reason"},
		),
		generationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sleep_plan_generation_duration_seconds",
				Help:    "Time spent producing a sleep plan, including the upstream call",
				Buckets: []float64{0.01, 0.1, 0.5, 1, 2.5, 5, 10, 20, 40, 60, 90},
			},
			[]string{"source"},
		),
		credentialPresent: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sleep_plan_ai_credential_configured",
				Help: "1 when the text generation credential was present at startup",
			},
		),
	}
}

func (m *Metrics) setCredentialConfigured(configured bool) {
	if m == nil {
		return
	}
	if configured {
		m.credentialPresent.Set(1)
	} else {
		m.credentialPresent.Set(0)
	}
}

func (m *Metrics) observeSuccess(duration time.Duration) {
	if m == nil {
		return
	}
	m.generationsTotal.WithLabelValues(sourceAI).Inc()
	m.generationDuration.WithLabelValues(sourceAI).Observe(duration.Seconds())
}

func (m *Metrics) observeFallback(reason string, duration time.Duration) {
	if m == nil {
		return
	}
	m.generationsTotal.WithLabelValues(sourceFallback).Inc()
	m.fallbacksTotal.WithLabelValues(reason).Inc()
	m.generationDuration.WithLabelValues(sourceFallback).Observe(duration.Seconds())
}
