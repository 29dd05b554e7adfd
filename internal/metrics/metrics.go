package metrics

import (
	"net/http"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/The-Gleb/advertisement_form/internal/domain/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ usecase.SubmissionMetrics = new(Metrics)

const namespace = "advertisement_form"

type Metrics struct {
	registry *prometheus.Registry

	// Submissions counts submit attempts by mode and outcome.
	Submissions *prometheus.CounterVec

	// OpenForms is the number of live form sessions after the last sweep.
	OpenForms prometheus.Gauge

	// SweptForms counts idle sessions dropped by the sweeper.
	SweptForms prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry: registry,
		Submissions: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Total number of form submissions by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
		OpenForms: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "open_forms",
				Help:      "Number of live form sessions",
			},
		),
		SweptForms: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "swept_forms_total",
				Help:      "Total number of idle form sessions dropped",
			},
		),
	}
}

func (m *Metrics) ObserveSubmission(mode entity.Mode, outcome string) {
	m.Submissions.WithLabelValues(string(mode), outcome).Inc()
}

func (m *Metrics) ObserveSweep(swept, open int) {
	m.SweptForms.Add(float64(swept))
	m.OpenForms.Set(float64(open))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
