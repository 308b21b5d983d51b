package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for chart rendering.
type Metrics struct {
	registry     *prometheus.Registry
	Renders      *prometheus.CounterVec
	RenderErrors *prometheus.CounterVec
	RenderTime   *prometheus.HistogramVec
	Points       prometheus.Gauge
}

// New creates the collectors on a private registry so several instances (tests,
// multiple servers) never collide on the default one.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Renders: f.NewCounterVec(prometheus.CounterOpts{
			Name: "barchart_renders_total",
			Help: "Chart panes rendered, by pane and output format",
		}, []string{"pane", "format"}),
		RenderErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "barchart_render_errors_total",
			Help: "Chart pane renders that failed, by pane",
		}, []string{"pane"}),
		RenderTime: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "barchart_render_seconds",
			Help:    "Time spent rendering a chart pane",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"pane"}),
		Points: f.NewGauge(prometheus.GaugeOpts{
			Name: "barchart_dataset_points",
			Help: "Number of data points in the currently loaded dataset",
		}),
	}
}

// ObserveRender records one pane render that started at start.
func (m *Metrics) ObserveRender(pane, format string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.RenderTime.WithLabelValues(pane).Observe(time.Since(start).Seconds())
	if err != nil {
		m.RenderErrors.WithLabelValues(pane).Inc()
		return
	}
	m.Renders.WithLabelValues(pane, format).Inc()
}

// SetPoints records the size of the loaded dataset.
func (m *Metrics) SetPoints(n int) {
	if m == nil {
		return
	}
	m.Points.Set(float64(n))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
