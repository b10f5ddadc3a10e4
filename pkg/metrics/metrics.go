// Package metrics expone contadores Prometheus de sesiones y exportaciones.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "invoicepro"

// Metrics agrupa los colectores de la aplicación.
type Metrics struct {
	exports  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	sessions prometheus.Gauge
	gatherer prometheus.Gatherer
}

// New registra los colectores en reg. Con un registro propio los tests no chocan con el global.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		exports: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Exportaciones de PDF por motor y resultado.",
		}, []string{"engine", "result"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duración de la generación del PDF.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"engine"}),
		sessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Sesiones de edición vivas.",
		}),
		gatherer: reg,
	}
}

// ObserveExport implementa invoicing.ExportObserver.
func (m *Metrics) ObserveExport(engine string, err error, elapsed time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.exports.WithLabelValues(engine, result).Inc()
	m.duration.WithLabelValues(engine).Observe(elapsed.Seconds())
}

// SetActiveSessions fija el gauge de sesiones vivas.
func (m *Metrics) SetActiveSessions(n int) {
	m.sessions.Set(float64(n))
}

// Handler sirve las métricas en formato de exposición Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
