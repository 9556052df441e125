// Package metrics define y registra las métricas Prometheus del servicio.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics agrupa todas las métricas Prometheus del servicio.
// Se inyecta en usecases y middleware; un puntero nil desactiva la instrumentación.
type Metrics struct {
	// HTTP
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Libro de inventario
	ProductsRegistered prometheus.Counter
	MovementsPosted    *prometheus.CounterVec
	StockRejections    prometheus.Counter

	// Pipeline analítico
	RefreshRuns     *prometheus.CounterVec
	RefreshDuration prometheus.Histogram
}

// New crea y registra todas las métricas en el registry por defecto.
func New() *Metrics {
	return &Metrics{
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sige_http_requests_total",
				Help: "Total de solicitudes HTTP",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sige_http_duration_seconds",
				Help:    "Duración de las solicitudes HTTP",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "sige_http_in_flight",
			Help: "Solicitudes HTTP en curso",
		}),

		ProductsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sige_products_registered_total",
			Help: "Total de productos dados de alta",
		}),
		MovementsPosted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sige_movements_posted_total",
				Help: "Total de movimientos de stock registrados, por dirección",
			},
			[]string{"direction"},
		),
		StockRejections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sige_insufficient_stock_total",
			Help: "Total de salidas rechazadas por stock insuficiente",
		}),

		RefreshRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sige_etl_runs_total",
				Help: "Total de corridas del pipeline analítico, por estado",
			},
			[]string{"status"},
		),
		RefreshDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sige_etl_duration_seconds",
			Help:    "Duración de las corridas del pipeline analítico",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}
}
