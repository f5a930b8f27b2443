package businessflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_query_duration_seconds",
			Help:    "Duration of the inventory report queries",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"query"},
	)

	queryRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "inventory_query_rows",
			Help: "Rows returned by the last run of each report query",
		},
		[]string{"query"},
	)

	fixtureRowsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fixture_rows_loaded_total",
			Help: "Rows inserted by fixture reloads",
		},
		[]string{"entity"},
	)

	fixtureLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fixture_load_duration_seconds",
			Help:    "Duration of complete fixture reloads",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		},
	)
)
