// Package metrics exposes the engine's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchesRun = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "routeboard_searches_total",
		Help: "Total number of path searches, labelled by outcome.",
	}, []string{"outcome"})

	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "routeboard_search_duration_ms",
		Help:    "Path search latency in milliseconds.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100},
	})

	CostRecomputes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "routeboard_cost_recomputes_total",
		Help: "Total number of geometric cost recomputation passes.",
	})

	LastPathCost = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "routeboard_last_path_cost",
		Help: "Total cost of the most recent successful path.",
	})

	LastPathLength = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "routeboard_last_path_length",
		Help: "Node count of the most recent successful path.",
	})

	BoardNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "routeboard_board_nodes",
		Help: "Current number of nodes on the board.",
	})

	BoardWires = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "routeboard_board_wires",
		Help: "Current number of wires on the board.",
	})

	Snapshots = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "routeboard_snapshots_total",
		Help: "Total number of snapshot operations, labelled by op and status.",
	}, []string{"op", "status"})
)
