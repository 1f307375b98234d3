// Package metrics exposes Prometheus instrumentation for the engine's
// recompute pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SummaryComputes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "apptrack",
		Subsystem: "analytics",
		Name:      "summary_computes_total",
		Help:      "Full analytics recomputations performed.",
	})

	SummaryCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "apptrack",
		Subsystem: "analytics",
		Name:      "summary_cache_hits_total",
		Help:      "Summary reads served from the memo cache.",
	})

	SummaryComputeSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "apptrack",
		Subsystem: "analytics",
		Name:      "summary_compute_seconds",
		Help:      "Wall time of a full summary computation.",
		Buckets:   prometheus.DefBuckets,
	})

	RecordsImported = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "apptrack",
		Subsystem: "importer",
		Name:      "records_imported_total",
		Help:      "Records added through file imports.",
	})

	InsightsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "apptrack",
		Subsystem: "insights",
		Name:      "generated_total",
		Help:      "Insight sentences emitted.",
	})
)
