package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SnapshotsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mina_insight_snapshots_total",
		Help: "Insight snapshots computed, by period.",
	}, []string{"period"})

	SnapshotFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mina_insight_snapshot_failures_total",
		Help: "Snapshot requests that failed while loading entries.",
	})

	SnapshotDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mina_insight_snapshot_seconds",
		Help:    "Time spent loading entries and aggregating a snapshot.",
		Buckets: prometheus.DefBuckets,
	}, []string{"period"})

	EntriesAggregated = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mina_insight_entries_aggregated",
		Help:    "Number of entries fed into a single aggregation.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	AnalysesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mina_insight_analyses_total",
		Help: "Written analyses generated.",
	})

	EntriesWrittenTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mina_journal_entries_written_total",
		Help: "Journal entries stored, by source.",
	}, []string{"source"})
)
