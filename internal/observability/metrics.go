package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	FilesScannedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shadowscan_files_scanned_total",
		Help: "Total number of Python files analyzed.",
	})

	FindingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shadowscan_findings_total",
		Help: "Total number of shadowing findings, by message code.",
	}, []string{"code"})

	ParseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "shadowscan_parse_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "shadowscan_analysis_seconds",
		Help:    "Time spent classifying bindings in a parsed file.",
		Buckets: prometheus.DefBuckets,
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shadowscan_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
