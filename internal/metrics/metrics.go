package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RowsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "renewperf_rows_written_total",
			Help: "Total rows written to raw Parquet files",
		},
		[]string{"dataset"},
	)

	PartitionsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "renewperf_partitions_written_total",
			Help: "Total Parquet partition files written",
		},
		[]string{"dataset"},
	)

	RowsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "renewperf_rows_ingested_total",
			Help: "Total rows merged into the warehouse",
		},
		[]string{"dataset"},
	)

	IngestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "renewperf_ingest_duration_seconds",
			Help:    "Warehouse ingestion duration per file in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"dataset"},
	)
)
