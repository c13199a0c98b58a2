package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TxnMetrics covers the publication pipeline.
type TxnMetrics struct {
	// Terminal dispositions per attempt
	TxnProcessedTotal prometheus.CounterVec

	// Ledger call failures by stage and node error name
	LedgerErrorsTotal prometheus.CounterVec

	// Store writes that failed while the ledger call had already succeeded
	PersistErrorsTotal prometheus.CounterVec

	// Wall time of one full attempt, backoff included
	TxnProcessingDuration prometheus.HistogramVec
}

func NewTxnMetrics() *TxnMetrics {
	return &TxnMetrics{
		TxnProcessedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txn_processed_total",
				Help: "Total processed transactions by terminal disposition",
			},
			[]string{"disposition", "network", "environment"},
		),

		LedgerErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_errors_total",
				Help: "Total ledger call failures by stage and error name",
			},
			[]string{"stage", "error_name"},
		),

		PersistErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "persist_errors_total",
				Help: "Total txn_header writes that failed after the ledger call succeeded",
			},
			[]string{"milestone"},
		),

		TxnProcessingDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "txn_processing_duration_seconds",
				Help:    "Duration of one processing attempt in seconds",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
			},
			[]string{"disposition"},
		),
	}
}
