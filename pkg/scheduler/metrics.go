package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for scheduler operations.
var (
	schedulerBatchesDispatchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_batches_dispatched_total",
		Help: "Total batches dispatched to the fetch pipeline",
	})

	schedulerDocumentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_documents_total",
		Help: "Total document fetch outcomes by terminal state",
	}, []string{"outcome"}) // "resolved", "failed"

	schedulerStaleRepliesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_stale_replies_total",
		Help: "Total replies dropped because a new search superseded them",
	})

	schedulerQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scheduler_queue_depth",
		Help: "Batches currently pending dispatch",
	})

	schedulerPacingRemaining = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scheduler_pacing_seconds_remaining",
		Help: "Seconds remaining in the current pacing cycle",
	})
)
