// Package metrics provides the Prometheus registry reference for the
// collection client. Metrics are defined in their owning packages
// (catalog, scheduler, cache) to maintain modularity and avoid
// circular dependencies.
//
// This package documents the full metric inventory.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the client.
// All metrics are automatically registered via promauto in their
// respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Catalog client metrics (pkg/catalog):
//   - catalog_requests_total{endpoint,status} (Counter): requests by endpoint and HTTP status
//   - catalog_request_duration_seconds{endpoint} (Histogram): request duration
//   - catalog_errors_total{class} (Counter): errors by class (client, server, network)
//
// Scheduler metrics (pkg/scheduler):
//   - scheduler_batches_dispatched_total (Counter): batches dispatched
//   - scheduler_documents_total{outcome} (Counter): terminal fetch outcomes (resolved, failed)
//   - scheduler_stale_replies_total (Counter): replies dropped after a new search
//   - scheduler_queue_depth (Gauge): batches pending dispatch
//   - scheduler_pacing_seconds_remaining (Gauge): seconds left in the pacing cycle
//
// Response cache metrics (pkg/cache):
//   - catalog_cache_hits_total{freshness} (Counter): cache hits (fresh, stale)
//   - catalog_cache_misses_total (Counter): cache misses
//   - catalog_cache_revalidations_total (Counter): 304 revalidations
//   - catalog_cache_errors_total{operation} (Counter): cache operation errors
