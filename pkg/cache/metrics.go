package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits by freshness ("fresh" or "stale").
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Total number of catalog response cache hits",
		},
		[]string{"freshness"},
	)

	// CacheMisses tracks cache misses.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_misses_total",
			Help: "Total number of catalog response cache misses",
		},
	)

	// Revalidations tracks 304 Not Modified revalidations of stale entries.
	Revalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_revalidations_total",
			Help: "Total number of stale entries revalidated via 304 responses",
		},
	)

	// CacheErrors tracks cache operation errors by operation
	// ("get", "set", "delete").
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"},
	)
)
