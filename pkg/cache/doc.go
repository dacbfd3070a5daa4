// Package cache provides a Redis-backed HTTP response cache for the
// collection API.
//
// The upstream catalog rate-limits aggressively, so every response the
// service allows caching is kept and reused. The cache works at the
// transport level, below the per-search document store: it holds raw
// response bodies keyed by request URL and is consulted before any
// network round trip.
//
// Freshness follows the upstream Expires header, with a fallback TTL
// when the header is absent. Entries are kept in Redis slightly past
// their expiry so a stale entry with an ETag can be revalidated with a
// conditional request instead of a full fetch.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient)
//
//	key := cache.KeyForURL("https://collectionapi.metmuseum.org/public/collection/v1/objects/436535")
//	entry, err := manager.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// fetch from the network
//	}
//
// # Metrics
//
// The cache exports Prometheus metrics:
//
//   - catalog_cache_hits_total{freshness} - Cache hits (fresh or stale)
//   - catalog_cache_misses_total - Cache misses
//   - catalog_cache_errors_total{operation} - Cache operation errors
//   - catalog_cache_revalidations_total - 304 Not Modified revalidations
package cache
