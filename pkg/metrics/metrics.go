package metrics

import (
	"sync/atomic"
)

type Metrics struct {
	apiRequestsTotal     int64
	apiFailuresTotal     int64
	cacheHitsTotal       int64
	cacheMissesTotal     int64
	fetchesTotal         int64
	fetchFailuresTotal   int64
	moviesCrawledTotal   int64
	activeDashboardConns int64
}

var global = &Metrics{}

func IncrementAPIRequests() {
	atomic.AddInt64(&global.apiRequestsTotal, 1)
}

func IncrementAPIFailures() {
	atomic.AddInt64(&global.apiFailuresTotal, 1)
}

func IncrementCacheHits() {
	atomic.AddInt64(&global.cacheHitsTotal, 1)
}

func IncrementCacheMisses() {
	atomic.AddInt64(&global.cacheMissesTotal, 1)
}

func IncrementFetches() {
	atomic.AddInt64(&global.fetchesTotal, 1)
}

func IncrementFetchFailures() {
	atomic.AddInt64(&global.fetchFailuresTotal, 1)
}

func AddMoviesCrawled(n int) {
	atomic.AddInt64(&global.moviesCrawledTotal, int64(n))
}

func SetActiveConnections(count int64) {
	atomic.StoreInt64(&global.activeDashboardConns, count)
}

func GetAPIRequests() int64 {
	return atomic.LoadInt64(&global.apiRequestsTotal)
}

func GetAPIFailures() int64 {
	return atomic.LoadInt64(&global.apiFailuresTotal)
}

func GetCacheHits() int64 {
	return atomic.LoadInt64(&global.cacheHitsTotal)
}

func GetCacheMisses() int64 {
	return atomic.LoadInt64(&global.cacheMissesTotal)
}

func GetFetches() int64 {
	return atomic.LoadInt64(&global.fetchesTotal)
}

func GetFetchFailures() int64 {
	return atomic.LoadInt64(&global.fetchFailuresTotal)
}

func GetMoviesCrawled() int64 {
	return atomic.LoadInt64(&global.moviesCrawledTotal)
}

func GetActiveConnections() int64 {
	return atomic.LoadInt64(&global.activeDashboardConns)
}

func Reset() {
	atomic.StoreInt64(&global.apiRequestsTotal, 0)
	atomic.StoreInt64(&global.apiFailuresTotal, 0)
	atomic.StoreInt64(&global.cacheHitsTotal, 0)
	atomic.StoreInt64(&global.cacheMissesTotal, 0)
	atomic.StoreInt64(&global.fetchesTotal, 0)
	atomic.StoreInt64(&global.fetchFailuresTotal, 0)
	atomic.StoreInt64(&global.moviesCrawledTotal, 0)
	atomic.StoreInt64(&global.activeDashboardConns, 0)
	ResetLatency()
}
