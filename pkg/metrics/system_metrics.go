package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

type latencyMetrics struct {
	samples     atomic.Int64
	averageMs   atomic.Int64
	peakMs      atomic.Int64
	mu          sync.Mutex
	lastResetAt time.Time
}

var latency = &latencyMetrics{lastResetAt: time.Now()}

// RecordLatency folds one request duration into the running average and peak.
func RecordLatency(d time.Duration) {
	ms := d.Milliseconds()

	latency.mu.Lock()
	n := latency.samples.Add(1)
	current := latency.averageMs.Load()
	latency.averageMs.Store((current*(n-1) + ms) / n)
	if ms > latency.peakMs.Load() {
		latency.peakMs.Store(ms)
	}
	latency.mu.Unlock()
}

func ResetLatency() {
	latency.mu.Lock()
	latency.samples.Store(0)
	latency.averageMs.Store(0)
	latency.peakMs.Store(0)
	latency.lastResetAt = time.Now()
	latency.mu.Unlock()
}

func GetUptime() time.Duration {
	latency.mu.Lock()
	defer latency.mu.Unlock()
	return time.Since(latency.lastResetAt)
}

func GetSystemMetrics() map[string]int64 {
	return map[string]int64{
		"latency_samples":    latency.samples.Load(),
		"average_latency_ms": latency.averageMs.Load(),
		"peak_latency_ms":    latency.peakMs.Load(),
		"uptime_seconds":     int64(GetUptime().Seconds()),
	}
}
