package metrics

import (
	"sync/atomic"
	"time"
)

// Collector tracks request and scoring-engine counters. All methods are safe
// on a nil receiver so wiring stays optional.
type Collector struct {
	totalRequests     uint64
	errorRequests     uint64
	totalDurationMs   uint64
	scoreComputations uint64
	cacheHits         uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) RecordRequest(status int, duration time.Duration) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordScoreComputation() {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.scoreComputations, 1)
}

func (c *Collector) RecordCacheHit() {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.cacheHits, 1)
}

func (c *Collector) Snapshot() map[string]any {
	if c == nil {
		return map[string]any{}
	}
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	computations := atomic.LoadUint64(&c.scoreComputations)
	hits := atomic.LoadUint64(&c.cacheHits)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":          total,
		"errorsTotal":            errs,
		"avgDurationMs":          avg,
		"scoreComputationsTotal": computations,
		"cacheHitsTotal":         hits,
	}
}
