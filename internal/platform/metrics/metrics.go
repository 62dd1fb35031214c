package metrics

import (
	"net/http"
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	unauthorized    uint64
	rateLimited     uint64
	totalDurationMs uint64
	aiCalls         uint64
	aiFallbacks     uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	switch {
	case status >= 500:
		atomic.AddUint64(&c.errorRequests, 1)
	case status == http.StatusUnauthorized:
		atomic.AddUint64(&c.unauthorized, 1)
	case status == http.StatusTooManyRequests:
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordAI counts an adapter call and whether it fell back.
func (c *Collector) RecordAI(fallback bool) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.aiCalls, 1)
	if fallback {
		atomic.AddUint64(&c.aiFallbacks, 1)
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":     total,
		"errorsTotal":       atomic.LoadUint64(&c.errorRequests),
		"unauthorizedTotal": atomic.LoadUint64(&c.unauthorized),
		"rateLimitedTotal":  atomic.LoadUint64(&c.rateLimited),
		"avgDurationMs":     avg,
		"totalDurationMs":   totalMs,
		"aiCallsTotal":      atomic.LoadUint64(&c.aiCalls),
		"aiFallbacksTotal":  atomic.LoadUint64(&c.aiFallbacks),
	}
}
