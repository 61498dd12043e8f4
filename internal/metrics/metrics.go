package metrics

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// Metric names recorded by the service
const (
	StoreQueries      = "store.queries"
	StoreErrors       = "store.errors"
	SnapshotRefreshes = "snapshot.refreshes"
	SnapshotCacheHits = "snapshot.cache_hits"
	SnapshotMisses    = "snapshot.cache_misses"
	EventsPublished   = "events.published"
	EventsFailed      = "events.failed"
	EventsConsumed    = "events.consumed"
	HTTPRequests      = "http.requests"
	HTTPLatency       = "http.latency"
	SnapshotsCaptured = "progress.snapshots_captured"
)

// TimerMetric summarizes recorded durations
type TimerMetric struct {
	Count         int64   `json:"count"`
	TotalTimeMs   int64   `json:"total_time_ms"`
	AverageTimeMs float64 `json:"average_time_ms"`
	MinTimeMs     int64   `json:"min_time_ms"`
	MaxTimeMs     int64   `json:"max_time_ms"`
}

// ErrorRateMetric summarizes outcomes of an operation
type ErrorRateMetric struct {
	Total     int64   `json:"total"`
	Errors    int64   `json:"errors"`
	ErrorRate float64 `json:"error_rate"`
}

type timerStat struct {
	count, totalMs, minMs, maxMs int64
}

type rateStat struct {
	total, errors int64
}

// Metrics is an in-process collector of counters, gauges, timers, error rates and health flags
type Metrics struct {
	mu         sync.RWMutex
	counters   map[string]*int64
	gauges     map[string]*int64
	timers     map[string]*timerStat
	errorRates map[string]*rateStat
	health     map[string]*int64
	startTime  time.Time
}

// NewMetrics creates an empty collector
func NewMetrics() *Metrics {
	return &Metrics{
		counters:   make(map[string]*int64),
		gauges:     make(map[string]*int64),
		timers:     make(map[string]*timerStat),
		errorRates: make(map[string]*rateStat),
		health:     make(map[string]*int64),
		startTime:  time.Now(),
	}
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default returns the process-wide collector
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = NewMetrics()
	})
	return defaultMetrics
}

// lookup returns the entry for name, creating it with mk under the write lock when missing
func lookup[T any](m *Metrics, table map[string]*T, name string, mk func() *T) *T {
	m.mu.RLock()
	v, ok := table[name]
	m.mu.RUnlock()
	if ok {
		return v
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok = table[name]; !ok {
		v = mk()
		table[name] = v
	}
	return v
}

func newInt() *int64 { return new(int64) }

// IncrementCounter increments a counter by 1
func (m *Metrics) IncrementCounter(name string) {
	m.IncrementCounterBy(name, 1)
}

// IncrementCounterBy increments a counter by value
func (m *Metrics) IncrementCounterBy(name string, value int64) {
	atomic.AddInt64(lookup(m, m.counters, name, newInt), value)
}

// SetGauge sets a gauge to value
func (m *Metrics) SetGauge(name string, value int64) {
	atomic.StoreInt64(lookup(m, m.gauges, name, newInt), value)
}

// RecordDuration records a timing sample
func (m *Metrics) RecordDuration(name string, d time.Duration) {
	ms := d.Milliseconds()
	t := lookup(m, m.timers, name, func() *timerStat {
		return &timerStat{minMs: math.MaxInt64}
	})

	atomic.AddInt64(&t.count, 1)
	atomic.AddInt64(&t.totalMs, ms)
	for {
		cur := atomic.LoadInt64(&t.minMs)
		if ms >= cur || atomic.CompareAndSwapInt64(&t.minMs, cur, ms) {
			break
		}
	}
	for {
		cur := atomic.LoadInt64(&t.maxMs)
		if ms <= cur || atomic.CompareAndSwapInt64(&t.maxMs, cur, ms) {
			break
		}
	}
}

// RecordOutcome records a success or failure for error rate tracking
func (m *Metrics) RecordOutcome(name string, err error) {
	r := lookup(m, m.errorRates, name, func() *rateStat { return &rateStat{} })
	atomic.AddInt64(&r.total, 1)
	if err != nil {
		atomic.AddInt64(&r.errors, 1)
	}
}

// SetHealth flags a component as healthy or not
func (m *Metrics) SetHealth(component string, healthy bool) {
	var v int64
	if healthy {
		v = 1
	}
	atomic.StoreInt64(lookup(m, m.health, component, newInt), v)
}

// Counter returns the current value of a counter
func (m *Metrics) Counter(name string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.counters[name]; ok {
		return atomic.LoadInt64(c)
	}
	return 0
}

// GetCounters returns all counters
func (m *Metrics) GetCounters() map[string]int64 {
	return m.loadAll(m.counters)
}

// GetGauges returns all gauges
func (m *Metrics) GetGauges() map[string]int64 {
	return m.loadAll(m.gauges)
}

func (m *Metrics) loadAll(table map[string]*int64) map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]int64, len(table))
	for name, v := range table {
		out[name] = atomic.LoadInt64(v)
	}
	return out
}

// GetTimers returns all timers
func (m *Metrics) GetTimers() map[string]TimerMetric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]TimerMetric, len(m.timers))
	for name, t := range m.timers {
		count := atomic.LoadInt64(&t.count)
		total := atomic.LoadInt64(&t.totalMs)
		tm := TimerMetric{
			Count:       count,
			TotalTimeMs: total,
			MinTimeMs:   atomic.LoadInt64(&t.minMs),
			MaxTimeMs:   atomic.LoadInt64(&t.maxMs),
		}
		if count > 0 {
			tm.AverageTimeMs = float64(total) / float64(count)
		}
		out[name] = tm
	}
	return out
}

// GetErrorRates returns all error rates
func (m *Metrics) GetErrorRates() map[string]ErrorRateMetric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]ErrorRateMetric, len(m.errorRates))
	for name, r := range m.errorRates {
		total := atomic.LoadInt64(&r.total)
		errs := atomic.LoadInt64(&r.errors)
		em := ErrorRateMetric{Total: total, Errors: errs}
		if total > 0 {
			em.ErrorRate = float64(errs) / float64(total) * 100
		}
		out[name] = em
	}
	return out
}

// GetHealthChecks returns all health flags
func (m *Metrics) GetHealthChecks() map[string]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]bool, len(m.health))
	for name, h := range m.health {
		out[name] = atomic.LoadInt64(h) > 0
	}
	return out
}

// GetUptimeSeconds returns the collector's age in seconds
func (m *Metrics) GetUptimeSeconds() int64 {
	return int64(time.Since(m.startTime).Seconds())
}

// GetAllMetrics returns every metric in a structured document
func (m *Metrics) GetAllMetrics() map[string]interface{} {
	return map[string]interface{}{
		"uptime_seconds": m.GetUptimeSeconds(),
		"counters":       m.GetCounters(),
		"gauges":         m.GetGauges(),
		"timers":         m.GetTimers(),
		"error_rates":    m.GetErrorRates(),
		"health_checks":  m.GetHealthChecks(),
	}
}
