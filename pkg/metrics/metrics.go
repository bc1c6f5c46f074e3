// Package metrics exposes Prometheus instrumentation for the solve
// pipeline. Relocated and adapted from the teacher's
// internal/service/metrics_service.go, which instrumented HTTP/cache/DB
// traffic for a student-records API; here the same registry pattern
// instruments solve duration, search effort, and cache hit ratio instead.
package metrics

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus collectors for one running process.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	solveDuration   *prometheus.HistogramVec
	solveTotal      *prometheus.CounterVec
	nodesExplored   prometheus.Histogram
	backtracks      prometheus.Histogram
	lastSoftCost    prometheus.Gauge
	cacheHitRatio   prometheus.Gauge
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter

	cacheHitCount  uint64
	cacheMissCount uint64
}

// New registers the collectors and returns a ready-to-use Metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	solveDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solve_duration_seconds",
		Help:    "Duration of the backtracking search of a solve in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	solveTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solve_total",
		Help: "Total number of solves attempted",
	}, []string{"outcome"})

	nodesExplored := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solve_nodes_explored",
		Help:    "Number of search-tree nodes explored per solve",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	backtracks := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solve_backtracks",
		Help:    "Number of backtracks taken per solve",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	lastSoftCost := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solve_last_soft_cost",
		Help: "Soft cost of the most recently completed successful solve",
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solve_cache_hit_ratio",
		Help: "Ratio of memoized-solve cache hits to total lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solve_cache_hits_total",
		Help: "Total memoized-solve cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solve_cache_misses_total",
		Help: "Total memoized-solve cache misses",
	})

	registry.MustRegister(solveDuration, solveTotal, nodesExplored, backtracks, lastSoftCost, cacheHitRatio, cacheHits, cacheMisses)

	return &Metrics{
		registry:      registry,
		handler:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		solveDuration: solveDuration,
		solveTotal:    solveTotal,
		nodesExplored: nodesExplored,
		backtracks:    backtracks,
		lastSoftCost:  lastSoftCost,
		cacheHitRatio: cacheHitRatio,
		cacheHits:     cacheHits,
		cacheMisses:   cacheMisses,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveSolve records one completed solve's outcome, duration, and search
// effort, and updates the soft-cost gauge on success.
func (m *Metrics) ObserveSolve(success bool, duration time.Duration, nodesExplored, backtracks, softCost int) {
	if m == nil {
		return
	}
	outcome := "infeasible"
	if success {
		outcome = "success"
	}
	m.solveDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	m.solveTotal.WithLabelValues(outcome).Inc()
	m.nodesExplored.Observe(float64(nodesExplored))
	m.backtracks.Observe(float64(backtracks))
	if success {
		m.lastSoftCost.Set(float64(softCost))
	}
}

// RecordCacheLookup records a memoized-solve cache hit or miss and updates
// the rolling hit ratio.
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	total := hits + misses
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}
