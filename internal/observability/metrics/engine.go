package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics collects retrieval engine counters on a private registry.
// All methods are safe on a nil receiver so metrics stay optional.
type EngineMetrics struct {
	registry *prometheus.Registry

	corpusLoads   prometheus.Counter
	docsLoaded    prometheus.Counter
	docsSkipped   prometheus.Counter
	queriesTotal  *prometheus.CounterVec
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	queryDuration prometheus.Histogram
}

func NewEngineMetrics() *EngineMetrics {
	registry := prometheus.NewRegistry()

	m := &EngineMetrics{
		registry: registry,
		corpusLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "docsearch",
			Subsystem: "corpus",
			Name:      "loads_total",
			Help:      "Successful corpus loads.",
		}),
		docsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "docsearch",
			Subsystem: "corpus",
			Name:      "documents_loaded_total",
			Help:      "Documents read into the content store.",
		}),
		docsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "docsearch",
			Subsystem: "corpus",
			Name:      "documents_skipped_total",
			Help:      "Documents skipped during load due to read errors.",
		}),
		queriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docsearch",
			Subsystem: "retrieve",
			Name:      "queries_total",
			Help:      "Retrieval queries processed.",
		}, []string{"category"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "docsearch",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Response cache hits.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "docsearch",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Response cache misses.",
		}),
		queryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "docsearch",
			Subsystem: "retrieve",
			Name:      "query_duration_seconds",
			Help:      "End-to-end retrieval duration.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		m.corpusLoads,
		m.docsLoaded,
		m.docsSkipped,
		m.queriesTotal,
		m.cacheHits,
		m.cacheMisses,
		m.queryDuration,
	)

	return m
}

// Registry exposes the underlying registry so a serving layer can mount it.
func (m *EngineMetrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *EngineMetrics) CorpusLoaded(docs int) {
	if m == nil {
		return
	}
	m.corpusLoads.Inc()
	m.docsLoaded.Add(float64(docs))
}

func (m *EngineMetrics) DocumentSkipped() {
	if m == nil {
		return
	}
	m.docsSkipped.Inc()
}

func (m *EngineMetrics) Query(category string, cacheHit bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.queriesTotal.WithLabelValues(category).Inc()
	if cacheHit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
	m.queryDuration.Observe(elapsed.Seconds())
}
