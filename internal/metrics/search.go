package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gcbaptista/catalog-search/services"
)

const namespace = "catalog_search"

// Search and session Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of computed searches",
		},
		[]string{"outcome"}, // "hit" / "miss" / "empty"
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Time to score and rank a catalog for one query",
			Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
		},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of hits per non-empty search",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
	)

	SuggestionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestions_total",
			Help:      "Total number of spelling suggestions returned",
		},
	)

	DebounceCommitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "debounce_commits_total",
			Help:      "Total number of debounced queries committed by sessions",
		},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of live search sessions",
		},
	)

	SessionsExpiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_expired_total",
			Help:      "Total number of sessions removed for being idle",
		},
	)

	CatalogsStored = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalogs_stored",
			Help:      "Number of catalogs held in the catalog store",
		},
	)
)

var registerOnce sync.Once

// RegisterSearchMetrics registers the search and session metrics with the default registry.
// Safe to call more than once.
func RegisterSearchMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			SearchesTotal,
			SearchDuration,
			SearchResults,
			SuggestionsTotal,
			DebounceCommitsTotal,
			ActiveSessions,
			SessionsExpiredTotal,
			CatalogsStored,
		)
	})
}

// Outcome classifies a search result for the searches_total label.
func Outcome(result services.SearchResult) string {
	switch {
	case result.DebouncedQuery == "":
		return "empty"
	case result.ResultCount == 0:
		return "miss"
	default:
		return "hit"
	}
}

// SearchRecorder feeds computed searches into the Prometheus metrics.
type SearchRecorder struct{}

// RecordSearch implements search.Recorder.
func (SearchRecorder) RecordSearch(_ string, result services.SearchResult) {
	outcome := Outcome(result)
	SearchesTotal.WithLabelValues(outcome).Inc()
	SearchDuration.Observe(result.Took.Seconds())
	if outcome != "empty" {
		SearchResults.Observe(float64(result.ResultCount))
	}
	SuggestionsTotal.Add(float64(len(result.Suggestions)))
}
