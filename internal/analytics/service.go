package analytics

import (
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gcbaptista/catalog-search/internal/logger"
	"github.com/gcbaptista/catalog-search/model"
	"github.com/gcbaptista/catalog-search/services"
)

const (
	maxEventsToKeep   = 10000 // Keep last 10k events for performance
	topQueriesToShow  = 5
	bucketUnder1ms    = time.Millisecond
	bucketUnder5ms    = 5 * time.Millisecond
	bucketUnder25ms   = 25 * time.Millisecond
	percentMultiplier = 100.0
)

// Service records committed searches and summarizes them.
// Zero-result queries are the input for tuning synonyms and typo budgets.
type Service struct {
	mutex          sync.RWMutex
	events         []model.SearchEvent
	catalogManager services.CatalogManager
	now            func() time.Time
	logger         *zap.Logger
}

// NewService creates a new analytics service. catalogManager may be nil.
func NewService(catalogManager services.CatalogManager, l *zap.Logger) *Service {
	return &Service{
		events:         make([]model.SearchEvent, 0),
		catalogManager: catalogManager,
		now:            time.Now,
		logger:         logger.OrNop(l),
	}
}

// RecordSearch implements search.Recorder. Empty queries are not tracked.
func (s *Service) RecordSearch(catalogID string, result services.SearchResult) {
	if result.DebouncedQuery == "" {
		return
	}

	event := model.SearchEvent{
		CatalogID:       catalogID,
		Query:           strings.ToLower(result.DebouncedQuery),
		ResponseTime:    result.Took,
		ResultCount:     result.ResultCount,
		SuggestionCount: len(result.Suggestions),
	}
	if len(result.Hits) > 0 {
		event.TopMatchedField = result.Hits[0].MatchedField
	}
	s.TrackSearchEvent(event)
}

// TrackSearchEvent records a new search event
func (s *Service) TrackSearchEvent(event model.SearchEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
}

// EventCount returns the number of retained events.
func (s *Service) EventCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.events)
}

// GetDashboardData returns complete analytics dashboard data
func (s *Service) GetDashboardData() model.AnalyticsDashboard {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	zeroResults := s.filterZeroResults(s.events)

	dashboard := model.AnalyticsDashboard{
		TotalSearches:            len(s.events),
		ZeroResultSearches:       len(zeroResults),
		AvgResponseTimeUs:        s.calculateAvgResponseTime(s.events),
		PopularSearches:          s.getPopularSearches(s.events),
		ZeroResultQueries:        s.getPopularSearches(zeroResults),
		CatalogUsage:             s.getCatalogUsage(s.events),
		MatchedFields:            s.getMatchedFieldStats(s.events),
		ResponseTimeDistribution: s.getResponseTimeDistribution(s.events),
	}
	if dashboard.TotalSearches > 0 {
		dashboard.ZeroResultRate = float64(dashboard.ZeroResultSearches) / float64(dashboard.TotalSearches) * percentMultiplier
	}
	if s.catalogManager != nil {
		dashboard.ActiveCatalogs = len(s.catalogManager.List())
	}

	s.logger.Debug("analytics dashboard computed", zap.Int("events", dashboard.TotalSearches))
	return dashboard
}

// filterZeroResults returns events that produced no hits
func (s *Service) filterZeroResults(events []model.SearchEvent) []model.SearchEvent {
	filtered := make([]model.SearchEvent, 0)
	for _, event := range events {
		if event.ResultCount == 0 {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// calculateAvgResponseTime calculates average response time for events in microseconds
func (s *Service) calculateAvgResponseTime(events []model.SearchEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	avgDuration := total / time.Duration(len(events))
	return avgDuration.Microseconds()
}

// getPopularSearches returns the most frequent queries
func (s *Service) getPopularSearches(events []model.SearchEvent) []model.PopularSearch {
	queryCounts := make(map[string]int)
	for _, event := range events {
		queryCounts[event.Query]++
	}

	popular := make([]model.PopularSearch, 0, len(queryCounts))
	for query, count := range queryCounts {
		popular = append(popular, model.PopularSearch{Query: query, SearchCount: count})
	}

	// Sort by count descending, then alphabetically for a stable order
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].SearchCount != popular[j].SearchCount {
			return popular[i].SearchCount > popular[j].SearchCount
		}
		return popular[i].Query < popular[j].Query
	})

	if len(popular) > topQueriesToShow {
		popular = popular[:topQueriesToShow]
	}
	return popular
}

// getCatalogUsage returns search counts per catalog, including stored catalogs that were never searched
func (s *Service) getCatalogUsage(events []model.SearchEvent) []model.CatalogUsage {
	searchCounts := make(map[string]int)
	for _, event := range events {
		searchCounts[event.CatalogID]++
	}

	itemCounts := make(map[string]int)
	if s.catalogManager != nil {
		for _, catalogID := range s.catalogManager.List() {
			if _, seen := searchCounts[catalogID]; !seen {
				searchCounts[catalogID] = 0
			}
			if catalog, err := s.catalogManager.Get(catalogID); err == nil {
				itemCounts[catalogID] = len(catalog.Items)
			}
		}
	}

	usage := make([]model.CatalogUsage, 0, len(searchCounts))
	for catalogID, count := range searchCounts {
		usage = append(usage, model.CatalogUsage{
			CatalogID:   catalogID,
			ItemCount:   itemCounts[catalogID],
			SearchCount: count,
		})
	}

	sort.Slice(usage, func(i, j int) bool {
		if usage[i].SearchCount != usage[j].SearchCount {
			return usage[i].SearchCount > usage[j].SearchCount
		}
		return usage[i].CatalogID < usage[j].CatalogID
	})
	return usage
}

// getMatchedFieldStats counts searches by the field of their top hit
func (s *Service) getMatchedFieldStats(events []model.SearchEvent) model.MatchedFieldStats {
	stats := model.MatchedFieldStats{}

	for _, event := range events {
		switch event.TopMatchedField {
		case model.MatchedFieldTitle:
			stats.Title++
		case model.MatchedFieldDescription:
			stats.Description++
		case model.MatchedFieldTag:
			stats.Tag++
		case model.MatchedFieldCategory:
			stats.Category++
		default:
			stats.NoResults++
		}
	}

	return stats
}

// getResponseTimeDistribution returns response time distribution
func (s *Service) getResponseTimeDistribution(events []model.SearchEvent) model.ResponseTimeDistribution {
	dist := model.ResponseTimeDistribution{}
	total := len(events)

	if total == 0 {
		return dist
	}

	for _, event := range events {
		switch {
		case event.ResponseTime < bucketUnder1ms:
			dist.BucketUnder1ms++
		case event.ResponseTime < bucketUnder5ms:
			dist.Bucket1To5ms++
		case event.ResponseTime < bucketUnder25ms:
			dist.Bucket5To25ms++
		default:
			dist.Bucket25msPlus++
		}
	}

	// Calculate percentages
	dist.PercentageUnder1 = float64(dist.BucketUnder1ms) / float64(total) * percentMultiplier
	dist.Percentage1To5 = float64(dist.Bucket1To5ms) / float64(total) * percentMultiplier
	dist.Percentage5To25 = float64(dist.Bucket5To25ms) / float64(total) * percentMultiplier
	dist.Percentage25Plus = float64(dist.Bucket25msPlus) / float64(total) * percentMultiplier

	return dist
}
