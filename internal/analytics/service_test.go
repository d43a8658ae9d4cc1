package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/catalog-search/internal/errors"
	"github.com/gcbaptista/catalog-search/model"
	"github.com/gcbaptista/catalog-search/services"
)

// mockCatalogManager is a simple in-memory catalog manager for testing
type mockCatalogManager struct {
	catalogs map[string]*model.Catalog
}

func (m *mockCatalogManager) Put(catalog model.Catalog) (*model.Catalog, error) {
	m.catalogs[catalog.ID] = &catalog
	return &catalog, nil
}

func (m *mockCatalogManager) Get(catalogID string) (*model.Catalog, error) {
	catalog, ok := m.catalogs[catalogID]
	if !ok {
		return nil, errors.NewCatalogNotFoundError(catalogID)
	}
	return catalog, nil
}

func (m *mockCatalogManager) Delete(catalogID string) error {
	delete(m.catalogs, catalogID)
	return nil
}

func (m *mockCatalogManager) List() []string {
	ids := make([]string, 0, len(m.catalogs))
	for id := range m.catalogs {
		ids = append(ids, id)
	}
	return ids
}

func newMockCatalogManager() *mockCatalogManager {
	return &mockCatalogManager{catalogs: map[string]*model.Catalog{
		"cafe": {ID: "cafe", Items: []model.CatalogItem{{ID: "a", Title: "Latte"}, {ID: "b", Title: "Mocha"}}},
		"deli": {ID: "deli", Items: []model.CatalogItem{{ID: "c", Title: "Bagel"}}},
	}}
}

func TestAnalyticsService_TrackSearchEvent(t *testing.T) {
	service := NewService(nil, nil)

	service.TrackSearchEvent(model.SearchEvent{
		CatalogID:    "cafe",
		Query:        "latte",
		ResponseTime: 50 * time.Microsecond,
		ResultCount:  2,
	})

	require.Equal(t, 1, service.EventCount())
	assert.False(t, service.events[0].Timestamp.IsZero(), "timestamp should be filled in")
}

func TestAnalyticsService_TrackSearchEventKeepsTimestamp(t *testing.T) {
	service := NewService(nil, nil)
	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	service.TrackSearchEvent(model.SearchEvent{CatalogID: "cafe", Query: "tea", Timestamp: stamp})

	assert.Equal(t, stamp, service.events[0].Timestamp)
}

func TestAnalyticsService_EventsAreBounded(t *testing.T) {
	service := NewService(nil, nil)

	for i := 0; i < maxEventsToKeep+25; i++ {
		service.TrackSearchEvent(model.SearchEvent{CatalogID: "cafe", Query: "tea", ResultCount: i})
	}

	require.Equal(t, maxEventsToKeep, service.EventCount())
	assert.Equal(t, 25, service.events[0].ResultCount, "oldest events should be dropped first")
}

func TestAnalyticsService_RecordSearch(t *testing.T) {
	service := NewService(nil, nil)

	service.RecordSearch("cafe", services.SearchResult{
		Query:          "Latte ",
		DebouncedQuery: "Latte",
		Hits: []services.HitResult{
			{Item: model.CatalogItem{ID: "a", Title: "Latte"}, Score: 114.5, MatchedField: model.MatchedFieldTitle},
		},
		ResultCount: 1,
		Took:        2 * time.Millisecond,
	})
	service.RecordSearch("cafe", services.SearchResult{
		DebouncedQuery: "xyz",
		Suggestions:    []string{"tea"},
	})

	require.Equal(t, 2, service.EventCount())

	first := service.events[0]
	assert.Equal(t, "cafe", first.CatalogID)
	assert.Equal(t, "latte", first.Query)
	assert.Equal(t, model.MatchedFieldTitle, first.TopMatchedField)
	assert.Equal(t, 2*time.Millisecond, first.ResponseTime)

	second := service.events[1]
	assert.Equal(t, model.MatchedField(""), second.TopMatchedField)
	assert.Equal(t, 1, second.SuggestionCount)
}

func TestAnalyticsService_RecordSearchSkipsEmptyQuery(t *testing.T) {
	service := NewService(nil, nil)

	service.RecordSearch("cafe", services.SearchResult{DebouncedQuery: ""})

	assert.Zero(t, service.EventCount())
}

func TestAnalyticsService_GetDashboardDataEmpty(t *testing.T) {
	service := NewService(nil, nil)

	dashboard := service.GetDashboardData()

	assert.Zero(t, dashboard.TotalSearches)
	assert.Zero(t, dashboard.ZeroResultRate)
	assert.Zero(t, dashboard.AvgResponseTimeUs)
	assert.Zero(t, dashboard.ActiveCatalogs)
	assert.Empty(t, dashboard.PopularSearches)
	assert.Empty(t, dashboard.ZeroResultQueries)
	assert.Empty(t, dashboard.CatalogUsage)
	assert.Equal(t, model.ResponseTimeDistribution{}, dashboard.ResponseTimeDistribution)
}

func TestAnalyticsService_GetDashboardData(t *testing.T) {
	service := NewService(newMockCatalogManager(), nil)

	events := []model.SearchEvent{
		{CatalogID: "cafe", Query: "latte", ResultCount: 2, TopMatchedField: model.MatchedFieldTitle, ResponseTime: 500 * time.Microsecond},
		{CatalogID: "cafe", Query: "latte", ResultCount: 2, TopMatchedField: model.MatchedFieldTitle, ResponseTime: 700 * time.Microsecond},
		{CatalogID: "cafe", Query: "veg", ResultCount: 3, TopMatchedField: model.MatchedFieldTag, ResponseTime: 2 * time.Millisecond},
		{CatalogID: "cafe", Query: "xyzzy", ResultCount: 0, ResponseTime: 10 * time.Millisecond},
		{CatalogID: "cafe", Query: "qqq", ResultCount: 0, ResponseTime: 40 * time.Millisecond},
		{CatalogID: "cafe", Query: "xyzzy", ResultCount: 0, ResponseTime: 6800 * time.Microsecond},
	}
	for _, event := range events {
		service.TrackSearchEvent(event)
	}

	dashboard := service.GetDashboardData()

	assert.Equal(t, 6, dashboard.TotalSearches)
	assert.Equal(t, 3, dashboard.ZeroResultSearches)
	assert.InDelta(t, 50.0, dashboard.ZeroResultRate, 0.001)
	assert.Equal(t, int64(10000), dashboard.AvgResponseTimeUs)
	assert.Equal(t, 2, dashboard.ActiveCatalogs)

	assert.Equal(t, []model.PopularSearch{
		{Query: "latte", SearchCount: 2},
		{Query: "xyzzy", SearchCount: 2},
		{Query: "qqq", SearchCount: 1},
		{Query: "veg", SearchCount: 1},
	}, dashboard.PopularSearches)
	assert.Equal(t, []model.PopularSearch{
		{Query: "xyzzy", SearchCount: 2},
		{Query: "qqq", SearchCount: 1},
	}, dashboard.ZeroResultQueries)

	assert.Equal(t, []model.CatalogUsage{
		{CatalogID: "cafe", ItemCount: 2, SearchCount: 6},
		{CatalogID: "deli", ItemCount: 1, SearchCount: 0},
	}, dashboard.CatalogUsage)

	assert.Equal(t, model.MatchedFieldStats{Title: 2, Tag: 1, NoResults: 3}, dashboard.MatchedFields)

	dist := dashboard.ResponseTimeDistribution
	assert.Equal(t, 2, dist.BucketUnder1ms)
	assert.Equal(t, 1, dist.Bucket1To5ms)
	assert.Equal(t, 2, dist.Bucket5To25ms)
	assert.Equal(t, 1, dist.Bucket25msPlus)
	assert.InDelta(t, 100.0, dist.PercentageUnder1+dist.Percentage1To5+dist.Percentage5To25+dist.Percentage25Plus, 0.001)
}

func TestAnalyticsService_PopularSearchesCapped(t *testing.T) {
	service := NewService(nil, nil)

	for _, query := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		service.TrackSearchEvent(model.SearchEvent{CatalogID: "cafe", Query: query, ResultCount: 1})
	}

	dashboard := service.GetDashboardData()
	require.Len(t, dashboard.PopularSearches, topQueriesToShow)
	assert.Equal(t, "a", dashboard.PopularSearches[0].Query)
	assert.Equal(t, "e", dashboard.PopularSearches[4].Query)
}
