package services

import (
	"time"

	"github.com/gcbaptista/catalog-search/model"
)

// HitResult represents a single catalog item in the search results,
// including its relevance score and the field that produced it.
type HitResult struct {
	Item         model.CatalogItem  `json:"item"`
	Score        float64            `json:"score"`
	MatchedField model.MatchedField `json:"matched_field"`
}

// SearchResult is an immutable snapshot of a search for one committed query.
type SearchResult struct {
	Query                 string                  `json:"query"`           // raw query as currently typed
	DebouncedQuery        string                  `json:"debounced_query"` // query the hits were computed for
	Hits                  []HitResult             `json:"hits"`
	IsSearching           bool                    `json:"is_searching"`
	ResultCount           int                     `json:"result_count"`
	MatchedCategories     []model.CatalogCategory `json:"matched_categories"`
	ResultCountByCategory map[string]int          `json:"result_count_by_category"`
	Suggestions           []string                `json:"suggestions"`
	PopularCategories     []model.CatalogCategory `json:"popular_categories"`
	QueryID               string                  `json:"query_id,omitempty"` // unique UUID per recomputation
	Took                  time.Duration           `json:"took_ns"`
}

// Items returns the ranked catalog items of the result.
func (r SearchResult) Items() []model.CatalogItem {
	items := make([]model.CatalogItem, len(r.Hits))
	for i, hit := range r.Hits {
		items[i] = hit.Item
	}
	return items
}

// NamedSearchQuery is one query of a multi-search request.
type NamedSearchQuery struct {
	Name  string `json:"name"`
	Query string `json:"query"`
}

// MultiSearchQuery runs several named queries against the same catalog.
type MultiSearchQuery struct {
	Queries []NamedSearchQuery `json:"queries"`
}

// MultiSearchResult holds the result of every named query.
type MultiSearchResult struct {
	Results          map[string]SearchResult `json:"results"`
	TotalQueries     int                     `json:"total_queries"`
	ProcessingTimeMs float64                 `json:"processing_time_ms"`
}

// Searcher computes search results for a committed query over a catalog snapshot.
type Searcher interface {
	Search(query string, catalog *model.Catalog) SearchResult
	PopularCategories(catalog *model.Catalog) []model.CatalogCategory
}

// CatalogManager manages the lifecycle of catalogs
type CatalogManager interface {
	Put(catalog model.Catalog) (*model.Catalog, error)
	Get(catalogID string) (*model.Catalog, error)
	Delete(catalogID string) error
	List() []string
}

// QuerySession is a debounced, per-user search over one catalog.
type QuerySession interface {
	SetQuery(query string)
	Clear()
	Snapshot() SearchResult
	IsSearching() bool
}
