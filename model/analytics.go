package model

import "time"

// SearchEvent represents a single committed search for analytics tracking
type SearchEvent struct {
	CatalogID       string        `json:"catalog_id"`
	Query           string        `json:"query"`
	TopMatchedField MatchedField  `json:"top_matched_field,omitempty"` // empty when there were no results
	ResponseTime    time.Duration `json:"response_time"`
	ResultCount     int           `json:"result_count"`
	SuggestionCount int           `json:"suggestion_count"`
	Timestamp       time.Time     `json:"timestamp"`
}

// PopularSearch represents aggregated data for a search term
type PopularSearch struct {
	Query       string `json:"query"`
	SearchCount int    `json:"search_count"`
}

// CatalogUsage represents search statistics for a specific catalog
type CatalogUsage struct {
	CatalogID   string `json:"catalog_id"`
	ItemCount   int    `json:"item_count"`
	SearchCount int    `json:"search_count"`
}

// MatchedFieldStats counts searches by the field that produced the top hit
type MatchedFieldStats struct {
	Title       int `json:"title"`
	Description int `json:"description"`
	Tag         int `json:"tag"`
	Category    int `json:"category"`
	NoResults   int `json:"no_results"`
}

// ResponseTimeDistribution represents response time distribution buckets
type ResponseTimeDistribution struct {
	BucketUnder1ms   int     `json:"bucket_under_1ms"`
	Bucket1To5ms     int     `json:"bucket_1_5ms"`
	Bucket5To25ms    int     `json:"bucket_5_25ms"`
	Bucket25msPlus   int     `json:"bucket_25ms_plus"`
	PercentageUnder1 float64 `json:"percentage_under_1"`
	Percentage1To5   float64 `json:"percentage_1_5"`
	Percentage5To25  float64 `json:"percentage_5_25"`
	Percentage25Plus float64 `json:"percentage_25_plus"`
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	// Summary metrics
	TotalSearches      int     `json:"total_searches"`
	ZeroResultSearches int     `json:"zero_result_searches"`
	ZeroResultRate     float64 `json:"zero_result_rate"`
	AvgResponseTimeUs  int64   `json:"avg_response_time_us"` // in microseconds
	ActiveCatalogs     int     `json:"active_catalogs"`

	// Detailed analytics
	PopularSearches          []PopularSearch          `json:"popular_searches"`
	ZeroResultQueries        []PopularSearch          `json:"zero_result_queries"`
	CatalogUsage             []CatalogUsage           `json:"catalog_usage"`
	MatchedFields            MatchedFieldStats        `json:"matched_fields"`
	ResponseTimeDistribution ResponseTimeDistribution `json:"response_time_distribution"`
}
