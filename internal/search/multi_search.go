package search

import (
	"context"
	"fmt"
	"time"

	"github.com/gcbaptista/catalog-search/model"
	"github.com/gcbaptista/catalog-search/services"
)

// MultiSearch executes several named queries against the same catalog snapshot in parallel.
func (s *Service) MultiSearch(ctx context.Context, catalog *model.Catalog, multiQuery services.MultiSearchQuery) (*services.MultiSearchResult, error) {
	startTime := time.Now()

	if len(multiQuery.Queries) == 0 {
		return nil, fmt.Errorf("at least one query is required")
	}

	seen := make(map[string]bool, len(multiQuery.Queries))
	for _, namedQuery := range multiQuery.Queries {
		if namedQuery.Name == "" {
			return nil, fmt.Errorf("each query must have a non-empty name")
		}
		if seen[namedQuery.Name] {
			return nil, fmt.Errorf("duplicate query name '%s'", namedQuery.Name)
		}
		seen[namedQuery.Name] = true
	}

	type queryResult struct {
		name   string
		result services.SearchResult
	}

	resultChan := make(chan queryResult, len(multiQuery.Queries))

	for _, namedQuery := range multiQuery.Queries {
		go func(nq services.NamedSearchQuery) {
			resultChan <- queryResult{name: nq.Name, result: s.Search(nq.Query, catalog)}
		}(namedQuery)
	}

	results := make(map[string]services.SearchResult, len(multiQuery.Queries))
	for i := 0; i < len(multiQuery.Queries); i++ {
		select {
		case qr := <-resultChan:
			results[qr.name] = qr.result
		case <-ctx.Done():
			return nil, fmt.Errorf("multi-search cancelled: %w", ctx.Err())
		}
	}

	processingTime := time.Since(startTime)

	return &services.MultiSearchResult{
		Results:          results,
		TotalQueries:     len(multiQuery.Queries),
		ProcessingTimeMs: float64(processingTime.Nanoseconds()) / 1e6,
	}, nil
}
