package search

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gcbaptista/catalog-search/config"
	"github.com/gcbaptista/catalog-search/internal/logger"
	"github.com/gcbaptista/catalog-search/internal/synonyms"
	"github.com/gcbaptista/catalog-search/model"
	"github.com/gcbaptista/catalog-search/services"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder observes every computed search result.
type Recorder interface {
	RecordSearch(catalogID string, result services.SearchResult)
}

// Service ranks catalog items for committed queries.
// It holds no per-query state and fulfills the services.Searcher interface.
type Service struct {
	settings  config.SearchSettings
	expander  *synonyms.Expander
	recorders []Recorder
	logger    *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used by the service.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = logger.OrNop(l) }
}

// WithRecorder registers a recorder notified after every search.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorders = append(s.recorders, r)
		}
	}
}

// WithExpander overrides the synonym expander built from the settings.
func WithExpander(e *synonyms.Expander) Option {
	return func(s *Service) { s.expander = e }
}

// NewService creates a new search Service. Zero settings fall back to defaults.
func NewService(settings config.SearchSettings, opts ...Option) (*Service, error) {
	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid search settings: %s", strings.Join(problems, "; "))
	}

	s := &Service{
		settings: settings,
		logger:   zap.NewNop(),
	}
	if len(settings.Synonyms) > 0 {
		s.expander = synonyms.NewExpander(settings.Synonyms)
	} else {
		s.expander = synonyms.Default()
	}

	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Settings returns the effective settings of the service.
func (s *Service) Settings() config.SearchSettings {
	return s.settings
}

// Expander returns the synonym expander used for queries.
func (s *Service) Expander() *synonyms.Expander {
	return s.expander
}

// Search scores every item of catalog against query and derives the result facets.
// An empty or whitespace-only query is an inactive search and yields no hits.
func (s *Service) Search(query string, catalog *model.Catalog) services.SearchResult {
	startTime := time.Now()
	if catalog == nil {
		catalog = &model.Catalog{}
	}

	committed := strings.TrimSpace(query)
	result := services.SearchResult{
		Query:                 query,
		DebouncedQuery:        committed,
		Hits:                  []services.HitResult{},
		MatchedCategories:     []model.CatalogCategory{},
		ResultCountByCategory: map[string]int{},
		Suggestions:           []string{},
		PopularCategories:     s.PopularCategories(catalog),
		QueryID:               uuid.New().String(),
	}

	if committed != "" {
		rawQueryLower := strings.ToLower(committed)
		terms := ParseQuery(rawQueryLower, s.expander)
		categoryNames := catalog.CategoryNames()

		for _, item := range catalog.Items {
			match, ok := ScoreItem(item, terms, categoryNames, rawQueryLower)
			if !ok {
				continue
			}
			result.Hits = append(result.Hits, services.HitResult{
				Item:         item,
				Score:        match.Score,
				MatchedField: match.MatchedField,
			})
		}

		// Ties keep catalog order
		sort.SliceStable(result.Hits, func(i, j int) bool {
			return result.Hits[i].Score > result.Hits[j].Score
		})

		for _, hit := range result.Hits {
			result.ResultCountByCategory[hit.Item.CategoryID]++
		}
		for _, category := range catalog.Categories {
			if result.ResultCountByCategory[category.ID] > 0 {
				result.MatchedCategories = append(result.MatchedCategories, category)
			}
		}

		if len(result.Hits) == 0 {
			vocabulary := Vocabulary(catalog.Items, catalog.Categories)
			result.Suggestions = suggestFrom(rawQueryLower, vocabulary, s.settings.SuggestionMaxDistance, s.settings.MaxSuggestions)
		}
	}

	result.ResultCount = len(result.Hits)
	result.Took = time.Since(startTime)

	s.logger.Debug("search computed",
		zap.String("catalog_id", catalog.ID),
		zap.String("query", committed),
		zap.Int("results", result.ResultCount),
		zap.Int("suggestions", len(result.Suggestions)),
		zap.Duration("took", result.Took),
	)

	for _, r := range s.recorders {
		r.RecordSearch(catalog.ID, result)
	}
	return result
}

// Suggest returns the catalog words closest to query, whether or not the query has hits.
func (s *Service) Suggest(query string, catalog *model.Catalog) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if catalog == nil || query == "" {
		return []string{}
	}
	vocabulary := Vocabulary(catalog.Items, catalog.Categories)
	return suggestFrom(query, vocabulary, s.settings.SuggestionMaxDistance, s.settings.MaxSuggestions)
}

// PopularCategories returns up to MaxPopularCategories categories with the most items,
// most items first. Ties, including categories without items, keep catalog order.
func (s *Service) PopularCategories(catalog *model.Catalog) []model.CatalogCategory {
	popular := []model.CatalogCategory{}
	if catalog == nil {
		return popular
	}

	counts := make(map[string]int, len(catalog.Categories))
	for _, item := range catalog.Items {
		counts[item.CategoryID]++
	}

	popular = append(popular, catalog.Categories...)
	sort.SliceStable(popular, func(i, j int) bool {
		return counts[popular[i].ID] > counts[popular[j].ID]
	})

	if len(popular) > s.settings.MaxPopularCategories {
		popular = popular[:s.settings.MaxPopularCategories]
	}
	return popular
}
