// Package config provides configuration structures for the catalog search engine.
// It defines search tuning settings and the service configuration file.
package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultDebounceMs            = 300
	DefaultMaxSuggestions        = 3
	DefaultMaxPopularCategories  = 4
	DefaultSuggestionMaxDistance = 3
)

// SearchSettings contains the tuning options of a search session.
//
// Zero values mean "use the default"; negative values are rejected by Validate.
// DebounceMs is the exception: nil means the default and an explicit 0 commits every query immediately.
// Synonyms replaces the embedded synonym table when non-empty.
type SearchSettings struct {
	DebounceMs            *int                `json:"debounce_ms,omitempty" yaml:"debounce_ms,omitempty"`     // Quiet period before a non-empty query is committed
	MaxSuggestions        int                 `json:"max_suggestions" yaml:"max_suggestions"`                 // Cap on "did you mean" suggestions
	MaxPopularCategories  int                 `json:"max_popular_categories" yaml:"max_popular_categories"`   // Cap on popular categories
	SuggestionMaxDistance int                 `json:"suggestion_max_distance" yaml:"suggestion_max_distance"` // Max edit distance for suggestions
	Synonyms              map[string][]string `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`           // Optional synonym groups: key -> values
}

// ApplyDefaults applies default values to the search settings
func (settings *SearchSettings) ApplyDefaults() {
	if settings.DebounceMs == nil {
		debounceMs := DefaultDebounceMs
		settings.DebounceMs = &debounceMs
	}
	if settings.MaxSuggestions == 0 {
		settings.MaxSuggestions = DefaultMaxSuggestions
	}
	if settings.MaxPopularCategories == 0 {
		settings.MaxPopularCategories = DefaultMaxPopularCategories
	}
	if settings.SuggestionMaxDistance == 0 {
		settings.SuggestionMaxDistance = DefaultSuggestionMaxDistance
	}
}

// Debounce returns the debounce interval, falling back to the default when DebounceMs is unset.
func (settings SearchSettings) Debounce() time.Duration {
	if settings.DebounceMs == nil {
		return DefaultDebounceMs * time.Millisecond
	}
	return time.Duration(*settings.DebounceMs) * time.Millisecond
}

// Validate returns a list of problems with the settings; an empty list means valid.
func (settings *SearchSettings) Validate() []string {
	var problems []string

	if settings.DebounceMs != nil && *settings.DebounceMs < 0 {
		problems = append(problems, fmt.Sprintf("debounce_ms must not be negative, got %d", *settings.DebounceMs))
	}
	if settings.MaxSuggestions < 0 {
		problems = append(problems, fmt.Sprintf("max_suggestions must not be negative, got %d", settings.MaxSuggestions))
	}
	if settings.MaxPopularCategories < 0 {
		problems = append(problems, fmt.Sprintf("max_popular_categories must not be negative, got %d", settings.MaxPopularCategories))
	}
	if settings.SuggestionMaxDistance < 0 {
		problems = append(problems, fmt.Sprintf("suggestion_max_distance must not be negative, got %d", settings.SuggestionMaxDistance))
	}

	for key, values := range settings.Synonyms {
		if strings.TrimSpace(key) == "" {
			problems = append(problems, "Synonym group key cannot be empty or whitespace-only")
			continue
		}
		problems = append(problems, checkDuplicates("synonyms."+key, values)...)
	}

	return problems
}

// checkDuplicates checks for duplicate values in a slice and returns error messages
func checkDuplicates(fieldName string, values []string) []string {
	var errors []string
	seen := make(map[string]bool)

	for _, value := range values {
		normalized := strings.ToLower(strings.TrimSpace(value))
		if seen[normalized] {
			errors = append(errors, "Duplicate value '"+value+"' found in "+fieldName)
		}
		seen[normalized] = true
	}

	return errors
}
