package search

import (
	"strings"
	"unicode/utf8"

	"github.com/gcbaptista/catalog-search/internal/tokenizer"
	"github.com/gcbaptista/catalog-search/internal/typoutil"
	"github.com/gcbaptista/catalog-search/model"
)

const (
	// DefaultSuggestionDistance is the largest edit distance a "did you mean" word may have.
	DefaultSuggestionDistance = 3
	minVocabularyWordRunes    = 3
)

// Vocabulary collects the lower-cased title words and category names longer than two runes,
// in first-seen order with titles before categories.
func Vocabulary(items []model.CatalogItem, categories []model.CatalogCategory) []string {
	vocabulary := make([]string, 0, len(items)*2+len(categories))
	seen := make(map[string]struct{})

	add := func(word string) {
		if utf8.RuneCountInString(word) < minVocabularyWordRunes {
			return
		}
		if _, ok := seen[word]; ok {
			return
		}
		seen[word] = struct{}{}
		vocabulary = append(vocabulary, word)
	}

	for _, item := range items {
		for _, word := range tokenizer.Words(strings.ToLower(item.Title)) {
			add(word)
		}
	}
	for _, category := range categories {
		add(strings.ToLower(category.Name))
	}
	return vocabulary
}

// Suggest proposes up to maxSuggestions spelling corrections for query, nearest first.
func Suggest(query string, items []model.CatalogItem, categories []model.CatalogCategory, maxSuggestions int) []string {
	return suggestFrom(query, Vocabulary(items, categories), DefaultSuggestionDistance, maxSuggestions)
}

func suggestFrom(query string, vocabulary []string, maxDistance, maxSuggestions int) []string {
	if maxSuggestions <= 0 {
		return []string{}
	}
	return typoutil.NearestTerms(tokenizer.Normalize(query), vocabulary, maxDistance, maxSuggestions)
}
