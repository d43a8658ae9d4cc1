package search

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/gcbaptista/catalog-search/internal/tokenizer"
	"github.com/gcbaptista/catalog-search/internal/typoutil"
	"github.com/gcbaptista/catalog-search/model"
)

// Score bands. Every band is strictly ordered so a fuzzy match never outranks an exact one.
const (
	phraseExactScore       = 110
	phrasePrefixScore      = 105
	phraseSubstringScore   = 100
	phraseDescriptionScore = 60

	termExactScore       = 100
	termPrefixScore      = 90
	termSubstringScore   = 80
	termWordExactScore   = 85
	termWordPrefixScore  = 75
	termTagScore         = 70
	termCategoryScore    = 65
	termDescriptionScore = 50
	termFuzzyTitleBase   = 40
	termFuzzyTitleStep   = 5
	termFuzzyCategory    = 25
	fuzzyCategoryGate    = 30

	multiTermBonus   = 15
	lengthBonusLimit = 50
	lengthBonusScale = 0.1
)

// Match is the relevance of one item for one query.
type Match struct {
	Score        float64
	MatchedField model.MatchedField
}

// itemText holds the lower-cased fields of an item used for matching.
type itemText struct {
	title       string
	titleWords  []string
	description string
	tags        []string
	category    string
	titleRunes  int
}

func newItemText(item model.CatalogItem, categoryNames map[string]string) itemText {
	title := strings.ToLower(item.Title)
	tags := make([]string, len(item.Tags))
	for i, tag := range item.Tags {
		tags[i] = strings.ToLower(tag)
	}
	return itemText{
		title:       title,
		titleWords:  tokenizer.Words(title),
		description: strings.ToLower(item.Description),
		tags:        tags,
		category:    strings.ToLower(categoryNames[item.CategoryID]), // orphans resolve to ""
		titleRunes:  utf8.RuneCountInString(item.Title),
	}
}

// ScoreItem computes the relevance of item for the parsed query terms and the lower-cased raw query.
// It reports false when nothing in the item matches. The item is never modified.
func ScoreItem(item model.CatalogItem, terms []QueryTerm, categoryNames map[string]string, rawQueryLower string) (Match, bool) {
	text := newItemText(item, categoryNames)

	phraseScore, phraseField := scorePhrase(text, rawQueryLower)
	termScore, termField := scoreTerms(text, terms)

	base, field := phraseScore, phraseField
	if termScore > phraseScore {
		base, field = termScore, termField
	}
	if base == 0 {
		return Match{}, false
	}

	lengthBonus := math.Max(0, float64(lengthBonusLimit-text.titleRunes)*lengthBonusScale)
	return Match{Score: float64(base) + lengthBonus, MatchedField: field}, true
}

// scorePhrase scores the whole query as one contiguous phrase.
func scorePhrase(text itemText, rawQueryLower string) (int, model.MatchedField) {
	if rawQueryLower == "" {
		return 0, model.MatchedFieldTitle
	}

	switch {
	case text.title == rawQueryLower:
		return phraseExactScore, model.MatchedFieldTitle
	case strings.HasPrefix(text.title, rawQueryLower):
		return phrasePrefixScore, model.MatchedFieldTitle
	case strings.Contains(text.title, rawQueryLower):
		return phraseSubstringScore, model.MatchedFieldTitle
	case strings.Contains(text.description, rawQueryLower):
		return phraseDescriptionScore, model.MatchedFieldDescription
	}
	return 0, model.MatchedFieldTitle
}

// scoreTerms sums the best score of every distinct expanded term, divides by the number of raw terms
// and rewards queries whose raw terms all matched through at least one of their expansions.
func scoreTerms(text itemText, terms []QueryTerm) (int, model.MatchedField) {
	if len(terms) == 0 {
		return 0, model.MatchedFieldTitle
	}

	sum := 0
	bestScore := 0
	bestField := model.MatchedFieldTitle
	expansionScores := make(map[string]int)

	for _, expansion := range ExpandedTerms(terms) {
		score, field := scoreTerm(text, expansion)
		expansionScores[expansion] = score
		sum += score
		if score > bestScore {
			bestScore, bestField = score, field
		}
	}

	matched := 0
	for _, term := range terms {
		for _, expansion := range term.Expansions {
			if expansionScores[expansion] > 0 {
				matched++
				break
			}
		}
	}

	score := int(math.Round(float64(sum) / float64(len(terms))))
	if len(terms) > 1 && matched >= len(terms) {
		score += multiTermBonus
	}
	return score, bestField
}

// scoreTerm returns the best score of a single term against one item.
// Checks run in precedence order and the expensive fuzzy checks only run while the score is still low.
func scoreTerm(text itemText, term string) (int, model.MatchedField) {
	if term == "" {
		return 0, model.MatchedFieldTitle
	}

	best := 0
	field := model.MatchedFieldTitle
	raise := func(score int, f model.MatchedField) {
		if score > best {
			best, field = score, f
		}
	}

	switch {
	case text.title == term:
		raise(termExactScore, model.MatchedFieldTitle)
	case strings.HasPrefix(text.title, term):
		raise(termPrefixScore, model.MatchedFieldTitle)
	case strings.Contains(text.title, term):
		raise(termSubstringScore, model.MatchedFieldTitle)
	}

	for _, word := range text.titleWords {
		if word == term {
			raise(termWordExactScore, model.MatchedFieldTitle)
		} else if strings.HasPrefix(word, term) {
			raise(termWordPrefixScore, model.MatchedFieldTitle)
		}
	}

	for _, tag := range text.tags {
		if tag == term {
			raise(termTagScore, model.MatchedFieldTag)
			break
		}
	}

	if text.category != "" && strings.Contains(text.category, term) {
		raise(termCategoryScore, model.MatchedFieldCategory)
	}

	if best < termDescriptionScore && strings.Contains(text.description, term) {
		raise(termDescriptionScore, model.MatchedFieldDescription)
	}

	termRunes := utf8.RuneCountInString(term)

	if best < termFuzzyTitleBase {
		budget := typoutil.TitleTypoBudget(termRunes)
		for _, word := range text.titleWords {
			dist := typoutil.CalculateLevenshteinDistanceWithLimit(word, term, budget)
			if dist > 0 && dist <= budget {
				raise(termFuzzyTitleBase-termFuzzyTitleStep*dist, model.MatchedFieldTitle)
			}
		}
	}

	if best < fuzzyCategoryGate && text.category != "" {
		budget := typoutil.CategoryTypoBudget(termRunes)
		dist := typoutil.CalculateLevenshteinDistanceWithLimit(text.category, term, budget)
		if dist > 0 && dist <= budget {
			raise(termFuzzyCategory, model.MatchedFieldCategory)
		}
	}

	return best, field
}
