package search

import (
	"github.com/gcbaptista/catalog-search/internal/synonyms"
	"github.com/gcbaptista/catalog-search/internal/tokenizer"
)

// QueryTerm is one distinct raw query token together with its synonym expansions.
// Expansions always start with Raw itself.
type QueryTerm struct {
	Raw        string
	Expansions []string
}

// ParseQuery lower-cases and whitespace-tokenizes query, drops repeated tokens
// and expands each remaining token through expander. A nil expander disables expansion.
func ParseQuery(query string, expander *synonyms.Expander) []QueryTerm {
	tokens := tokenizer.UniqueTokens(query)

	terms := make([]QueryTerm, 0, len(tokens))
	for _, token := range tokens {
		terms = append(terms, QueryTerm{Raw: token, Expansions: expander.Expand(token)})
	}
	return terms
}

// ExpandedTerms flattens the expansions of every term, dropping repeats across terms.
// The first occurrence of each expansion keeps its position.
func ExpandedTerms(terms []QueryTerm) []string {
	flat := []string{}
	seen := make(map[string]struct{})
	for _, term := range terms {
		for _, expansion := range term.Expansions {
			if _, dup := seen[expansion]; dup {
				continue
			}
			seen[expansion] = struct{}{}
			flat = append(flat, expansion)
		}
	}
	return flat
}
