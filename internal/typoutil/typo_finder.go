package typoutil

import "sort"

// TitleTypoBudget returns how many edits a term of termLen runes may differ from a title word.
func TitleTypoBudget(termLen int) int {
	switch {
	case termLen <= 4:
		return 1
	case termLen <= 7:
		return 2
	default:
		return 3
	}
}

// CategoryTypoBudget returns how many edits a term of termLen runes may differ from a category name.
func CategoryTypoBudget(termLen int) int {
	if termLen <= 4 {
		return 1
	}
	return 2
}

type termDistance struct {
	term     string
	distance int
}

// NearestTerms finds terms from vocabulary that are within maxDistance (Levenshtein) of the input term.
// Identical terms are skipped. Results are ordered by ascending distance; ties keep vocabulary order.
// A limit of 0 or less returns every candidate.
func NearestTerms(term string, vocabulary []string, maxDistance int, limit int) []string {
	nearest := make([]string, 0) // Initialize as empty slice, not nil
	if maxDistance <= 0 || term == "" || len(vocabulary) == 0 {
		return nearest
	}

	termLen := len([]rune(term))
	seen := make(map[string]struct{}, len(vocabulary))
	candidates := make([]termDistance, 0)

	for _, word := range vocabulary {
		if word == term {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}

		// Length-based early filtering: if length difference > maxDistance, skip
		lengthDiff := len([]rune(word)) - termLen
		if lengthDiff < 0 {
			lengthDiff = -lengthDiff
		}
		if lengthDiff > maxDistance {
			continue
		}

		dist := CalculateLevenshteinDistanceWithLimit(term, word, maxDistance)
		if dist > 0 && dist <= maxDistance {
			candidates = append(candidates, termDistance{term: word, distance: dist})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	for _, c := range candidates {
		if limit > 0 && len(nearest) >= limit {
			break
		}
		nearest = append(nearest, c.term)
	}
	return nearest
}
