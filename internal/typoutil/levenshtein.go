package typoutil

// CalculateLevenshteinDistance computes the Levenshtein distance between two strings.
// It represents the minimum number of single-character edits (insertions, deletions, or substitutions)
// required to change one word into the other.
// This implementation properly handles Unicode characters by working with runes and keeps
// a single rolling row sized to the shorter input.
func CalculateLevenshteinDistance(a, b string) int {
	runesA := []rune(a)
	runesB := []rune(b)

	// Keep the row over the shorter string
	if len(runesB) > len(runesA) {
		runesA, runesB = runesB, runesA
	}

	lenA := len(runesA)
	lenB := len(runesB)

	if lenB == 0 {
		return lenA
	}

	// row[j] holds the distance between the first i runes of a and the first j runes of b.
	row := make([]int, lenB+1)
	for j := 0; j <= lenB; j++ {
		row[j] = j
	}

	for i := 1; i <= lenA; i++ {
		diagonal := row[0] // value of row[j-1] from the previous iteration
		row[0] = i

		for j := 1; j <= lenB; j++ {
			cost := 0
			if runesA[i-1] != runesB[j-1] {
				cost = 1
			}

			deletion := row[j] + 1
			insertion := row[j-1] + 1
			substitution := diagonal + cost

			diagonal = row[j]
			row[j] = min3(deletion, insertion, substitution)
		}
	}

	return row[lenB]
}

// CalculateLevenshteinDistanceWithLimit calculates Levenshtein distance with early termination.
// Returns maxDistance + 1 if the actual distance exceeds maxDistance (for performance).
func CalculateLevenshteinDistanceWithLimit(a, b string, maxDistance int) int {
	runesA := []rune(a)
	runesB := []rune(b)

	if len(runesB) > len(runesA) {
		runesA, runesB = runesB, runesA
	}

	lenA := len(runesA)
	lenB := len(runesB)

	// Early termination: if length difference > maxDistance, return early
	if lenA-lenB > maxDistance {
		return maxDistance + 1
	}

	if lenB == 0 {
		return lenA
	}

	row := make([]int, lenB+1)
	for j := 0; j <= lenB; j++ {
		row[j] = j
	}

	for i := 1; i <= lenA; i++ {
		diagonal := row[0]
		row[0] = i
		minInRow := i // Track minimum value in current row for early termination

		for j := 1; j <= lenB; j++ {
			cost := 0
			if runesA[i-1] != runesB[j-1] {
				cost = 1
			}

			deletion := row[j] + 1
			insertion := row[j-1] + 1
			substitution := diagonal + cost

			diagonal = row[j]
			row[j] = min3(deletion, insertion, substitution)

			if row[j] < minInRow {
				minInRow = row[j]
			}
		}

		// Row minimums never decrease, so the final result will exceed maxDistance too
		if minInRow > maxDistance {
			return maxDistance + 1
		}
	}

	if row[lenB] > maxDistance {
		return maxDistance + 1
	}
	return row[lenB]
}

// min3 is a helper function to find the minimum of three integers
func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
