package typoutil

import (
	"math/rand"
	"testing"
)

// generateTestTerms builds a menu-like vocabulary with some random noise words.
func generateTestTerms(count int, avgLength int) []string {
	rng := rand.New(rand.NewSource(42))
	terms := make([]string, count)

	words := []string{
		"latte", "cappuccino", "espresso", "americano", "mocha", "macchiato", "chai",
		"matcha", "smoothie", "lemonade", "croissant", "muffin", "brownie", "cheesecake",
		"burger", "wrap", "salad", "pizza", "pasta", "fries", "nachos", "tacos",
		"chicken", "paneer", "tofu", "mushroom", "spicy", "classic", "special",
	}

	for i := 0; i < count; i++ {
		if rng.Float32() < 0.7 {
			terms[i] = words[rng.Intn(len(words))]
			continue
		}
		length := avgLength + rng.Intn(5) - 2
		if length < 3 {
			length = 3
		}
		runes := make([]rune, length)
		for j := 0; j < length; j++ {
			runes[j] = rune('a' + rng.Intn(26))
		}
		terms[i] = string(runes)
	}

	return terms
}

func BenchmarkCalculateLevenshteinDistance(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = CalculateLevenshteinDistance("cappucino", "cappuccino")
	}
}

func BenchmarkCalculateLevenshteinDistanceWithLimit(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = CalculateLevenshteinDistanceWithLimit("cappucino", "americano", 3)
	}
}

func BenchmarkNearestTerms(b *testing.B) {
	vocabulary := generateTestTerms(500, 7)
	queryTerms := []string{"latte", "capucino", "expresso", "brwnie", "chiken"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, term := range queryTerms {
			_ = NearestTerms(term, vocabulary, 3, 3)
		}
	}
}
