package typoutil

import (
	"reflect"
	"testing"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

func TestCalculateLevenshteinDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"both empty", "", "", 0},
		{"a empty", "", "hello", 5},
		{"b empty", "hello", "", 5},
		{"identical", "latte", "latte", 0},
		{"kitten sitting", "kitten", "sitting", 3},
		{"simple substitution", "latte", "lette", 1},
		{"simple insertion", "capucino", "cappucino", 1},
		{"simple deletion", "cappuccino", "cappucino", 1},
		{"multiple edits", "saturday", "sunday", 3},
		{"order matters", "espresso", "expresso", 1},
		{"longer strings", "algorithm", "altruistic", 6},
		{"unicode chars (same len)", "crème", "creme", 1},
		{"unicode chars (diff len)", "café au lait", "cafe au lai", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateLevenshteinDistance(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("CalculateLevenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if reverse := CalculateLevenshteinDistance(tt.b, tt.a); reverse != got {
				t.Errorf("distance is not symmetric: %d vs %d", got, reverse)
			}
		})
	}
}

func TestCalculateLevenshteinDistance_MatchesReference(t *testing.T) {
	words := []string{"", "a", "latte", "lette", "macchiato", "mocha", "matcha", "chai", "veggie", "vegan", "wrap", "warp", "spicy", "spice"}

	for _, a := range words {
		for _, b := range words {
			got := CalculateLevenshteinDistance(a, b)
			want := fuzzy.LevenshteinDistance(a, b)
			if got != want {
				t.Errorf("CalculateLevenshteinDistance(%q, %q) = %d, reference %d", a, b, got, want)
			}
		}
	}
}

func TestCalculateLevenshteinDistance_TriangleInequality(t *testing.T) {
	words := []string{"latte", "lette", "late", "plate", "slate", "salted"}
	for _, a := range words {
		for _, b := range words {
			for _, c := range words {
				ab := CalculateLevenshteinDistance(a, b)
				bc := CalculateLevenshteinDistance(b, c)
				ac := CalculateLevenshteinDistance(a, c)
				if ac > ab+bc {
					t.Errorf("d(%q,%q)=%d > d(%q,%q)+d(%q,%q)=%d", a, c, ac, a, b, b, c, ab+bc)
				}
			}
		}
	}
}

func TestCalculateLevenshteinDistanceWithLimit(t *testing.T) {
	tests := []struct {
		name        string
		a           string
		b           string
		maxDistance int
		want        int
	}{
		{"within limit", "latte", "lette", 1, 1},
		{"exact", "latte", "latte", 2, 0},
		{"over limit", "kitten", "sitting", 2, 3},
		{"length difference exceeds limit", "tea", "teapots", 2, 3},
		{"empty against short", "", "ab", 3, 2},
		{"at limit", "kitten", "sitting", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateLevenshteinDistanceWithLimit(tt.a, tt.b, tt.maxDistance)
			if got != tt.want {
				t.Errorf("CalculateLevenshteinDistanceWithLimit(%q, %q, %d) = %d, want %d", tt.a, tt.b, tt.maxDistance, got, tt.want)
			}
		})
	}
}

func TestTypoBudgets(t *testing.T) {
	titleTests := map[int]int{1: 1, 4: 1, 5: 2, 7: 2, 8: 3, 15: 3}
	for length, want := range titleTests {
		if got := TitleTypoBudget(length); got != want {
			t.Errorf("TitleTypoBudget(%d) = %d, want %d", length, got, want)
		}
	}

	categoryTests := map[int]int{3: 1, 4: 1, 5: 2, 12: 2}
	for length, want := range categoryTests {
		if got := CategoryTypoBudget(length); got != want {
			t.Errorf("CategoryTypoBudget(%d) = %d, want %d", length, got, want)
		}
	}
}

func TestNearestTerms(t *testing.T) {
	vocabulary := []string{"cappuccino", "espresso", "latte", "lattes", "chai", "tea", "latte"}

	tests := []struct {
		name        string
		term        string
		vocabulary  []string
		maxDistance int
		limit       int
		want        []string
	}{
		{"single typo found", "lette", vocabulary, 3, 0, []string{"latte", "lattes"}},
		{"ordered by distance", "latt", []string{"lattes", "chai", "latte"}, 3, 0, []string{"latte", "lattes"}},
		{"limit applied", "latt", vocabulary, 3, 1, []string{"latte"}},
		{"identical term skipped", "latte", vocabulary, 1, 0, []string{"lattes"}},
		{"no close words", "zzzqqq", vocabulary, 3, 0, []string{}},
		{"empty vocabulary", "latte", []string{}, 3, 0, []string{}},
		{"empty term", "", vocabulary, 3, 0, []string{}},
		{"maxDistance 0", "lette", vocabulary, 0, 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NearestTerms(tt.term, tt.vocabulary, tt.maxDistance, tt.limit)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NearestTerms(%q, ..., %d, %d) = %v, want %v", tt.term, tt.maxDistance, tt.limit, got, tt.want)
			}
		})
	}
}
