// Package testutil provides fixtures and helpers for testing catalog search.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/catalog-search/model"
	"github.com/gcbaptista/catalog-search/services"
)

// CafeCatalogID is the id of the catalog returned by CafeCatalog.
const CafeCatalogID = "corner-cafe"

// CafeCatalog returns a small cafe menu. The "muffin" item references a category
// that is not part of the catalog.
func CafeCatalog() model.Catalog {
	return model.Catalog{
		ID: CafeCatalogID,
		Categories: []model.CatalogCategory{
			{ID: "hot", Name: "Hot Beverages", Emoji: "☕"},
			{ID: "cold", Name: "Cold Drinks", Emoji: "🧊"},
			{ID: "food", Name: "Food", Emoji: "🥪"},
			{ID: "dessert", Name: "Desserts", Emoji: "🍰"},
		},
		Items: []model.CatalogItem{
			{ID: "latte", CategoryID: "hot", Title: "Latte", Description: "Espresso with steamed milk", Tags: []string{"bestseller"}, Price: 3.5, Currency: "EUR", IsAvailable: true},
			{ID: "macchiato", CategoryID: "hot", Title: "Latte Macchiato", Description: "Layered milk and espresso", Price: 3.9, Currency: "EUR", IsAvailable: true},
			{ID: "cappuccino", CategoryID: "hot", Title: "Cappuccino", Description: "Espresso with milk foam", Tags: []string{"popular"}, Price: 3.2, Currency: "EUR", IsAvailable: true},
			{ID: "espresso", CategoryID: "hot", Title: "Espresso", Price: 2.0, Currency: "EUR", IsAvailable: true},
			{ID: "iced-tea", CategoryID: "cold", Title: "Iced Tea", Tags: []string{"new"}, Price: 2.8, Currency: "EUR", IsAvailable: true},
			{ID: "lemonade", CategoryID: "cold", Title: "Fresh Lemonade", Tags: []string{"veg"}, Price: 3.0, Currency: "EUR", IsAvailable: false},
			{ID: "wrap", CategoryID: "food", Title: "Spicy Chicken Wrap", Description: "Grilled chicken with chili sauce", Tags: []string{"spicy"}, Price: 7.5, Currency: "EUR", IsAvailable: true},
			{ID: "salad", CategoryID: "food", Title: "Garden Salad", Description: "Seasonal greens with vinaigrette", Tags: []string{"veg", "gluten-free"}, Price: 6.9, Currency: "EUR", IsAvailable: true},
			{ID: "pizza", CategoryID: "food", Title: "Margherita Pizza", Description: "Tomato, mozzarella and basil", Tags: []string{"veg"}, Price: 9.0, Currency: "EUR", IsAvailable: true},
			{ID: "cake", CategoryID: "dessert", Title: "Chocolate Cake", Price: 4.5, Currency: "EUR", IsAvailable: true},
			{ID: "pie", CategoryID: "dessert", Title: "Apple Pie", Tags: []string{"veg"}, Price: 4.2, Currency: "EUR", IsAvailable: true},
			{ID: "muffin", CategoryID: "bakery", Title: "Mystery Muffin", Tags: []string{"new"}, Price: 2.5, Currency: "EUR", IsAvailable: true},
		},
	}
}

// WriteCatalogFile writes catalog as JSON into a temporary directory and returns the file path.
func WriteCatalogFile(t *testing.T, catalog model.Catalog) string {
	t.Helper()

	data, err := json.Marshal(catalog)
	require.NoError(t, err, "Failed to marshal catalog")

	path := filepath.Join(t.TempDir(), catalog.ID+".json")
	require.NoError(t, os.WriteFile(path, data, 0600), "Failed to write catalog file")
	return path
}

// HitIDs returns the item ids of the hits in ranked order.
func HitIDs(result services.SearchResult) []string {
	ids := make([]string, len(result.Hits))
	for i, hit := range result.Hits {
		ids[i] = hit.Item.ID
	}
	return ids
}

// AssertHitIDs asserts the exact ranked item ids of a result.
func AssertHitIDs(t *testing.T, result services.SearchResult, expected ...string) {
	t.Helper()
	if expected == nil {
		expected = []string{}
	}
	assert.Equal(t, expected, HitIDs(result), "unexpected hits for query %q", result.DebouncedQuery)
}
