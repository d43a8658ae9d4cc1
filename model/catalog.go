package model

import (
	"fmt"
	"strings"
)

// MatchedField identifies the item attribute that produced the winning relevance score of a hit.
type MatchedField string

const (
	MatchedFieldTitle       MatchedField = "title"
	MatchedFieldDescription MatchedField = "description"
	MatchedFieldTag         MatchedField = "tag"
	MatchedFieldCategory    MatchedField = "category"
)

// CatalogItem is one sellable or listable entry of a business catalog.
// Price, Currency and IsAvailable are carried through untouched by search.
type CatalogItem struct {
	ID          string   `json:"id"`
	CategoryID  string   `json:"category_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"` // e.g. "bestseller", "new", "veg", "spicy", "featured"
	Price       float64  `json:"price"`
	Currency    string   `json:"currency,omitempty"`
	IsAvailable bool     `json:"is_available"`
}

// CatalogCategory is a grouping label for catalog items.
type CatalogCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji,omitempty"`
}

// Catalog is an immutable snapshot of a business catalog.
// Version is assigned by the catalog store and changes whenever the snapshot is replaced.
type Catalog struct {
	ID         string            `json:"id"`
	Items      []CatalogItem     `json:"items"`
	Categories []CatalogCategory `json:"categories"`
	Version    uint64            `json:"version"`
}

// CategoryNames returns a category id -> name lookup.
func (c *Catalog) CategoryNames() map[string]string {
	names := make(map[string]string, len(c.Categories))
	for _, category := range c.Categories {
		names[category.ID] = category.Name
	}
	return names
}

// Validate checks identifiers and titles. Items may reference unknown categories.
func (c *Catalog) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("catalog id is required")
	}

	categoryIDs := make(map[string]bool, len(c.Categories))
	for i, category := range c.Categories {
		if strings.TrimSpace(category.ID) == "" {
			return fmt.Errorf("categories[%d]: id is required", i)
		}
		if categoryIDs[category.ID] {
			return fmt.Errorf("categories[%d]: duplicate category id '%s'", i, category.ID)
		}
		categoryIDs[category.ID] = true
	}

	itemIDs := make(map[string]bool, len(c.Items))
	for i, item := range c.Items {
		if strings.TrimSpace(item.ID) == "" {
			return fmt.Errorf("items[%d]: id is required", i)
		}
		if itemIDs[item.ID] {
			return fmt.Errorf("items[%d]: duplicate item id '%s'", i, item.ID)
		}
		itemIDs[item.ID] = true
		if strings.TrimSpace(item.Title) == "" {
			return fmt.Errorf("items[%d]: title is required", i)
		}
	}

	return nil
}

// Clone returns a deep copy of the catalog so callers can hand out snapshots safely.
func (c *Catalog) Clone() *Catalog {
	clone := &Catalog{
		ID:         c.ID,
		Version:    c.Version,
		Items:      make([]CatalogItem, len(c.Items)),
		Categories: make([]CatalogCategory, len(c.Categories)),
	}
	copy(clone.Categories, c.Categories)
	for i, item := range c.Items {
		clone.Items[i] = item
		if item.Tags != nil {
			clone.Items[i].Tags = append([]string(nil), item.Tags...)
		}
	}
	return clone
}
