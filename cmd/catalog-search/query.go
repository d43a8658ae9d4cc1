package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/catalog-search/internal/search"
	"github.com/gcbaptista/catalog-search/model"
	"github.com/gcbaptista/catalog-search/services"
)

type queryOptions struct {
	catalogPath string
	asJSON      bool
}

func newQueryCmd(root *rootOptions) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query [text]",
		Short: "Search a catalog file and print the ranked items",
		Example: `  catalog-search query --catalog menu.json "iced latte"
  catalog-search query --catalog menu.json --json veg`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, svc, err := prepareSearch(root, opts.catalogPath)
			if err != nil {
				return err
			}

			result := svc.Search(strings.Join(args, " "), catalog)
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			printResult(cmd.OutOrStdout(), catalog, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "path to a catalog JSON file")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the full result as JSON")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}

func newSuggestCmd(root *rootOptions) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "suggest <text>",
		Short: "Print \"did you mean\" words for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, svc, err := prepareSearch(root, opts.catalogPath)
			if err != nil {
				return err
			}

			suggestions := svc.Suggest(strings.Join(args, " "), catalog)
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), suggestions)
			}
			for _, suggestion := range suggestions {
				fmt.Fprintln(cmd.OutOrStdout(), suggestion)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "path to a catalog JSON file")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the suggestions as a JSON array")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}

func prepareSearch(root *rootOptions, catalogPath string) (*model.Catalog, *search.Service, error) {
	cfg, err := root.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	catalog, err := loadCatalogFile(catalogPath)
	if err != nil {
		return nil, nil, err
	}

	svc, err := search.NewService(cfg.Search)
	if err != nil {
		return nil, nil, err
	}
	return catalog, svc, nil
}

func printResult(w io.Writer, catalog *model.Catalog, result services.SearchResult) {
	if result.DebouncedQuery == "" {
		fmt.Fprintln(w, "No query. Popular categories:")
		printCategories(w, result.PopularCategories)
		return
	}

	fmt.Fprintf(w, "%d results for %q\n", result.ResultCount, result.DebouncedQuery)

	names := catalog.CategoryNames()
	for i, hit := range result.Hits {
		category := names[hit.Item.CategoryID]
		if category == "" {
			category = hit.Item.CategoryID
		}
		fmt.Fprintf(w, "%3d. %-28s %7.1f  %-11s %s\n", i+1, hit.Item.Title, hit.Score, hit.MatchedField, category)
	}

	if len(result.MatchedCategories) > 0 {
		fmt.Fprintln(w, "Categories:")
		for _, category := range result.MatchedCategories {
			fmt.Fprintf(w, "  %s (%d)\n", category.Name, result.ResultCountByCategory[category.ID])
		}
	}

	if len(result.Suggestions) > 0 {
		fmt.Fprintf(w, "Did you mean: %s?\n", strings.Join(result.Suggestions, ", "))
	}
}

func printCategories(w io.Writer, categories []model.CatalogCategory) {
	for _, category := range categories {
		if category.Emoji != "" {
			fmt.Fprintf(w, "  %s %s\n", category.Emoji, category.Name)
			continue
		}
		fmt.Fprintf(w, "  %s\n", category.Name)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func catalogIDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
