package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/catalog-search/config"
	"github.com/gcbaptista/catalog-search/model"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

type rootOptions struct {
	configPath string
}

// newRootCmd builds the command tree. Commands write to cmd.OutOrStdout so they can be captured.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "catalog-search",
		Short: "Typo-tolerant search over business catalogs",
		Long: `catalog-search ranks the items of a business catalog (menus, product lists)
against free-text queries with synonym expansion, typo tolerance and
"did you mean" suggestions.

Run "serve" for the HTTP API with debounced search sessions, or use
"query" and "suggest" to search a catalog JSON file directly.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file (defaults apply when empty)")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newQueryCmd(opts))
	rootCmd.AddCommand(newSuggestCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadConfig reads the config file when one was given.
func (o *rootOptions) loadConfig() (config.Config, error) {
	if o.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(o.configPath)
}

// loadCatalogFile reads a catalog JSON file. The catalog id defaults to the file's base name.
func loadCatalogFile(path string) (*model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var catalog model.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	if catalog.ID == "" {
		catalog.ID = catalogIDFromPath(path)
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return &catalog, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "catalog-search %s\n", version)
		},
	}
}
