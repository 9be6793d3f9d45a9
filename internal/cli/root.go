// Package cli implements the command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kibrary/kibrary/internal/config"
	"github.com/kibrary/kibrary/internal/ui"
)

var (
	// Global flags
	libraryName string   // named library from config
	rootFlags   []string // explicit root directories, bypassing config
	configPath  string

	// Resolved values
	resolvedRoots      []string
	resolvedConfigPath string
	cfg                *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "kib",
	Short: "kibrary - a version-controllable library for Kibana saved objects",
	Long: `kibrary keeps Kibana saved objects (dashboards, visualizations, searches,
index patterns, lookups) as a directory tree of diff-friendly JSON files.

Nested JSON that Kibana stores as escaped strings is split into sibling
"@include" files and canonicalized, so version-control diffs show real
changes. 'decompile' syncs an export into the library, 'compile' flattens
the library back into a bulk-import file, and 'doc' renders the reference
graph as documentation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that don't touch a library skip root resolution.
		switch cmd.Name() {
		case "version", "library", "completion", "help":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "library" {
			return nil
		}

		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		ui.ConfigureTheme(cfg.UI.Accent)

		// Explicit roots take priority over named libraries.
		if len(rootFlags) > 0 {
			resolvedRoots = rootFlags
			return nil
		}
		resolvedRoots, err = cfg.LibraryRoots(libraryName)
		if err != nil {
			return fmt.Errorf("%w\n\nEither pass --root <dir>, or run 'kib library add <name> <dir>...' and 'kib library use <name>'", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&libraryName, "library", "", "named library from config")
	rootCmd.PersistentFlags().StringArrayVar(&rootFlags, "root", nil, "library root directory (repeatable; first receives new objects)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "machine-readable JSON output")
}

func loadGlobalConfig() (*config.Config, string, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	c, err := config.Load(path)
	if err != nil {
		return nil, path, err
	}
	return c, path, nil
}

// getRoots returns the resolved library roots for the current invocation.
func getRoots() []string {
	return resolvedRoots
}
