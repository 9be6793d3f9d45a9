package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kibrary/kibrary/internal/graph"
	"github.com/kibrary/kibrary/internal/pages"
	"github.com/kibrary/kibrary/internal/ui"
)

var (
	docOutDir string
	docHTML   bool
)

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Generate documentation from the reference graph",
	Long: `Builds the uses/used-by reference graph over the library, including
synthetic per-field objects derived from index patterns, and renders one
markdown page per object plus an index per type.

Dangling references (panels pointing at deleted objects) are reported as
warnings and omitted from the graph; they never abort the build.

Examples:
  kib doc --out docs
  kib doc --out docs --html`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, warnings, err := loadLibrary()
		if err != nil {
			return handleError(ErrLibraryLoadFailed, err, "Check the library root directories")
		}

		g := graph.Build(lib)
		for _, w := range g.Warnings {
			warnings = append(warnings, Warning{Code: WarnUnresolvedRef, Message: w})
		}

		count, err := pages.Generate(g, pages.Options{OutDir: docOutDir, HTML: docHTML})
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]any{
				"out":   docOutDir,
				"pages": count,
			}, warnings, &Meta{Count: count})
			return nil
		}

		for _, w := range g.Warnings {
			fmt.Fprintln(os.Stderr, ui.Warning(w))
		}
		fmt.Println(ui.Successf("wrote %d pages to %s", count, ui.FilePath(docOutDir)))
		return nil
	},
}

func init() {
	docCmd.Flags().StringVar(&docOutDir, "out", "docs", "documentation output directory")
	docCmd.Flags().BoolVar(&docHTML, "html", false, "also render every page to HTML")
	rootCmd.AddCommand(docCmd)
}
