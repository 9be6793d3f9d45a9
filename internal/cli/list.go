package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kibrary/kibrary/internal/index"
	"github.com/kibrary/kibrary/internal/ui"
)

var listType string

// ObjectJSON is the JSON representation of one listed object.
type ObjectJSON struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
	Path  string `json:"path,omitempty"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List library objects from the index",
	Long: `Lists objects from the sqlite catalog kept under the first root's .kibrary/
directory. The catalog is refreshed by 'kib decompile' and 'kib reindex'.

Examples:
  kib list
  kib list --type dashboard
  kib list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := index.Open(getRoots()[0])
		if err != nil {
			return handleError(ErrIndexError, err, "Run 'kib reindex' to build the index")
		}
		defer db.Close()

		entries, err := db.List(listType)
		if err != nil {
			return handleError(ErrIndexError, err, "Run 'kib reindex' to rebuild the index")
		}

		if isJSONOutput() {
			items := make([]ObjectJSON, len(entries))
			for i, e := range entries {
				items[i] = ObjectJSON{ID: e.ID, Type: e.Type, Title: e.Title, Path: e.Path}
			}
			outputSuccess(map[string]any{"items": items}, &Meta{Count: len(items)})
			return nil
		}

		if len(entries) == 0 {
			fmt.Println("No objects indexed. Run 'kib reindex' first.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%-16s %-40s %s\n", e.Type, ui.ObjectID(e.ID), e.Title)
		}
		fmt.Println(ui.Hint(fmt.Sprintf("%d objects", len(entries))))
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listType, "type", "", "filter by object type")
	rootCmd.AddCommand(listCmd)
}
