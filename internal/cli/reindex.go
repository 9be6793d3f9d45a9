package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kibrary/kibrary/internal/index"
	"github.com/kibrary/kibrary/internal/ui"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the object index from the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, warnings, err := loadLibrary()
		if err != nil {
			return handleError(ErrLibraryLoadFailed, err, "Check the library root directories")
		}

		db, err := index.Open(lib.FirstRoot())
		if err != nil {
			return handleError(ErrIndexError, err, "")
		}
		defer db.Close()

		if err := db.Rebuild(lib.Objects()); err != nil {
			return handleError(ErrIndexError, err, "")
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]any{"objects": lib.Len()}, warnings, &Meta{Count: lib.Len()})
			return nil
		}
		fmt.Println(ui.Successf("indexed %d objects", lib.Len()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
