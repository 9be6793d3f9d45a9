package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kibrary/kibrary/internal/ui"
)

var compileCmd = &cobra.Command{
	Use:   "compile <output.json>",
	Short: "Flatten the library into a bulk-import export file",
	Long: `Recomposes every library object into wire form (include files merged back
into escaped JSON strings) and writes a single flat JSON array, sorted by
object id. The write is atomic: on failure a previous output file is left
untouched.

Examples:
  kib compile export.json
  kib compile export.json --library prod`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, warnings, err := loadLibrary()
		if err != nil {
			return handleError(ErrLibraryLoadFailed, err, "Check the library root directories")
		}

		if err := lib.CompileToFile(args[0]); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]any{
				"output":  args[0],
				"objects": lib.Len(),
			}, warnings, &Meta{Count: lib.Len()})
			return nil
		}
		fmt.Println(ui.Successf("compiled %d objects to %s", lib.Len(), ui.FilePath(args[0])))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
}
