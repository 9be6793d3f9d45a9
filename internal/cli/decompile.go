package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kibrary/kibrary/internal/audit"
	"github.com/kibrary/kibrary/internal/engine"
	"github.com/kibrary/kibrary/internal/model"
	"github.com/kibrary/kibrary/internal/source"
	"github.com/kibrary/kibrary/internal/ui"
)

var (
	decompileAuditLog string
	decompileVerbose  bool
)

var decompileCmd = &cobra.Command{
	Use:   "decompile <export.json>",
	Short: "Sync a saved-object export into the library",
	Long: `Reads a flat JSON array export (as produced by the Kibana search API or by
'kib compile') and reconciles every object against the library.

Objects not in the library are decomposed into the first root's new/
subfolder. Objects identical to their library copy are untouched. Changed
objects are rewritten in place. Malformed records are skipped and counted.

Examples:
  kib decompile export.json
  kib decompile export.json --audit-log sync.tsv
  kib decompile export.json --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, warnings, err := loadLibrary()
		if err != nil {
			return handleError(ErrLibraryLoadFailed, err, "Check the library root directories")
		}

		src, err := source.OpenFile(args[0])
		if err != nil {
			return handleError(ErrSourceInvalid, err, "The export must be a JSON array of records")
		}

		auditPath := decompileAuditLog
		if auditPath == "" {
			auditPath = cfg.AuditLog
		}
		log := audit.New(auditPath)
		if err := log.Ensure(); err != nil {
			return handleError(ErrAuditLogFailed, err, "Check the audit log target")
		}

		opts := engine.Options{Audit: log}
		if decompileVerbose && !isJSONOutput() {
			opts.Progress = func(c engine.Classification, obj *model.Object) {
				fmt.Printf("%-10s %s\n", c, ui.ObjectID(obj.ID))
			}
		}

		res, err := engine.Run(lib, src, opts)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		refreshIndex(lib)

		for _, skipErr := range res.Errors {
			warnings = append(warnings, Warning{Code: WarnRecordSkipped, Message: skipErr.Error()})
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]any{
				"new":       res.New,
				"unchanged": res.Unchanged,
				"updated":   res.Updated,
				"skipped":   res.Skipped,
			}, warnings, &Meta{Count: res.Total()})
			return nil
		}

		for _, skipErr := range res.Errors {
			fmt.Fprintln(os.Stderr, ui.Warningf("skipped: %v", skipErr))
		}
		fmt.Println(ui.Successf("decompile complete: %d new, %d unchanged, %d updated, %d skipped",
			res.New, res.Unchanged, res.Updated, res.Skipped))
		return nil
	},
}

func init() {
	decompileCmd.Flags().StringVar(&decompileAuditLog, "audit-log", "", "append per-object classifications to this tab-separated file")
	decompileCmd.Flags().BoolVarP(&decompileVerbose, "verbose", "v", false, "print every classification")
	rootCmd.AddCommand(decompileCmd)
}
