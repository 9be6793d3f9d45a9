package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kibrary/kibrary/internal/graph"
	"github.com/kibrary/kibrary/internal/pages"
	"github.com/kibrary/kibrary/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one object with its references",
	Long: `Renders an object's documentation page in the terminal: title, includes,
and its uses/used-by edges from the reference graph.

Examples:
  kib show dashboard:traffic-overview
  kib show search:errors --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		lib, _, err := loadLibrary()
		if err != nil {
			return handleError(ErrLibraryLoadFailed, err, "Check the library root directories")
		}

		g := graph.Build(lib)
		obj, ok := g.Object(id)
		if !ok {
			return handleErrorMsg(ErrObjectNotFound,
				fmt.Sprintf("object not found: %s", id),
				"Run 'kib list' to see library objects")
		}

		if isJSONOutput() {
			uses := make([]ObjectJSON, 0)
			for _, t := range g.Uses(id) {
				uses = append(uses, ObjectJSON{ID: t.ID, Type: string(t.Type), Title: t.Title()})
			}
			usedBy := make([]ObjectJSON, 0)
			for _, t := range g.UsedBy(id) {
				usedBy = append(usedBy, ObjectJSON{ID: t.ID, Type: string(t.Type), Title: t.Title()})
			}
			outputSuccess(map[string]any{
				"id":      obj.ID,
				"type":    string(obj.Type),
				"title":   obj.Title(),
				"path":    obj.Path,
				"uses":    uses,
				"used_by": usedBy,
			}, nil)
			return nil
		}

		content := pages.RenderObject(g, obj)
		display := ui.NewDisplayContext()
		if display.IsTTY {
			rendered, err := ui.RenderMarkdown(content, display.TermWidth)
			if err == nil {
				fmt.Print(rendered)
				return nil
			}
		}
		fmt.Print(content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
