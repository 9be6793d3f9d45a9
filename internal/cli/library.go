package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kibrary/kibrary/internal/config"
	"github.com/kibrary/kibrary/internal/ui"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage named libraries in the global config",
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured libraries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := loadGlobalConfig()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		names := c.LibraryNames()
		sort.Strings(names)

		if isJSONOutput() {
			items := make([]map[string]any, 0, len(names))
			for _, name := range names {
				items = append(items, map[string]any{
					"name":    name,
					"roots":   c.Libraries[name],
					"default": name == c.DefaultLibrary,
				})
			}
			outputSuccess(map[string]any{"items": items}, &Meta{Count: len(items)})
			return nil
		}

		if len(names) == 0 {
			fmt.Println("No libraries configured. Run 'kib library add <name> <dir>...'")
			return nil
		}
		for _, name := range names {
			marker := " "
			if name == c.DefaultLibrary {
				marker = "*"
			}
			fmt.Printf("%s %-20s %s\n", marker, name, ui.FilePath(strings.Join(c.Libraries[name], ", ")))
		}
		return nil
	},
}

var libraryAddCmd = &cobra.Command{
	Use:   "add <name> <dir>...",
	Short: "Add or replace a named library",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, path, err := loadGlobalConfig()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		name := args[0]
		if c.Libraries == nil {
			c.Libraries = map[string][]string{}
		}
		c.Libraries[name] = args[1:]
		if c.DefaultLibrary == "" {
			c.DefaultLibrary = name
		}

		if err := config.SaveTo(path, c); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{"name": name, "roots": args[1:]}, nil)
			return nil
		}
		fmt.Println(ui.Successf("library %q -> %s", name, strings.Join(args[1:], ", ")))
		return nil
	},
}

var libraryUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the default library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, path, err := loadGlobalConfig()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		name := args[0]
		if _, ok := c.Libraries[name]; !ok {
			return handleErrorMsg(ErrLibraryNotFound,
				fmt.Sprintf("library %q not found in config", name),
				"Run 'kib library list' to see configured libraries")
		}

		c.DefaultLibrary = name
		if err := config.SaveTo(path, c); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{"default": name}, nil)
			return nil
		}
		fmt.Println(ui.Successf("default library is now %q", name))
		return nil
	},
}

func init() {
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryAddCmd)
	libraryCmd.AddCommand(libraryUseCmd)
	rootCmd.AddCommand(libraryCmd)
}
