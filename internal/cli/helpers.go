package cli

import (
	"fmt"
	"os"

	"github.com/kibrary/kibrary/internal/index"
	"github.com/kibrary/kibrary/internal/library"
	"github.com/kibrary/kibrary/internal/ui"
)

// loadLibrary loads the resolved roots and reports per-file issues without
// failing: parse failures and duplicate ids are the library's documented
// non-fatal conditions.
func loadLibrary() (*library.Library, []Warning, error) {
	lib, err := library.Load(getRoots())
	if err != nil {
		return nil, nil, err
	}

	warnings := make([]Warning, 0, len(lib.Issues))
	for _, issue := range lib.Issues {
		code := WarnParseFailure
		if issue.Duplicate {
			code = WarnDuplicateID
		}
		warnings = append(warnings, Warning{Code: code, Message: issue.String()})
	}
	if !isJSONOutput() {
		for _, issue := range lib.Issues {
			fmt.Fprintln(os.Stderr, ui.Warning(issue.String()))
		}
	}
	return lib, warnings, nil
}

// refreshIndex rebuilds the sqlite catalog after operations that changed the
// library. Index trouble is reported but never fails the primary operation.
func refreshIndex(lib *library.Library) {
	db, err := index.Open(lib.FirstRoot())
	if err != nil {
		if !isJSONOutput() {
			fmt.Fprintln(os.Stderr, ui.Warningf("index not refreshed: %v", err))
		}
		return
	}
	defer db.Close()
	if err := db.Rebuild(lib.Objects()); err != nil && !isJSONOutput() {
		fmt.Fprintln(os.Stderr, ui.Warningf("index not refreshed: %v", err))
	}
}
