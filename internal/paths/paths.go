// Package paths provides canonical helpers for converting between:
// - saved-object IDs (e.g. "dashboard:traffic-overview")
// - library file names (e.g. "dashboard_traffic-overview.json")
// - include file names (e.g. "dashboard_traffic-overview@panelsJSON.json")
//
// It centralizes the sanitization and include-name rules so that the store,
// the sync engine, and the CLI stay consistent.
package paths

import (
	"path/filepath"
	"strings"
)

// Extension is the file extension for all library files.
const Extension = ".json"

// legacyIncludePrefix is the old include-reference prefix. It is accepted on
// read and rewritten to the current "@" form on write.
const legacyIncludePrefix = "@ref-"

// SanitizeID converts a saved-object ID into a file basename (no extension).
// The only character rewritten is ':', which is not portable across file systems.
func SanitizeID(id string) string {
	return strings.ReplaceAll(id, ":", "_")
}

// ObjectFileName returns the library file name for an object ID.
func ObjectFileName(id string) string {
	return SanitizeID(id) + Extension
}

// IncludeFileName returns the sibling include file name for an object file.
// objectPath may be relative or absolute; the include lands next to it.
func IncludeFileName(objectPath, include string) string {
	base := strings.TrimSuffix(objectPath, Extension)
	return base + "@" + include + Extension
}

// IsIncludeFile reports whether a file name belongs to an include rather than
// a root object. Include files carry '@' in their basename.
func IsIncludeFile(name string) bool {
	return strings.Contains(filepath.Base(name), "@")
}

// IsObjectFile reports whether a file name is a loadable root object file.
func IsObjectFile(name string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(base, Extension) && !strings.Contains(base, "@")
}

// IncludeRef returns the reference string stored in an include-bearing field
// when its value has been extracted to a sibling file.
func IncludeRef(include string) string {
	return "@" + include
}

// ParseIncludeRef extracts the include name from a field value that references
// a sibling include file. The legacy "@ref-<name>" convention is accepted and
// mapped to the current name. Returns ("", false) for inline values.
func ParseIncludeRef(value string) (string, bool) {
	if strings.HasPrefix(value, legacyIncludePrefix) {
		return strings.TrimPrefix(value, legacyIncludePrefix), true
	}
	if strings.HasPrefix(value, "@") {
		return strings.TrimPrefix(value, "@"), true
	}
	return "", false
}
