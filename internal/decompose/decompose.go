// Package decompose converts saved objects between wire form (nested JSON
// stored as escaped strings) and the canonical decomposed form kept in the
// library, and back. It owns every content transformation the tool performs:
// include extraction and merging, canonical ordering, and the documented
// backward-compatibility migrations.
package decompose

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/kibrary/kibrary/internal/model"
	"github.com/kibrary/kibrary/internal/paths"
)

// FromRecord builds a fully decomposed, normalized object from a wire record.
// Every include-bearing field holding an escaped JSON string is parsed into
// structure, then the content is canonicalized (field ordering, legacy
// migrations) so the result is directly comparable with library objects.
func FromRecord(rec model.Record) (*model.Object, error) {
	obj, err := model.New(rec)
	if err != nil {
		return nil, err
	}
	if err := Normalize(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// Normalize brings an object's source to canonical decomposed form:
//   - legacy lookup objects are migrated to the current shape
//   - include-bearing fields holding inline JSON strings are parsed
//   - index-pattern field lists are sorted by field name
//
// Normalize is idempotent and is applied to both wire-built and disk-loaded
// objects, so structural equality never depends on where an object came from.
func Normalize(obj *model.Object) error {
	if obj.Type == model.TypeLookup {
		if err := migrateLegacyLookup(obj); err != nil {
			return err
		}
	}

	attrs := obj.Attributes()
	for _, inc := range obj.Type.IncludeFields() {
		v, ok := getPath(attrs, inc.Path)
		if !ok {
			continue
		}
		s, isString := v.(string)
		if isString {
			if _, isRef := paths.ParseIncludeRef(s); isRef {
				// Reference to a sibling file; ResolveIncludes handles it.
				continue
			}
			var parsed any
			if err := json.Unmarshal([]byte(s), &parsed); err != nil {
				return fmt.Errorf("object %s: parse inline %s: %w", obj.ID, inc.Name, err)
			}
			setPath(attrs, inc.Path, parsed)
			obj.Includes[inc.Name] = parsed
		} else {
			obj.Includes[inc.Name] = v
		}
	}

	if obj.Type == model.TypeIndexPattern {
		sortIndexPatternFields(obj)
	}
	return nil
}

// ResolveIncludes loads sibling include files referenced by "@name" (or the
// legacy "@ref-name") values in the object's include-bearing fields. objPath
// is the object's root file; includes are its siblings.
func ResolveIncludes(obj *model.Object, objPath string) error {
	attrs := obj.Attributes()
	for _, inc := range obj.Type.IncludeFields() {
		v, ok := getPath(attrs, inc.Path)
		if !ok {
			continue
		}
		s, isString := v.(string)
		if !isString {
			continue
		}
		name, isRef := paths.ParseIncludeRef(s)
		if !isRef {
			continue
		}

		data, err := readIncludeFile(objPath, name)
		if err != nil {
			return fmt.Errorf("object %s: include %s: %w", obj.ID, name, err)
		}
		var parsed any
		if err := json.Unmarshal(data, &parsed); err != nil {
			return fmt.Errorf("object %s: parse include %s: %w", obj.ID, name, err)
		}
		setPath(attrs, inc.Path, parsed)
		obj.Includes[inc.Name] = parsed
	}
	return nil
}

// readIncludeFile reads "<base>@<name>.json", falling back to the legacy
// "<base>@ref-<name>.json" file name.
func readIncludeFile(objPath, name string) ([]byte, error) {
	data, err := os.ReadFile(paths.IncludeFileName(objPath, name))
	if err == nil {
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	legacy, legacyErr := os.ReadFile(paths.IncludeFileName(objPath, "ref-"+name))
	if legacyErr != nil {
		return nil, err
	}
	return legacy, nil
}

// sortIndexPatternFields orders the field list by field name. Key order inside
// each field definition is handled at serialization time (see canonical.go).
func sortIndexPatternFields(obj *model.Object) {
	fields, ok := obj.Attributes()["fields"].([]any)
	if !ok {
		return
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return fieldName(fields[i]) < fieldName(fields[j])
	})
}

func fieldName(v any) string {
	if m, ok := v.(map[string]any); ok {
		if name, ok := m["name"].(string); ok {
			return name
		}
	}
	return ""
}

// migrateLegacyLookup upgrades a lookup object still carrying the legacy
// source.config shape. The legacy map is a JSON string of key -> {label, ...};
// the current shape is an ordered [{key, value}] list, sorted by key. The
// legacy field is removed and the object is stamped with its type. Performed
// transparently on load, exactly once.
func migrateLegacyLookup(obj *model.Object) error {
	cfg, ok := obj.Source["config"].(map[string]any)
	if !ok {
		return nil
	}

	if ft, ok := cfg["fieldType"]; ok {
		obj.Source["fieldType"] = ft
	}
	if lt, ok := cfg["lookupType"]; ok {
		obj.Source["lookupType"] = lt
	}

	if raw, ok := cfg["map"].(string); ok {
		var legacy map[string]map[string]any
		if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
			return fmt.Errorf("object %s: parse legacy lookup map: %w", obj.ID, err)
		}
		keys := make([]string, 0, len(legacy))
		for k := range legacy {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]any, 0, len(keys))
		for _, k := range keys {
			entries = append(entries, map[string]any{
				"key":   k,
				"value": legacy[k]["label"],
			})
		}
		obj.Source["map"] = entries
	}

	delete(obj.Source, "config")
	obj.Source["type"] = string(model.TypeLookup)
	return nil
}

// getPath walks nested maps along path. The final segment's value is returned
// as-is; intermediate segments must be maps.
func getPath(m map[string]any, path []string) (any, bool) {
	for i, seg := range path {
		v, ok := m[seg]
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return v, true
		}
		m, ok = v.(map[string]any)
		if !ok {
			return nil, false
		}
	}
	return nil, false
}

// setPath sets the value at path, creating intermediate maps as needed.
func setPath(m map[string]any, path []string, v any) {
	for i, seg := range path {
		if i == len(path)-1 {
			m[seg] = v
			return
		}
		next, ok := m[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[seg] = next
		}
		m = next
	}
}
