package decompose

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/kibrary/kibrary/internal/model"
)

// Canonical serialization rules:
//   - map keys in alphabetical order (encoding/json's map behavior)
//   - no HTML escaping, so queries with <, > and & stay readable in diffs
//   - pretty form uses tab indentation and ends with a single newline
//   - index-pattern field definitions order their keys name, type, then the
//     rest alphabetically
//
// Identical logical content must always produce identical bytes; version
// control diffs depend on it.

// Marshal returns compact canonical JSON.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalIndent returns pretty canonical JSON: tab indent, trailing newline.
func MarshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// includeValue wraps an include's parsed structure so type-specific key
// ordering applies during marshaling.
func includeValue(typ model.Type, include string, v any) any {
	if typ == model.TypeIndexPattern && include == "fields" {
		return wrapFieldDefs(v)
	}
	return v
}

// wrapFieldDefs wraps each element of an index-pattern field list in
// fieldDef so its keys serialize name-and-type first.
func wrapFieldDefs(v any) any {
	list, ok := v.([]any)
	if !ok {
		return v
	}
	wrapped := make([]any, len(list))
	for i, el := range list {
		if m, ok := el.(map[string]any); ok {
			wrapped[i] = fieldDef(m)
		} else {
			wrapped[i] = el
		}
	}
	return wrapped
}

// fieldDef is one index-pattern field definition. Its keys serialize as
// "name", "type", then the remaining keys alphabetically, so a field list is
// scannable in diffs no matter what order the source emitted.
type fieldDef map[string]any

// leadingFieldKeys are emitted first, in this order, when present.
var leadingFieldKeys = []string{"name", "type"}

func (f fieldDef) MarshalJSON() ([]byte, error) {
	rest := make([]string, 0, len(f))
	for k := range f {
		if k == "name" || k == "type" {
			continue
		}
		rest = append(rest, k)
	}
	sort.Strings(rest)

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	writeKey := func(k string) error {
		v, ok := f[k]
		if !ok {
			return nil
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, err := Marshal(k)
		if err != nil {
			return err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(vb)
		return nil
	}
	for _, k := range leadingFieldKeys {
		if err := writeKey(k); err != nil {
			return nil, fmt.Errorf("marshal field key %q: %w", k, err)
		}
	}
	for _, k := range rest {
		if err := writeKey(k); err != nil {
			return nil, fmt.Errorf("marshal field key %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
