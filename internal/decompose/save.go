package decompose

import (
	"fmt"

	"github.com/kibrary/kibrary/internal/model"
	"github.com/kibrary/kibrary/internal/paths"
)

// SaveSet is the serialized form of one object ready to hit disk: the root
// file plus one sibling file per extracted include. All byte slices are
// canonical (tab indent, trailing newline), so re-saving unchanged content
// reproduces identical bytes.
type SaveSet struct {
	Root     []byte
	Includes map[string][]byte // include name -> file content
}

// PrepareSave renders an object to its decomposed on-disk form. Every
// include-bearing field currently holding a parsed structure is moved to an
// include file and replaced by an "@name" reference in the root file. The
// object itself is not mutated.
func PrepareSave(obj *model.Object) (*SaveSet, error) {
	src, ok := copyValue(obj.Source).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("object %s: source is not a mapping", obj.ID)
	}
	attrs := attributesOf(obj.Type, src)

	set := &SaveSet{Includes: map[string][]byte{}}
	for _, inc := range obj.Type.IncludeFields() {
		v, found := getPath(attrs, inc.Path)
		if !found {
			continue
		}
		if _, isString := v.(string); isString {
			// Still an unresolved "@name" reference or raw inline string;
			// leave it untouched.
			continue
		}
		data, err := MarshalIndent(includeValue(obj.Type, inc.Name, v))
		if err != nil {
			return nil, fmt.Errorf("object %s: marshal include %s: %w", obj.ID, inc.Name, err)
		}
		set.Includes[inc.Name] = data
		setPath(attrs, inc.Path, paths.IncludeRef(inc.Name))
	}

	rec := model.Record{
		ID:      obj.ID,
		Index:   obj.Index,
		Source:  src,
		DocType: obj.DocType,
	}
	root, err := MarshalIndent(rec)
	if err != nil {
		return nil, fmt.Errorf("object %s: marshal root: %w", obj.ID, err)
	}
	set.Root = root
	return set, nil
}

// Recompose flattens a decomposed object back to wire form: every
// include-bearing field holding a parsed structure becomes a compact canonical
// JSON string again. The object is not mutated.
func Recompose(obj *model.Object) (model.Record, error) {
	src, ok := copyValue(obj.Source).(map[string]any)
	if !ok {
		return model.Record{}, fmt.Errorf("object %s: source is not a mapping", obj.ID)
	}
	attrs := attributesOf(obj.Type, src)

	for _, inc := range obj.Type.IncludeFields() {
		v, found := getPath(attrs, inc.Path)
		if !found {
			continue
		}
		if _, isString := v.(string); isString {
			continue
		}
		data, err := Marshal(includeValue(obj.Type, inc.Name, v))
		if err != nil {
			return model.Record{}, fmt.Errorf("object %s: marshal include %s: %w", obj.ID, inc.Name, err)
		}
		setPath(attrs, inc.Path, string(data))
	}

	return model.Record{
		ID:      obj.ID,
		Index:   obj.Index,
		Source:  src,
		DocType: obj.DocType,
	}, nil
}

// attributesOf mirrors Object.Attributes for a copied source map.
func attributesOf(typ model.Type, src map[string]any) map[string]any {
	if typ == model.TypeLookup {
		return src
	}
	attrs, ok := src[string(typ)].(map[string]any)
	if !ok {
		attrs = map[string]any{}
		src[string(typ)] = attrs
	}
	return attrs
}

// copyValue deep-copies a JSON-shaped value (maps, slices, scalars).
func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = copyValue(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}
