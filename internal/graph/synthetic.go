package graph

import (
	"strings"
	"time"

	"github.com/kibrary/kibrary/internal/model"
)

// Synthetic object construction. Every index-pattern's field list spawns one
// "field" object per field and one "fieldcategory" object per field-name
// prefix (the part before the first dot), so documentation can link from a
// dashboard all the way down to individual fields.
//
// Synthetic ids:
//
//	field:<pattern-name>/<field-name>
//	fieldcategory:<pattern-name>/<prefix>
//
// where <pattern-name> is the index-pattern id without its type prefix.

func (g *Graph) synthesizeFieldObjects() {
	now := time.Now().UTC().Format(time.RFC3339)

	for _, obj := range g.sortedObjects() {
		if obj.Type != model.TypeIndexPattern {
			continue
		}
		fields, ok := obj.Attributes()["fields"].([]any)
		if !ok {
			continue
		}
		patternName := strings.TrimPrefix(obj.ID, string(model.TypeIndexPattern)+":")

		for _, f := range fields {
			fm, ok := f.(map[string]any)
			if !ok {
				continue
			}
			name, _ := fm["name"].(string)
			if name == "" {
				continue
			}

			category := name
			if i := strings.Index(name, "."); i > 0 {
				category = name[:i]
			}
			catID := string(model.TypeFieldCategory) + ":" + patternName + "/" + category

			if _, ok := g.objects[catID]; !ok {
				g.objects[catID] = syntheticObject(model.TypeFieldCategory, catID, category, map[string]any{
					"indexPattern": obj.ID,
				}, now)
			}

			fieldID := string(model.TypeField) + ":" + patternName + "/" + name
			fieldType, _ := fm["type"].(string)
			g.objects[fieldID] = syntheticObject(model.TypeField, fieldID, name, map[string]any{
				"category":     catID,
				"indexPattern": obj.ID,
				"fieldType":    fieldType,
			}, now)
		}
	}
}

// syntheticObject builds a documentation-only object. Its attributes live
// under source[type] like any stored object, so title resolution and sort
// keys need no special casing.
func syntheticObject(typ model.Type, id, title string, attrs map[string]any, updatedAt string) *model.Object {
	attributes := map[string]any{"title": title}
	for k, v := range attrs {
		attributes[k] = v
	}
	return &model.Object{
		ID:      id,
		Type:    typ,
		Index:   typ.WireIndex(),
		DocType: "doc",
		Source: map[string]any{
			"type":       string(typ),
			string(typ): attributes,
			"updated_at": updatedAt,
		},
		Includes: map[string]any{},
	}
}

// syntheticRef reads an id-valued attribute of a synthetic object.
func syntheticRef(obj *model.Object, key string) string {
	ref, _ := obj.Attributes()[key].(string)
	return ref
}
