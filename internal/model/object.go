// Package model defines the saved-object data model shared by the
// decomposer, the library store, the sync engine, and the graph builder.
package model

import (
	"reflect"
	"sort"
)

// Object is one saved object held in memory, in decomposed form: every
// include-bearing field that was an escaped JSON string on the wire (or an
// "@name" reference on disk) holds the parsed structure instead.
type Object struct {
	// ID is the globally unique identifier, format "<type>:<name>".
	ID string

	// Type is the resolved object type.
	Type Type

	// Index is the owning Elasticsearch index (".kibana" or ".x-lff-lookup").
	Index string

	// DocType is the wire _type, normally "doc".
	DocType string

	// Source is the decomposed _source mapping.
	Source map[string]any

	// Includes records which include names currently hold a parsed structure
	// in Source, keyed by include name. Values alias into Source.
	Includes map[string]any

	// Path is the on-disk root file, empty for objects not yet saved.
	Path string
}

// New builds an Object from a wire or on-disk record and resolves its type.
//
// Type resolution: source.type when present; lookups missing it are recognized
// by their owning index. Anything else is malformed.
func New(rec Record) (*Object, error) {
	if rec.ID == "" {
		return nil, &MalformedObjectError{Field: "_id"}
	}
	if rec.Source == nil {
		return nil, &MalformedObjectError{ID: rec.ID, Field: "_source"}
	}

	typ, _ := rec.Source["type"].(string)
	if typ == "" {
		if rec.Index == LookupIndex {
			typ = string(TypeLookup)
			rec.Source["type"] = typ
		} else {
			return nil, &MalformedObjectError{ID: rec.ID, Field: "type"}
		}
	}

	index := rec.Index
	if index == "" {
		index = Type(typ).WireIndex()
	}
	docType := rec.DocType
	if docType == "" {
		docType = "doc"
	}

	return &Object{
		ID:       rec.ID,
		Type:     Type(typ),
		Index:    index,
		DocType:  docType,
		Source:   rec.Source,
		Includes: map[string]any{},
	}, nil
}

// Record returns the wire-form shell of the object. Include-bearing fields are
// whatever Source currently holds; the decomposer's Recompose flattens them
// back to escaped strings before transmission.
func (o *Object) Record() Record {
	return Record{
		ID:      o.ID,
		Index:   o.Index,
		Source:  o.Source,
		DocType: o.DocType,
	}
}

// Attributes returns the map holding the object's type-specific fields.
// For most types that is source[type]; lookup attributes live at the source
// root. The map is created on demand so callers can set into it.
func (o *Object) Attributes() map[string]any {
	if o.Type == TypeLookup {
		return o.Source
	}
	attrs, ok := o.Source[string(o.Type)].(map[string]any)
	if !ok {
		attrs = map[string]any{}
		o.Source[string(o.Type)] = attrs
	}
	return attrs
}

// Title returns the display title: source[type].title, falling back to the ID.
func (o *Object) Title() string {
	if attrs, ok := o.Source[string(o.Type)].(map[string]any); ok {
		if title, ok := attrs["title"].(string); ok && title != "" {
			return title
		}
	}
	return o.ID
}

// SortKey is the stable ordering key used for deterministic documentation
// output: type and title joined with a dash.
func (o *Object) SortKey() string {
	return string(o.Type) + "-" + o.Title()
}

// Equal reports structural equality of two decomposed objects. Both sides
// must have gone through the normalizer; formatting and key order never
// matter, only content.
func Equal(a, b *Object) bool {
	if a == nil || b == nil {
		return a == b
	}
	return reflect.DeepEqual(a.Source, b.Source)
}

// SortObjects orders objects by SortKey in place.
func SortObjects(objs []*Object) {
	sort.Slice(objs, func(i, j int) bool {
		return objs[i].SortKey() < objs[j].SortKey()
	})
}
