package model

// Type identifies a saved-object type. The set is closed: the decomposer and
// the reference-graph builder switch exhaustively over it.
type Type string

const (
	TypeIndexPattern  Type = "index-pattern"
	TypeDashboard     Type = "dashboard"
	TypeVisualization Type = "visualization"
	TypeSearch        Type = "search"
	TypeLookup        Type = "x-lff-lookup"
	TypeConfig        Type = "config"

	// Synthetic types exist only for documentation. They are derived from
	// index-pattern field lists and never stored in the library.
	TypeField         Type = "field"
	TypeFieldCategory Type = "fieldcategory"
)

// LookupIndex is the Elasticsearch index that holds lookup objects. Lookup
// records frequently omit source.type; the owning index identifies them.
const LookupIndex = ".x-lff-lookup"

// KibanaIndex is the Elasticsearch index that holds all other saved objects.
const KibanaIndex = ".kibana"

// Synthetic reports whether the type is documentation-only.
func (t Type) Synthetic() bool {
	return t == TypeField || t == TypeFieldCategory
}

// WireIndex returns the Elasticsearch index a type belongs to in wire form.
func (t Type) WireIndex() string {
	if t == TypeLookup {
		return LookupIndex
	}
	return KibanaIndex
}

// IncludeField describes one include-bearing field of a saved-object type:
// a field whose value is nested JSON stored as an escaped string in wire form.
type IncludeField struct {
	// Path navigates the object's attributes to the field,
	// e.g. {"kibanaSavedObjectMeta", "searchSourceJSON"}.
	Path []string

	// Name is the include name used in "@name" references and sibling
	// "<object>@<name>.json" file names. Always the last path segment.
	Name string

	// Optional fields may be absent from the source without error.
	Optional bool
}

// IncludeFields returns the include-bearing fields for the type, in the order
// they are extracted. Types without include-bearing fields return nil.
func (t Type) IncludeFields() []IncludeField {
	switch t {
	case TypeIndexPattern:
		return []IncludeField{
			{Path: []string{"fields"}, Name: "fields"},
			{Path: []string{"fieldFormatMap"}, Name: "fieldFormatMap", Optional: true},
		}
	case TypeDashboard:
		return []IncludeField{
			{Path: []string{"kibanaSavedObjectMeta", "searchSourceJSON"}, Name: "searchSourceJSON"},
			{Path: []string{"panelsJSON"}, Name: "panelsJSON"},
			{Path: []string{"optionsJSON"}, Name: "optionsJSON"},
			{Path: []string{"uiStateJSON"}, Name: "uiStateJSON", Optional: true},
		}
	case TypeVisualization:
		return []IncludeField{
			{Path: []string{"kibanaSavedObjectMeta", "searchSourceJSON"}, Name: "searchSourceJSON"},
			{Path: []string{"visState"}, Name: "visState"},
			{Path: []string{"uiStateJSON"}, Name: "uiStateJSON", Optional: true},
		}
	case TypeSearch:
		return []IncludeField{
			{Path: []string{"kibanaSavedObjectMeta", "searchSourceJSON"}, Name: "searchSourceJSON"},
		}
	case TypeLookup:
		return []IncludeField{
			{Path: []string{"map"}, Name: "map"},
		}
	case TypeConfig, TypeField, TypeFieldCategory:
		return nil
	}
	return nil
}
