package model

// Record is the wire form of one saved object, as produced by the
// Elasticsearch search/scroll and bulk APIs and by library exports. It is also
// the on-disk root-file shape, so a loaded library file carries everything a
// recompile needs.
//
// Struct field order matches the canonical (alphabetical) key order of the
// serialized form.
type Record struct {
	ID      string         `json:"_id"`
	Index   string         `json:"_index"`
	Source  map[string]any `json:"_source"`
	DocType string         `json:"_type,omitempty"`
}
