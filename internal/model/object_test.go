package model

import (
	"errors"
	"testing"
)

func TestNewResolvesType(t *testing.T) {
	obj, err := New(Record{
		ID:    "dashboard:traffic",
		Index: KibanaIndex,
		Source: map[string]any{
			"type":      "dashboard",
			"dashboard": map[string]any{"title": "Traffic"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj.Type != TypeDashboard {
		t.Errorf("type = %s, want %s", obj.Type, TypeDashboard)
	}
	if obj.Title() != "Traffic" {
		t.Errorf("title = %q, want %q", obj.Title(), "Traffic")
	}
}

func TestNewInfersLookupTypeFromIndex(t *testing.T) {
	obj, err := New(Record{
		ID:     "x-lff-lookup:interfaces",
		Index:  LookupIndex,
		Source: map[string]any{"fieldType": "string"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj.Type != TypeLookup {
		t.Errorf("type = %s, want %s", obj.Type, TypeLookup)
	}
	if obj.Source["type"] != string(TypeLookup) {
		t.Errorf("source.type = %v, want %s", obj.Source["type"], TypeLookup)
	}
}

func TestNewMissingTypeIsMalformed(t *testing.T) {
	tests := []struct {
		name      string
		rec       Record
		wantField string
	}{
		{
			name:      "no id",
			rec:       Record{Source: map[string]any{"type": "search"}},
			wantField: "_id",
		},
		{
			name:      "no source",
			rec:       Record{ID: "search:errors"},
			wantField: "_source",
		},
		{
			name:      "no type and not a lookup index",
			rec:       Record{ID: "search:errors", Index: KibanaIndex, Source: map[string]any{}},
			wantField: "type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rec)
			var malformed *MalformedObjectError
			if !errors.As(err, &malformed) {
				t.Fatalf("error = %v, want MalformedObjectError", err)
			}
			if malformed.Field != tt.wantField {
				t.Errorf("missing field = %q, want %q", malformed.Field, tt.wantField)
			}
		})
	}
}

func TestTitleFallsBackToID(t *testing.T) {
	obj, err := New(Record{
		ID:     "visualization:no-title",
		Index:  KibanaIndex,
		Source: map[string]any{"type": "visualization"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj.Title() != "visualization:no-title" {
		t.Errorf("title = %q, want the id", obj.Title())
	}
}

func TestEqualIgnoresMapOrderNotContent(t *testing.T) {
	a := &Object{Source: map[string]any{
		"type":   "search",
		"search": map[string]any{"title": "Errors", "version": float64(1)},
	}}
	b := &Object{Source: map[string]any{
		"search": map[string]any{"version": float64(1), "title": "Errors"},
		"type":   "search",
	}}
	if !Equal(a, b) {
		t.Error("structurally identical objects compare unequal")
	}

	b.Source["search"].(map[string]any)["title"] = "Warnings"
	if Equal(a, b) {
		t.Error("different content compares equal")
	}
}

func TestSortKey(t *testing.T) {
	obj := &Object{
		ID:   "dashboard:traffic",
		Type: TypeDashboard,
		Source: map[string]any{
			"type":      "dashboard",
			"dashboard": map[string]any{"title": "Traffic"},
		},
	}
	if got := obj.SortKey(); got != "dashboard-Traffic" {
		t.Errorf("SortKey = %q, want %q", got, "dashboard-Traffic")
	}
}

func TestIncludeFieldsClosedOverTypes(t *testing.T) {
	// Synthetic and config types carry no include-bearing fields.
	for _, typ := range []Type{TypeConfig, TypeField, TypeFieldCategory} {
		if fields := typ.IncludeFields(); fields != nil {
			t.Errorf("%s: expected no include fields, got %v", typ, fields)
		}
	}
	// Every storable type with includes names its last path segment.
	for _, typ := range []Type{TypeIndexPattern, TypeDashboard, TypeVisualization, TypeSearch, TypeLookup} {
		for _, inc := range typ.IncludeFields() {
			if inc.Name != inc.Path[len(inc.Path)-1] {
				t.Errorf("%s: include name %q != last path segment %q", typ, inc.Name, inc.Path[len(inc.Path)-1])
			}
		}
	}
}
