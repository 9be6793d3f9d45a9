package decompose

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kibrary/kibrary/internal/model"
	"github.com/kibrary/kibrary/internal/paths"
	"github.com/kibrary/kibrary/internal/testutil"
)

func TestFromRecordParsesInlineIncludes(t *testing.T) {
	obj, err := FromRecord(testutil.DashboardRecord("traffic-overview", ""))
	if err != nil {
		t.Fatalf("FromRecord: %v", err)
	}

	panels, ok := obj.Attributes()["panelsJSON"].([]any)
	if !ok {
		t.Fatalf("panelsJSON = %T, want parsed list", obj.Attributes()["panelsJSON"])
	}
	if len(panels) != 1 {
		t.Fatalf("panels = %d, want 1", len(panels))
	}
	panel := panels[0].(map[string]any)
	if panel["id"] != "traffic-by-host" || panel["type"] != "visualization" {
		t.Errorf("panel = %v, want traffic-by-host visualization", panel)
	}

	for _, name := range []string{"panelsJSON", "optionsJSON", "uiStateJSON", "searchSourceJSON"} {
		if _, ok := obj.Includes[name]; !ok {
			t.Errorf("include %q not recorded", name)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	recs := []model.Record{
		testutil.DashboardRecord("traffic-overview", ""),
		testutil.VisualizationRecord("traffic-by-host", "errors"),
		testutil.SearchRecord("errors"),
		testutil.IndexPatternRecord("logs-*", ""),
		testutil.LookupRecord("interfaces"),
	}
	for _, rec := range recs {
		obj, err := FromRecord(rec)
		if err != nil {
			t.Fatalf("%s: FromRecord: %v", rec.ID, err)
		}
		before := copyValue(obj.Source)
		if err := Normalize(obj); err != nil {
			t.Fatalf("%s: second Normalize: %v", rec.ID, err)
		}
		if diff := cmp.Diff(before, obj.Source); diff != "" {
			t.Errorf("%s: second Normalize changed content (-first +second):\n%s", rec.ID, diff)
		}
	}
}

func TestNormalizeSortsIndexPatternFields(t *testing.T) {
	fields := `[{"name":"zeta","type":"string"},{"name":"@timestamp","type":"date"},{"name":"alpha","type":"string"}]`
	obj, err := FromRecord(testutil.IndexPatternRecord("logs-*", fields))
	if err != nil {
		t.Fatalf("FromRecord: %v", err)
	}

	parsed := obj.Attributes()["fields"].([]any)
	got := make([]string, len(parsed))
	for i, f := range parsed {
		got[i] = f.(map[string]any)["name"].(string)
	}
	want := []string{"@timestamp", "alpha", "zeta"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("field order (-want +got):\n%s", diff)
	}
}

func TestNormalizeRejectsBadInlineJSON(t *testing.T) {
	rec := testutil.SearchRecord("errors")
	rec.Source["search"].(map[string]any)["kibanaSavedObjectMeta"].(map[string]any)["searchSourceJSON"] = "{not json"
	if _, err := FromRecord(rec); err == nil {
		t.Fatal("expected parse error for malformed inline JSON")
	}
}

func TestMigrateLegacyLookup(t *testing.T) {
	obj, err := FromRecord(model.Record{
		ID:    "x-lff-lookup:interfaces",
		Index: model.LookupIndex,
		Source: map[string]any{
			"config": map[string]any{
				"fieldType":  "string",
				"lookupType": "simple",
				"map":        `{"eth1":{"label":"lan"},"eth0":{"label":"uplink"}}`,
			},
		},
	})
	if err != nil {
		t.Fatalf("FromRecord: %v", err)
	}

	want := map[string]any{
		"type":       "x-lff-lookup",
		"fieldType":  "string",
		"lookupType": "simple",
		"map": []any{
			map[string]any{"key": "eth0", "value": "uplink"},
			map[string]any{"key": "eth1", "value": "lan"},
		},
	}
	if diff := cmp.Diff(want, obj.Source); diff != "" {
		t.Errorf("migrated source (-want +got):\n%s", diff)
	}
}

func TestMigratedLookupEqualsCurrentShape(t *testing.T) {
	legacy, err := FromRecord(model.Record{
		ID:    "x-lff-lookup:interfaces",
		Index: model.LookupIndex,
		Source: map[string]any{
			"config": map[string]any{
				"fieldType":  "string",
				"lookupType": "simple",
				"map":        `{"eth0":{"label":"uplink"},"eth1":{"label":"lan"}}`,
			},
		},
	})
	if err != nil {
		t.Fatalf("legacy FromRecord: %v", err)
	}
	current, err := FromRecord(testutil.LookupRecord("interfaces"))
	if err != nil {
		t.Fatalf("current FromRecord: %v", err)
	}
	if !model.Equal(legacy, current) {
		t.Errorf("migrated legacy lookup differs from current shape:\n%s",
			cmp.Diff(current.Source, legacy.Source))
	}
}

func TestResolveIncludes(t *testing.T) {
	dir := t.TempDir()
	objPath := testutil.WriteFile(t, dir, "search_errors.json", []byte("{}"))
	content := []byte("{\n\t\"index\": \"logs-*\"\n}\n")

	tests := []struct {
		name string
		ref  string
		file string
	}{
		{name: "current ref and file", ref: "@searchSourceJSON", file: "search_errors@searchSourceJSON.json"},
		{name: "legacy ref, current file", ref: "@ref-searchSourceJSON", file: "search_errors@searchSourceJSON.json"},
		{name: "legacy ref, legacy file", ref: "@ref-searchSourceJSON", file: "search_errors@ref-searchSourceJSON.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := t.TempDir()
			path := testutil.WriteFile(t, sub, "search_errors.json", []byte("{}"))
			testutil.WriteFile(t, sub, tt.file, content)

			obj, err := model.New(model.Record{
				ID:    "search:errors",
				Index: model.KibanaIndex,
				Source: map[string]any{
					"type": "search",
					"search": map[string]any{
						"title": "Errors",
						"kibanaSavedObjectMeta": map[string]any{
							"searchSourceJSON": tt.ref,
						},
					},
				},
			})
			if err != nil {
				t.Fatalf("model.New: %v", err)
			}
			if err := ResolveIncludes(obj, path); err != nil {
				t.Fatalf("ResolveIncludes: %v", err)
			}

			want := map[string]any{"index": "logs-*"}
			got := obj.Attributes()["kibanaSavedObjectMeta"].(map[string]any)["searchSourceJSON"]
			if diff := cmp.Diff(want, got.(map[string]any)); diff != "" {
				t.Errorf("resolved include (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("missing include file", func(t *testing.T) {
		obj, err := model.New(model.Record{
			ID:    "search:errors",
			Index: model.KibanaIndex,
			Source: map[string]any{
				"type": "search",
				"search": map[string]any{
					"kibanaSavedObjectMeta": map[string]any{
						"searchSourceJSON": paths.IncludeRef("nope"),
					},
				},
			},
		})
		if err != nil {
			t.Fatalf("model.New: %v", err)
		}
		err = ResolveIncludes(obj, objPath)
		if err == nil || !strings.Contains(err.Error(), "nope") {
			t.Errorf("error = %v, want missing include named", err)
		}
	})
}
