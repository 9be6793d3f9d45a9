// Package testutil provides wire-record fixtures and small filesystem helpers
// shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kibrary/kibrary/internal/model"
)

// DashboardRecord returns a wire-form dashboard with all include-bearing
// fields as escaped JSON strings, the way the search API delivers them.
func DashboardRecord(name string, panels string) model.Record {
	if panels == "" {
		panels = `[{"col":1,"id":"traffic-by-host","panelIndex":1,"row":1,"size_x":6,"size_y":3,"type":"visualization"}]`
	}
	return model.Record{
		ID:      "dashboard:" + name,
		Index:   model.KibanaIndex,
		DocType: "doc",
		Source: map[string]any{
			"type": "dashboard",
			"dashboard": map[string]any{
				"title":       titleCase(name),
				"hits":        float64(0),
				"description": "",
				"panelsJSON":  panels,
				"optionsJSON": `{"darkTheme":false}`,
				"uiStateJSON": `{"P-1":{"vis":{"legendOpen":false}}}`,
				"version":     float64(1),
				"kibanaSavedObjectMeta": map[string]any{
					"searchSourceJSON": `{"filter":[{"query":{"query_string":{"analyze_wildcard":true,"query":"*"}}}]}`,
				},
			},
		},
	}
}

// VisualizationRecord returns a wire-form visualization. savedSearch may be
// empty for visualizations with their own search source.
func VisualizationRecord(name, savedSearch string) model.Record {
	viz := map[string]any{
		"title":       titleCase(name),
		"visState":    `{"title":"` + name + `","type":"histogram","params":{"addLegend":true},"aggs":[{"id":"1","type":"count","schema":"metric","params":{}}]}`,
		"uiStateJSON": `{}`,
		"description": "",
		"version":     float64(1),
		"kibanaSavedObjectMeta": map[string]any{
			"searchSourceJSON": `{"index":"logs-*","query":{"query_string":{"analyze_wildcard":true,"query":"*"}},"filter":[]}`,
		},
	}
	if savedSearch != "" {
		viz["savedSearchId"] = savedSearch
	}
	return model.Record{
		ID:      "visualization:" + name,
		Index:   model.KibanaIndex,
		DocType: "doc",
		Source: map[string]any{
			"type":          "visualization",
			"visualization": viz,
		},
	}
}

// SearchRecord returns a wire-form saved search.
func SearchRecord(name string) model.Record {
	return model.Record{
		ID:      "search:" + name,
		Index:   model.KibanaIndex,
		DocType: "doc",
		Source: map[string]any{
			"type": "search",
			"search": map[string]any{
				"title":   titleCase(name),
				"columns": []any{"host", "message"},
				"sort":    []any{"@timestamp", "desc"},
				"version": float64(1),
				"kibanaSavedObjectMeta": map[string]any{
					"searchSourceJSON": `{"index":"logs-*","highlightAll":true,"query":{"query_string":{"query":"response:>=500"}},"filter":[]}`,
				},
			},
		},
	}
}

// IndexPatternRecord returns a wire-form index pattern. fields is the raw
// JSON string for the field list; pass "" for a small default.
func IndexPatternRecord(name, fields string) model.Record {
	if fields == "" {
		fields = `[{"name":"@timestamp","type":"date","count":0,"scripted":false,"searchable":true,"aggregatable":true},` +
			`{"name":"host.name","type":"string","count":0,"scripted":false,"searchable":true,"aggregatable":true},` +
			`{"name":"response","type":"number","count":0,"scripted":false,"searchable":true,"aggregatable":true}]`
	}
	return model.Record{
		ID:      "index-pattern:" + name,
		Index:   model.KibanaIndex,
		DocType: "doc",
		Source: map[string]any{
			"type": "index-pattern",
			"index-pattern": map[string]any{
				"title":          name,
				"timeFieldName":  "@timestamp",
				"fields":         fields,
				"fieldFormatMap": `{"bytes":{"id":"bytes"}}`,
			},
		},
	}
}

// LookupRecord returns a wire-form lookup in the current (non-legacy) shape.
func LookupRecord(name string) model.Record {
	return model.Record{
		ID:      "x-lff-lookup:" + name,
		Index:   model.LookupIndex,
		DocType: "doc",
		Source: map[string]any{
			"type":       "x-lff-lookup",
			"fieldType":  "string",
			"lookupType": "simple",
			"map":        `[{"key":"eth0","value":"uplink"},{"key":"eth1","value":"lan"}]`,
		},
	}
}

// WriteFile writes a file under dir, creating parent directories.
func WriteFile(t *testing.T, dir, rel string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	return path
}

// titleCase turns "traffic-overview" into "Traffic Overview".
func titleCase(name string) string {
	words := strings.Split(name, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// ReadFile reads a file and fails the test on error.
func ReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}
