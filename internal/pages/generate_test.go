package pages

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kibrary/kibrary/internal/decompose"
	"github.com/kibrary/kibrary/internal/graph"
	"github.com/kibrary/kibrary/internal/library"
	"github.com/kibrary/kibrary/internal/model"
	"github.com/kibrary/kibrary/internal/testutil"
)

func buildGraph(t *testing.T, recs ...model.Record) *graph.Graph {
	t.Helper()
	lib := library.New(nil)
	for _, rec := range recs {
		obj, err := decompose.FromRecord(rec)
		if err != nil {
			t.Fatalf("%s: decompose: %v", rec.ID, err)
		}
		lib.Put(obj)
	}
	return graph.Build(lib)
}

func TestGenerateWritesTree(t *testing.T) {
	g := buildGraph(t,
		testutil.DashboardRecord("traffic-overview", ""),
		testutil.VisualizationRecord("traffic-by-host", "errors"),
		testutil.SearchRecord("errors"),
	)
	out := t.TempDir()

	count, err := Generate(g, Options{OutDir: out})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3 object pages", count)
	}

	page := string(testutil.ReadFile(t, filepath.Join(out, "dashboard", "traffic-overview.md")))
	for _, want := range []string{
		"---\n",
		"id: dashboard:traffic-overview",
		"# Traffic Overview",
		"## Uses",
		"(../visualization/traffic-by-host.md)",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("dashboard page missing %q:\n%s", want, page)
		}
	}

	search := string(testutil.ReadFile(t, filepath.Join(out, "search", "errors.md")))
	if !strings.Contains(search, "## Used by") {
		t.Errorf("search page missing used-by section:\n%s", search)
	}

	index := string(testutil.ReadFile(t, filepath.Join(out, "search", "index.md")))
	if !strings.Contains(index, "[Errors](errors.md)") {
		t.Errorf("type index missing object link:\n%s", index)
	}
}

func TestGenerateIncludesSynthetics(t *testing.T) {
	g := buildGraph(t, testutil.IndexPatternRecord("logs-*", `[{"name":"host.name","type":"string"}]`))
	out := t.TempDir()

	count, err := Generate(g, Options{OutDir: out})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// index-pattern + field + fieldcategory.
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if _, err := os.Stat(filepath.Join(out, "field", "logs-host-name.md")); err != nil {
		t.Errorf("field page: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "fieldcategory", "logs-host.md")); err != nil {
		t.Errorf("category page: %v", err)
	}
}

func TestGenerateHTML(t *testing.T) {
	g := buildGraph(t, testutil.SearchRecord("errors"))
	out := t.TempDir()

	if _, err := Generate(g, Options{OutDir: out, HTML: true}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	html := string(testutil.ReadFile(t, filepath.Join(out, "search", "errors.html")))
	if !strings.Contains(html, "<h1") {
		t.Errorf("html page has no heading:\n%s", html)
	}
	if strings.Contains(html, "id: search:errors") {
		t.Errorf("frontmatter leaked into html:\n%s", html)
	}
}

func TestGenerateRequiresOutDir(t *testing.T) {
	g := buildGraph(t, testutil.SearchRecord("errors"))
	if _, err := Generate(g, Options{}); err == nil {
		t.Fatal("expected error for missing output directory")
	}
}

func TestPageName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"dashboard:traffic-overview", "traffic-overview.md"},
		{"index-pattern:logs-*", "logs.md"},
		{"field:logs-*/host.name", "logs-host-name.md"},
		{"no-colon", "no-colon.md"},
	}
	for _, tt := range tests {
		if got := PageName(tt.id); got != tt.want {
			t.Errorf("PageName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestRenderObjectListsIncludes(t *testing.T) {
	g := buildGraph(t, testutil.SearchRecord("errors"))
	obj, _ := g.Object("search:errors")

	body := RenderObject(g, obj)
	if !strings.Contains(body, "**includes**: searchSourceJSON") {
		t.Errorf("body missing include list:\n%s", body)
	}
}
