package index

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kibrary/kibrary/internal/decompose"
	"github.com/kibrary/kibrary/internal/model"
	"github.com/kibrary/kibrary/internal/testutil"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func decomposeAll(t *testing.T, recs ...model.Record) []*model.Object {
	t.Helper()
	objs := make([]*model.Object, 0, len(recs))
	for _, rec := range recs {
		obj, err := decompose.FromRecord(rec)
		if err != nil {
			t.Fatalf("%s: decompose: %v", rec.ID, err)
		}
		objs = append(objs, obj)
	}
	return objs
}

func TestRebuildAndGet(t *testing.T) {
	db := openTestDB(t)
	objs := decomposeAll(t,
		testutil.SearchRecord("errors"),
		testutil.DashboardRecord("traffic-overview", ""),
	)
	if err := db.Rebuild(objs); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	e, err := db.Get("search:errors")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if e.Type != "search" || e.Title != "Errors" {
		t.Errorf("entry = %+v", e)
	}

	if _, err := db.Get("search:absent"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Get absent = %v, want ErrObjectNotFound", err)
	}
}

func TestRebuildReplacesCatalog(t *testing.T) {
	db := openTestDB(t)
	if err := db.Rebuild(decomposeAll(t,
		testutil.SearchRecord("errors"),
		testutil.SearchRecord("warnings"),
	)); err != nil {
		t.Fatalf("first Rebuild: %v", err)
	}
	if err := db.Rebuild(decomposeAll(t, testutil.SearchRecord("errors"))); err != nil {
		t.Fatalf("second Rebuild: %v", err)
	}

	n, err := db.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want stale entries gone", n)
	}
}

func TestListOrderAndFilter(t *testing.T) {
	db := openTestDB(t)
	if err := db.Rebuild(decomposeAll(t,
		testutil.VisualizationRecord("zulu", ""),
		testutil.SearchRecord("errors"),
		testutil.VisualizationRecord("alpha", ""),
	)); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	all, err := db.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	wantIDs := []string{"search:errors", "visualization:alpha", "visualization:zulu"}
	if len(all) != len(wantIDs) {
		t.Fatalf("List = %d entries, want %d", len(all), len(wantIDs))
	}
	for i, want := range wantIDs {
		if all[i].ID != want {
			t.Errorf("List[%d] = %s, want %s (ordered by type, title)", i, all[i].ID, want)
		}
	}

	viz, err := db.List("visualization")
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(viz) != 2 {
		t.Errorf("filtered List = %d entries, want 2", len(viz))
	}
}

func TestOpenCreatesDotDir(t *testing.T) {
	root := t.TempDir()
	db, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Join(root, DotDir, "index.db")); err != nil {
		t.Errorf("index file: %v", err)
	}
}
