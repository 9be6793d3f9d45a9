package source

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kibrary/kibrary/internal/model"
	"github.com/kibrary/kibrary/internal/testutil"
)

func drain(t *testing.T, src Source) []model.Record {
	t.Helper()
	var records []model.Record
	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			return records
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		records = append(records, rec)
	}
}

func TestSliceSource(t *testing.T) {
	src := FromRecords([]model.Record{
		testutil.SearchRecord("errors"),
		testutil.SearchRecord("warnings"),
	})
	records := drain(t, src)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].ID != "search:errors" || records[1].ID != "search:warnings" {
		t.Errorf("order = %s, %s; want stream order preserved", records[0].ID, records[1].ID)
	}

	// Exhausted sources stay exhausted.
	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next after EOF = %v, want io.EOF", err)
	}
}

func TestReadFrom(t *testing.T) {
	export := `[
		{"_id":"search:errors","_index":".kibana","_type":"doc","_source":{"type":"search","search":{"title":"Errors"}}},
		{"_id":"x-lff-lookup:interfaces","_index":".x-lff-lookup","_type":"doc","_source":{"fieldType":"string"}}
	]`
	src, err := ReadFrom(strings.NewReader(export))
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	records := drain(t, src)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[1].Index != model.LookupIndex {
		t.Errorf("index = %q, want %q", records[1].Index, model.LookupIndex)
	}
}

func TestReadFromRejectsNonArray(t *testing.T) {
	if _, err := ReadFrom(strings.NewReader(`{"_id":"search:errors"}`)); err == nil {
		t.Fatal("expected error for a non-array export")
	}
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "export.json", []byte(`[]`))

	src, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if records := drain(t, src); len(records) != 0 {
		t.Errorf("records = %d, want empty", len(records))
	}

	if _, err := OpenFile(dir + "/absent.json"); err == nil {
		t.Fatal("expected error for a missing file")
	}
}
