// Package engine implements the decompile direction: it drains an object
// sequence source, classifies each incoming object against the library, and
// applies the resulting writes in stream order.
package engine

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/kibrary/kibrary/internal/audit"
	"github.com/kibrary/kibrary/internal/decompose"
	"github.com/kibrary/kibrary/internal/library"
	"github.com/kibrary/kibrary/internal/model"
	"github.com/kibrary/kibrary/internal/source"
)

// Classification is the terminal state of one incoming object.
type Classification string

const (
	ClassNew       Classification = "new"
	ClassUnchanged Classification = "unchanged"
	ClassUpdated   Classification = "updated"
	ClassSkipped   Classification = "skipped"
)

// NewDir is the subfolder of the first library root that receives objects not
// yet present in the library.
const NewDir = "new"

// Result summarizes a decompile run.
type Result struct {
	New       int
	Unchanged int
	Updated   int
	Skipped   int

	// Errors holds the per-record failures that were skipped over.
	Errors []error
}

// Total returns the number of records consumed.
func (r Result) Total() int {
	return r.New + r.Unchanged + r.Updated + r.Skipped
}

// Options configures a run. The zero value is usable: no audit log, no
// progress reporting.
type Options struct {
	// Audit receives one record per classification; nil discards them.
	Audit *audit.Logger

	// Progress, when non-nil, is called after each classification. It serves
	// the CLI's verbose output without the engine holding global state.
	Progress func(c Classification, obj *model.Object)
}

// Run drains src and reconciles every record against lib. Malformed records
// are counted and skipped; the run only fails on source errors or on write
// failures, which would lose updates if ignored. Writes happen in stream
// order.
func Run(lib *library.Library, src source.Source, opts Options) (Result, error) {
	log := opts.Audit
	if log == nil {
		log = audit.New("")
	}

	var res Result
	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("read object stream: %w", err)
		}

		obj, err := decompose.FromRecord(rec)
		if err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, err)
			record(log, audit.Record{
				Classification: string(ClassSkipped),
				ID:             rec.ID,
			})
			continue
		}

		c, err := reconcile(lib, obj)
		if err != nil {
			return res, err
		}
		switch c {
		case ClassNew:
			res.New++
		case ClassUnchanged:
			res.Unchanged++
		case ClassUpdated:
			res.Updated++
		}

		dir := ""
		if c == ClassNew {
			dir = filepath.Join(lib.FirstRoot(), NewDir)
		}
		record(log, audit.Record{
			Classification: string(c),
			Type:           string(obj.Type),
			ID:             obj.ID,
			Title:          obj.Title(),
			Directory:      dir,
			Path:           obj.Path,
		})
		if opts.Progress != nil {
			opts.Progress(c, obj)
		}
	}
}

// reconcile classifies one incoming object and applies the write it implies.
func reconcile(lib *library.Library, obj *model.Object) (Classification, error) {
	existing, ok := lib.Get(obj.ID)
	if !ok {
		dir := filepath.Join(lib.FirstRoot(), NewDir)
		if err := lib.Save(obj, dir); err != nil {
			return ClassNew, fmt.Errorf("save new object %s: %w", obj.ID, err)
		}
		lib.Put(obj)
		return ClassNew, nil
	}

	if model.Equal(existing, obj) {
		obj.Path = existing.Path
		return ClassUnchanged, nil
	}

	// Replace content but keep the object at its existing location.
	obj.Path = existing.Path
	if err := lib.Save(obj, ""); err != nil {
		return ClassUpdated, fmt.Errorf("update object %s: %w", obj.ID, err)
	}
	lib.Put(obj)
	return ClassUpdated, nil
}

// record writes an audit record, deliberately dropping failures: a slow or
// unavailable log sink must never stall the sync itself.
func record(log *audit.Logger, rec audit.Record) {
	_ = log.Log(rec)
}
