// Package source defines the object-sequence boundary the sync engine
// consumes: a finite, possibly large stream of wire-form records, consumable
// once. The HTTP transport that produces such streams from a live cluster
// lives outside this module; a flat export file and an in-memory slice are
// provided here.
package source

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kibrary/kibrary/internal/model"
)

// Source yields wire-form records one at a time. Next returns io.EOF when the
// sequence is exhausted. Sources are not safe for concurrent use and are
// consumed exactly once.
type Source interface {
	Next() (model.Record, error)
}

// SliceSource serves records from memory. Paginated transports can buffer one
// page at a time into it; tests use it directly.
type SliceSource struct {
	records []model.Record
	pos     int
}

// FromRecords returns a Source over the given records.
func FromRecords(records []model.Record) *SliceSource {
	return &SliceSource{records: records}
}

// Next implements Source.
func (s *SliceSource) Next() (model.Record, error) {
	if s.pos >= len(s.records) {
		return model.Record{}, io.EOF
	}
	rec := s.records[s.pos]
	s.pos++
	return rec, nil
}

// FileSource reads a single JSON array export file. The whole array is
// decoded up front; export files are bounded by what a bulk import accepts.
type FileSource struct {
	inner SliceSource
}

// OpenFile opens an export file as a Source.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()
	return ReadFrom(f)
}

// ReadFrom decodes a JSON array of records from r.
func ReadFrom(r io.Reader) (*FileSource, error) {
	var records []model.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("parse export file: %w", err)
	}
	return &FileSource{inner: SliceSource{records: records}}, nil
}

// Next implements Source.
func (s *FileSource) Next() (model.Record, error) {
	return s.inner.Next()
}
