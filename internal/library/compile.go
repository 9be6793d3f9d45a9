package library

import (
	"fmt"

	"github.com/kibrary/kibrary/internal/atomicfile"
	"github.com/kibrary/kibrary/internal/decompose"
	"github.com/kibrary/kibrary/internal/model"
)

// CompileRecords flattens every library object back to wire form, sorted by
// id ascending.
func (l *Library) CompileRecords() ([]model.Record, error) {
	objects := l.Objects()
	records := make([]model.Record, 0, len(objects))
	for _, obj := range objects {
		rec, err := decompose.Recompose(obj)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// CompileToFile writes the flat wire-form array to path atomically: any
// failure leaves a previous output file untouched.
func (l *Library) CompileToFile(path string) error {
	records, err := l.CompileRecords()
	if err != nil {
		return err
	}
	data, err := decompose.MarshalIndent(records)
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	if err := atomicfile.WriteFile(path, data, 0); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
