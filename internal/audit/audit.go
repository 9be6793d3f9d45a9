// Package audit provides the append-only classification log written during
// decompile runs. Records are tab-separated so the log greps and imports
// cleanly; when no log target is configured every write is a no-op.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Record is one per-object classification.
type Record struct {
	Classification string // new, unchanged, updated, skipped
	Type           string
	ID             string
	Title          string
	Directory      string // target directory for new objects, empty otherwise
	Path           string // file path written, empty when nothing was written
}

// Logger appends classification records to a tab-separated log file.
type Logger struct {
	path    string
	enabled bool
	mu      sync.Mutex
}

// New creates a logger writing to path. An empty path returns a disabled
// logger whose writes are discarded.
func New(path string) *Logger {
	if path == "" {
		return &Logger{}
	}
	return &Logger{path: path, enabled: true}
}

// Enabled reports whether records are actually written.
func (l *Logger) Enabled() bool { return l.enabled }

// Ensure verifies the log target is writable, creating parent directories and
// the file as needed. Callers run this before a sync so an unusable target
// fails the whole operation up front; failures of individual appends later are
// dropped rather than stalling the sync.
func (l *Logger) Ensure() error {
	if !l.enabled {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create audit log directory: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	return f.Close()
}

// Log appends one record. Tabs and newlines inside values are flattened to
// spaces so one record is always one line.
func (l *Logger) Log(rec Record) error {
	if !l.enabled {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create audit log directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	line := strings.Join([]string{
		sanitize(rec.Classification),
		sanitize(rec.Type),
		sanitize(rec.ID),
		sanitize(rec.Title),
		sanitize(rec.Directory),
		sanitize(rec.Path),
	}, "\t")
	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("write audit record: %w", err)
	}
	return nil
}

// Read returns all records in the log, in write order. A disabled logger
// returns nil.
func (l *Logger) Read() ([]Record, error) {
	if !l.enabled {
		return nil, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read audit log: %w", err)
	}

	var records []Record
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) != 6 {
			continue // skip malformed lines
		}
		records = append(records, Record{
			Classification: cols[0],
			Type:           cols[1],
			ID:             cols[2],
			Title:          cols[3],
			Directory:      cols[4],
			Path:           cols[5],
		})
	}
	return records, nil
}

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
