package model

import "fmt"

// MalformedObjectError indicates a record or file is missing a structural
// field required to build a saved object. The engine skips the offending
// record and keeps going; the error names what was missing.
type MalformedObjectError struct {
	ID    string // may be empty when the id itself is the problem
	Field string
}

func (e *MalformedObjectError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("malformed object: missing %s", e.Field)
	}
	return fmt.Sprintf("malformed object %s: missing %s", e.ID, e.Field)
}
