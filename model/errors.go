package model

import "fmt"

// MissingReferenceError reports a reference to an entity that was
// never loaded. Always fatal: the graph would be inconsistent.
type MissingReferenceError struct {
	Kind           Kind
	ID             string
	ReferencedFrom string
}

func (e *MissingReferenceError) Error() string {
	if e.ReferencedFrom != "" {
		return fmt.Sprintf("reference to missing %s %q in %s", e.Kind, e.ID, e.ReferencedFrom)
	}
	return fmt.Sprintf("reference to missing %s %q", e.Kind, e.ID)
}

// DuplicateError reports a duplicate id or sort key across two source
// files. Always fatal.
type DuplicateError struct {
	Kind  Kind
	Field string
	Value any
	Paths []string
}

func (e *DuplicateError) Error() string {
	if len(e.Paths) == 2 {
		return fmt.Sprintf("duplicate %s %s %v in %s and %s", e.Kind, e.Field, e.Value, e.Paths[0], e.Paths[1])
	}
	return fmt.Sprintf("duplicate %s %s %v", e.Kind, e.Field, e.Value)
}
