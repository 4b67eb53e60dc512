package rst

import (
	"fmt"
	"reflect"
)

// Record is the template payload for one output file. List-based
// generators include a "filename" key; single-file generators leave it
// to the pipeline, which knows the destination path.
type Record map[string]any

// Filename returns the record's filename field, or "" when absent.
func (r Record) Filename() string {
	name, _ := r["filename"].(string)
	return name
}

// FieldSpec declares the shape a generator's records must have before
// they reach the template engine.
type FieldSpec struct {
	// Required keys must be present and non-nil.
	Required []string
	// Lists names keys whose values must be slices.
	Lists []string
	// Strings names keys whose values must be non-empty strings.
	Strings []string
}

// Validate reports the first field violation in rec, or nil.
func (s FieldSpec) Validate(rec Record) error {
	for _, key := range s.Required {
		value, ok := rec[key]
		if !ok || value == nil {
			return fmt.Errorf("missing required field %q", key)
		}
	}
	for _, key := range s.Lists {
		value, ok := rec[key]
		if !ok {
			continue
		}
		if reflect.ValueOf(value).Kind() != reflect.Slice {
			return fmt.Errorf("field %q must be a list, got %T", key, value)
		}
	}
	for _, key := range s.Strings {
		value, ok := rec[key]
		if !ok {
			continue
		}
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %q must be a string, got %T", key, value)
		}
		if str == "" {
			return fmt.Errorf("field %q must not be empty", key)
		}
	}
	return nil
}
