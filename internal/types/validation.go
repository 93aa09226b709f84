package types

import (
	"fmt"
	"strings"
)

// ValidationError is one problem in a descriptor table or overrides file
type ValidationError struct {
	Field   string // path like "react.dependencies[0].check_command"
	Value   any
	Message string
}

// ValidationErrors collects every problem so startup can report them together
type ValidationErrors struct {
	Errors []ValidationError
}

func (v *ValidationErrors) Add(field string, value any, msg string) {
	v.Errors = append(v.Errors, ValidationError{Field: field, Value: value, Message: msg})
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// Err returns nil when nothing was added, so callers can `return errs.Err()`
func (v *ValidationErrors) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return v
}

// Fields lists the offending field paths in the order they were added
func (v *ValidationErrors) Fields() []string {
	fields := make([]string, len(v.Errors))
	for i, e := range v.Errors {
		fields[i] = e.Field
	}
	return fields
}

func (v *ValidationErrors) Error() string {
	switch len(v.Errors) {
	case 0:
		return "no validation errors"
	case 1:
		e := v.Errors[0]
		return fmt.Sprintf("validation error in field %s: %s", e.Field, e.Message)
	default:
		return fmt.Sprintf("validation failed with %d errors: %s", len(v.Errors), strings.Join(v.Fields(), ", "))
	}
}

// Report lists one problem per line with the value that was found
func (v *ValidationErrors) Report() string {
	lines := make([]string, len(v.Errors))
	for i, e := range v.Errors {
		lines[i] = fmt.Sprintf("%d. %s: %s (found %s)", i+1, e.Field, e.Message, describeValue(e.Value))
	}
	return strings.Join(lines, "\n")
}

func describeValue(value any) string {
	switch val := value.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", val)
	case []string:
		quoted := make([]string, len(val))
		for i, s := range val {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return fmt.Sprint(val)
	}
}
