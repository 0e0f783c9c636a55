package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"safar/internal/domain"
)

var (
	// ErrPermissionDenied is returned when the caller lacks authorization
	// for the requested action.
	ErrPermissionDenied = errors.New("permission denied")
)

// ValidationError reports one or more invalid fields in a request. It is
// returned before any write happens; a request that produces one leaves no
// partial record. The special field "non_field_errors" carries failures not
// attributable to a single field.
type ValidationError struct {
	Fields map[string][]string
}

// NonFieldErrors is the key for validation failures spanning several fields.
const NonFieldErrors = "non_field_errors"

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	e := &ValidationError{Fields: map[string][]string{}}
	return e.Add(field, message)
}

// Add appends a message for a field and returns the error for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

// Empty reports whether no field failures have been recorded.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed:")
	for _, f := range fields {
		fmt.Fprintf(&b, " %s: %s;", f, strings.Join(e.Fields[f], ", "))
	}
	return strings.TrimSuffix(b.String(), ";")
}

// InvalidRoleError reports a user reference whose directory role does not
// match the relation being established (e.g. a non-driver on a driver field).
type InvalidRoleError struct {
	Field string
	Want  domain.Role
	Got   domain.Role
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("%s: assigned user must have role %q, has %q", e.Field, e.Want, e.Got)
}

// FieldNotEditableError reports fields a non-admin caller attempted to
// mutate on a trip update.
type FieldNotEditableError struct {
	Fields []string
}

func (e *FieldNotEditableError) Error() string {
	return fmt.Sprintf("fields not editable by caller role: %s", strings.Join(e.Fields, ", "))
}
