package domain

import (
	"sort"
	"strings"
)

// FieldErrors collects validation failures keyed by field name so callers can
// surface them next to the offending inputs.
type FieldErrors map[string]string

// Add records a message for a field, keeping the first message when the field
// already failed an earlier check.
func (e FieldErrors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

// Error renders the failures in a stable field order.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return strings.Join(parts, "; ")
}
