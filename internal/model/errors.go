package model

import "fmt"

// ValidationError reports a record that cannot be persisted as-is. It is
// raised at the write boundary, before anything is saved, so a failed write
// never leaves a partial record behind.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a targeted operation against an id that is not in
// the collection.
type NotFoundError struct {
	Namespace string
	ID        string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no record with id %q", e.Namespace, e.ID)
}
