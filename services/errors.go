package services

import "fmt"

// ValidationError covers malformed input: bad date/time strings,
// a duration outside the allowed set, a crew count out of bounds.
// Rejected before any storage access.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// PolicyError covers requests that are well-formed but violate a
// scheduling rule: the non-working day, or a window outside working
// hours.
type PolicyError struct {
	Message string
}

func (e *PolicyError) Error() string { return e.Message }

// ConflictError covers availability conflicts: no team found, a cleaner
// that became busy between check and commit, or a duplicate block.
// CleanerID is zero when no single cleaner is to blame.
type ConflictError struct {
	Message   string
	CleanerID uint
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError is returned when a referenced booking does not exist.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Resource, e.ID)
}
