// Package grants owns grant projects: tracked applications with a
// Draft -> Submitted -> Awarded/Declined lifecycle.
package grants

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when no project has the requested ID.
	ErrNotFound = errors.New("project not found")

	// ErrInvalidTransition is returned for a status change the
	// lifecycle does not permit.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Status is a grant project's lifecycle state.
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusSubmitted Status = "Submitted"
	StatusAwarded   Status = "Awarded"
	StatusDeclined  Status = "Declined"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusSubmitted, StatusAwarded, StatusDeclined:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// CanTransition reports whether the lifecycle permits moving from one
// status to another. Draft moves only to Submitted; Submitted moves to
// Awarded or Declined; Awarded and Declined are terminal. There are no
// backward transitions.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusDraft:
		return to == StatusSubmitted
	case StatusSubmitted:
		return to == StatusAwarded || to == StatusDeclined
	default:
		return false
	}
}

// Editable reports whether proposal text may still change in this
// status. Once submitted the proposal is finalized.
func (s Status) Editable() bool {
	return s == StatusDraft
}

// Terminal reports whether no further transitions exist.
func (s Status) Terminal() bool {
	return s == StatusAwarded || s == StatusDeclined
}

// GrantProject is a single tracked application. The ID is generated at
// creation and never changes; LastEdited never moves backward.
type GrantProject struct {
	ID         string    `json:"id"`
	GrantTitle string    `json:"grantTitle"`
	Funder     string    `json:"funder"`
	Status     Status    `json:"status"`
	Proposal   string    `json:"proposal"`
	LastEdited time.Time `json:"lastEdited"`
}
