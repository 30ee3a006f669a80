package entity

import (
	"fmt"
	"time"
)

// Priority is the closed set of task priorities.
type Priority int

const (
	// PriorityLow marks tasks that can slip without consequence.
	PriorityLow Priority = iota + 1

	// PriorityMedium is the default priority for new tasks.
	PriorityMedium

	// PriorityHigh marks tasks surfaced first in the daily digest.
	PriorityHigh
)

// String returns the storage representation of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityHigh:
		return "HIGH"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// ParsePriority converts a storage string into a Priority.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "LOW":
		return PriorityLow, nil
	case "MEDIUM", "":
		return PriorityMedium, nil
	case "HIGH":
		return PriorityHigh, nil
	default:
		return PriorityMedium, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
}

// Status is the closed set of task statuses.
type Status int

const (
	// StatusTodo marks tasks not yet started.
	StatusTodo Status = iota + 1

	// StatusDoing marks tasks in progress.
	StatusDoing

	// StatusDone marks completed tasks; done tasks never appear in digests.
	StatusDone
)

// String returns the storage representation of the status.
func (s Status) String() string {
	switch s {
	case StatusTodo:
		return "TODO"
	case StatusDoing:
		return "DOING"
	case StatusDone:
		return "DONE"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ParseStatus converts a storage string into a Status.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "TODO", "":
		return StatusTodo, nil
	case "DOING":
		return StatusDoing, nil
	case "DONE":
		return StatusDone, nil
	default:
		return StatusTodo, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Task represents a to-do item owned by a user, optionally grouped
// under a project and optionally carrying a due timestamp.
type Task struct {
	ID          int64
	UserID      int64
	ProjectID   *int64
	Title       string
	Notes       string
	DueAt       *time.Time
	Priority    Priority
	Status      Status
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the Task invariants.
func (t *Task) Validate() error {
	if t.UserID <= 0 {
		return &ValidationError{Field: "user_id", Message: "owner is required"}
	}
	if t.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	return nil
}
