// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Event, Task, Contact and User,
// along with their validation rules and domain-specific errors.
package entity

import (
	"fmt"
	"time"
)

// RepeatRule is the closed set of recurrence rules an event can carry.
// The zero value is RepeatNone.
type RepeatRule int

const (
	// RepeatNone marks a one-off event with a single occurrence.
	RepeatNone RepeatRule = iota

	// RepeatDaily repeats the event every day from its anchor date.
	RepeatDaily

	// RepeatWeekly repeats the event on the anchor's weekday every week.
	RepeatWeekly

	// RepeatMonthly repeats the event on the anchor's day of month,
	// clamped to the last valid day of shorter months.
	RepeatMonthly
)

// String returns the storage representation of the rule.
func (r RepeatRule) String() string {
	switch r {
	case RepeatNone:
		return "NONE"
	case RepeatDaily:
		return "DAILY"
	case RepeatWeekly:
		return "WEEKLY"
	case RepeatMonthly:
		return "MONTHLY"
	default:
		return fmt.Sprintf("RepeatRule(%d)", int(r))
	}
}

// ParseRepeatRule converts a storage string into a RepeatRule.
// Returns ErrInvalidRepeatRule for values outside the closed set.
func ParseRepeatRule(s string) (RepeatRule, error) {
	switch s {
	case "NONE", "":
		return RepeatNone, nil
	case "DAILY":
		return RepeatDaily, nil
	case "WEEKLY":
		return RepeatWeekly, nil
	case "MONTHLY":
		return RepeatMonthly, nil
	default:
		return RepeatNone, fmt.Errorf("%w: %q", ErrInvalidRepeatRule, s)
	}
}

// Event represents a calendar event owned by a user.
// StartAt is the anchor occurrence; for repeating events it defines the
// day-of-month or weekday every later occurrence falls on.
type Event struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Location    string
	StartAt     time.Time
	EndAt       *time.Time
	RepeatRule  RepeatRule
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the Event invariants: a title, an owner and an anchor
// date are required, and EndAt must not precede StartAt when present.
func (e *Event) Validate() error {
	if e.UserID <= 0 {
		return &ValidationError{Field: "user_id", Message: "owner is required"}
	}
	if e.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if e.StartAt.IsZero() {
		return &ValidationError{Field: "start_at", Message: "anchor date is required"}
	}
	if e.EndAt != nil && e.EndAt.Before(e.StartAt) {
		return &ValidationError{Field: "end_at", Message: "end must not precede start"}
	}
	return nil
}
