package entity

import "time"

// Contact represents a person the user tracks birthdays and name days for.
// BirthdayDate and NameDayDate are calendar dates; the stored year is
// ignored when matching against today (month and day only).
type Contact struct {
	ID           int64
	UserID       int64
	Name         string
	Email        string
	Phone        string
	BirthdayDate *time.Time
	NameDayDate  *time.Time
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasBirthdayOn reports whether the contact's birthday falls on the given
// day. The year component of the stored birthday is ignored.
func (c *Contact) HasBirthdayOn(day time.Time) bool {
	return matchesMonthDay(c.BirthdayDate, day)
}

// HasNameDayOn reports whether the contact's name day falls on the given
// day. The year component of the stored date is ignored.
func (c *Contact) HasNameDayOn(day time.Time) bool {
	return matchesMonthDay(c.NameDayDate, day)
}

func matchesMonthDay(stored *time.Time, day time.Time) bool {
	if stored == nil {
		return false
	}
	return stored.Month() == day.Month() && stored.Day() == day.Day()
}

// Validate checks the Contact invariants.
func (c *Contact) Validate() error {
	if c.UserID <= 0 {
		return &ValidationError{Field: "user_id", Message: "owner is required"}
	}
	if c.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	return nil
}
