package entity

import "time"

// User represents an account in the planner.
// Digest delivery preferences live on the user record: the daily digest is
// sent only when DigestEnabled is set and Email is non-empty, with an
// optional SMS side-channel when SMSEnabled and PhoneNumber are set.
type User struct {
	ID            int64
	UID           string
	Email         string
	EmailVerified bool
	DigestEnabled bool
	DigestTime    string // HH:MM, informational; the worker runs on one schedule
	SMSEnabled    bool
	PhoneNumber   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks the User invariants.
func (u *User) Validate() error {
	if u.UID == "" {
		return &ValidationError{Field: "uid", Message: "uid is required"}
	}
	if u.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	return nil
}
