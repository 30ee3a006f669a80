package entity

import "time"

// defaultProjectColor is used when a project is created without a color.
const defaultProjectColor = "#3B82F6"

// Project groups tasks under a user-chosen name and display color.
type Project struct {
	ID          int64
	UserID      int64
	Name        string
	Color       string // hex, e.g. "#3B82F6"
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the Project invariants and applies the default color.
func (p *Project) Validate() error {
	if p.UserID <= 0 {
		return &ValidationError{Field: "user_id", Message: "owner is required"}
	}
	if p.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if p.Color == "" {
		p.Color = defaultProjectColor
	}
	return nil
}
