package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Teacher represents an instructor attached to a faculty. Availability
// is a free-form day to time-ranges mapping stored as jsonb.
type Teacher struct {
	ID              string         `db:"id" json:"id"`
	Name            string         `db:"name" json:"name"`
	Email           string         `db:"email" json:"email"`
	Availability    types.JSONText `db:"availability" json:"availability,omitempty"`
	Active          bool           `db:"active" json:"active"`
	MaxHoursPerWeek int            `db:"max_hours_per_week" json:"max_hours_per_week"`
	FacultyID       string         `db:"faculty_id" json:"faculty_id"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}
