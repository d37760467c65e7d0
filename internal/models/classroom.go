package models

import "time"

// ClassroomStatus enumerates the two classroom availability states.
type ClassroomStatus string

const (
	ClassroomAvailable   ClassroomStatus = "AVAILABLE"
	ClassroomMaintenance ClassroomStatus = "MAINTENANCE"
)

// Classroom represents a physical room belonging to a faculty.
type Classroom struct {
	ID        string          `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Capacity  int             `db:"capacity" json:"capacity"`
	Status    ClassroomStatus `db:"status" json:"status"`
	FacultyID string          `db:"faculty_id" json:"faculty_id"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}
