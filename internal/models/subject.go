package models

import "time"

// Subject represents a course taught by one teacher within a faculty.
type Subject struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Code         string    `db:"code" json:"code"`
	WeeklyHours  int       `db:"weekly_hours" json:"weekly_hours"`
	StudentCount int       `db:"student_count" json:"student_count"`
	FacultyID    string    `db:"faculty_id" json:"faculty_id"`
	TeacherID    string    `db:"teacher_id" json:"teacher_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
