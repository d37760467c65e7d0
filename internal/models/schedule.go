package models

import "time"

// Schedule represents a time slot assigning a subject to a classroom.
// Start and end times are opaque markers; ordering and overlap are not
// enforced by this layer. FacultyID is denormalized from the subject.
type Schedule struct {
	ID          string    `db:"id" json:"id"`
	Day         string    `db:"day" json:"day"`
	StartTime   string    `db:"start_time" json:"start_time"`
	EndTime     string    `db:"end_time" json:"end_time"`
	SubjectID   string    `db:"subject_id" json:"subject_id"`
	ClassroomID string    `db:"classroom_id" json:"classroom_id"`
	FacultyID   string    `db:"faculty_id" json:"faculty_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ScheduleDetail is a schedule joined with the names needed for
// timetable exports.
type ScheduleDetail struct {
	Schedule
	SubjectName   string `db:"subject_name" json:"subject_name"`
	ClassroomName string `db:"classroom_name" json:"classroom_name"`
}
