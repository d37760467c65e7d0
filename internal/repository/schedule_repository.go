package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edusync/academia-api/internal/models"
)

const scheduleColumns = `id, day, start_time, end_time, subject_id, classroom_id, faculty_id, created_at, updated_at`

// ScheduleRepository manages persistence for schedules.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs a ScheduleRepository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// List returns schedules along with the total count.
func (r *ScheduleRepository) List(ctx context.Context, limit, offset int) ([]models.Schedule, int, error) {
	query := fmt.Sprintf(`SELECT %s FROM schedules ORDER BY created_at LIMIT $1 OFFSET $2`, scheduleColumns)
	var schedules []models.Schedule
	if err := r.db.SelectContext(ctx, &schedules, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list schedules: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM schedules`); err != nil {
		return nil, 0, fmt.Errorf("count schedules: %w", err)
	}
	return schedules, total, nil
}

// ListByFaculty returns schedules whose subject belongs to the faculty.
// The traversal goes through subjects rather than the denormalized
// column, mirroring the join the read model is defined by.
func (r *ScheduleRepository) ListByFaculty(ctx context.Context, facultyID string, limit, offset int) ([]models.Schedule, int, error) {
	const query = `SELECT s.id, s.day, s.start_time, s.end_time, s.subject_id, s.classroom_id, s.faculty_id, s.created_at, s.updated_at
		FROM schedules s
		JOIN subjects subj ON subj.id = s.subject_id
		WHERE subj.faculty_id = $1
		ORDER BY s.created_at LIMIT $2 OFFSET $3`
	var schedules []models.Schedule
	if err := r.db.SelectContext(ctx, &schedules, query, facultyID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list schedules by faculty: %w", err)
	}

	const countQuery = `SELECT COUNT(*) FROM schedules s JOIN subjects subj ON subj.id = s.subject_id WHERE subj.faculty_id = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, facultyID); err != nil {
		return nil, 0, fmt.Errorf("count schedules by faculty: %w", err)
	}
	return schedules, total, nil
}

// ListDetailedByFaculty returns a faculty's schedules joined with the
// subject and classroom names used by timetable exports.
func (r *ScheduleRepository) ListDetailedByFaculty(ctx context.Context, facultyID string) ([]models.ScheduleDetail, error) {
	const query = `SELECT s.id, s.day, s.start_time, s.end_time, s.subject_id, s.classroom_id, s.faculty_id, s.created_at, s.updated_at,
			subj.name AS subject_name, c.name AS classroom_name
		FROM schedules s
		JOIN subjects subj ON subj.id = s.subject_id
		JOIN classrooms c ON c.id = s.classroom_id
		WHERE subj.faculty_id = $1
		ORDER BY s.day, s.start_time`
	var details []models.ScheduleDetail
	if err := r.db.SelectContext(ctx, &details, query, facultyID); err != nil {
		return nil, fmt.Errorf("list detailed schedules by faculty: %w", err)
	}
	return details, nil
}

// FindByID fetches a schedule by ID.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.Schedule, error) {
	query := fmt.Sprintf(`SELECT %s FROM schedules WHERE id = $1`, scheduleColumns)
	var schedule models.Schedule
	if err := r.db.GetContext(ctx, &schedule, query, id); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// Create inserts a new schedule record.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	schedule.CreatedAt = now
	schedule.UpdatedAt = now

	const query = `INSERT INTO schedules (id, day, start_time, end_time, subject_id, classroom_id, faculty_id, created_at, updated_at)
		VALUES (:id, :day, :start_time, :end_time, :subject_id, :classroom_id, :faculty_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, schedule); err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}
	return nil
}

// Update modifies an existing schedule record.
func (r *ScheduleRepository) Update(ctx context.Context, schedule *models.Schedule) error {
	schedule.UpdatedAt = time.Now().UTC()
	const query = `UPDATE schedules SET day = :day, start_time = :start_time, end_time = :end_time, subject_id = :subject_id, classroom_id = :classroom_id, faculty_id = :faculty_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, schedule); err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}
	return nil
}

// Delete removes a schedule row.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}
