package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edusync/academia-api/internal/models"
	appErrors "github.com/edusync/academia-api/pkg/errors"
	"github.com/edusync/academia-api/pkg/export"
)

type scheduleRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.Schedule, int, error)
	ListByFaculty(ctx context.Context, facultyID string, limit, offset int) ([]models.Schedule, int, error)
	ListDetailedByFaculty(ctx context.Context, facultyID string) ([]models.ScheduleDetail, error)
	FindByID(ctx context.Context, id string) (*models.Schedule, error)
	Create(ctx context.Context, schedule *models.Schedule) error
	Update(ctx context.Context, schedule *models.Schedule) error
	Delete(ctx context.Context, id string) error
}

type timetableRenderer interface {
	Render(t export.Timetable) ([]byte, error)
}

// CreateScheduleRequest represents payload for creating schedules.
// Times are opaque markers; no ordering or overlap check happens here.
type CreateScheduleRequest struct {
	Day         string `json:"day" validate:"required"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	SubjectID   string `json:"subject_id" validate:"required,uuid"`
	ClassroomID string `json:"classroom_id" validate:"required,uuid"`
}

// UpdateScheduleRequest represents a partial schedule update.
type UpdateScheduleRequest struct {
	Day         *string `json:"day" validate:"omitempty,min=1"`
	StartTime   *string `json:"start_time" validate:"omitempty,min=1"`
	EndTime     *string `json:"end_time" validate:"omitempty,min=1"`
	SubjectID   *string `json:"subject_id" validate:"omitempty,uuid"`
	ClassroomID *string `json:"classroom_id" validate:"omitempty,uuid"`
}

// hasFields reports whether any mutable field is present; subject and
// classroom references do not count.
func (r UpdateScheduleRequest) hasFields() bool {
	return r.Day != nil || r.StartTime != nil || r.EndTime != nil
}

// ScheduleService orchestrates schedule operations.
type ScheduleService struct {
	repo       scheduleRepository
	subjects   subjectReader
	classrooms classroomReader
	faculties  facultyReader
	metrics    *MetricsService
	defaults   PageDefaults
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(repo scheduleRepository, subjects subjectReader, classrooms classroomReader, faculties facultyReader, metrics *MetricsService, defaults PageDefaults, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, subjects: subjects, classrooms: classrooms, faculties: faculties, metrics: metrics, defaults: defaults, validator: validate, logger: logger}
}

// Create registers a new schedule slot after resolving its subject and
// classroom. The faculty reference is denormalized from the subject.
func (s *ScheduleService) Create(ctx context.Context, req CreateScheduleRequest) (*models.Schedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	subject, err := resolveSubject(ctx, s.subjects, req.SubjectID)
	if err != nil {
		return nil, err
	}
	classroom, err := resolveClassroom(ctx, s.classrooms, req.ClassroomID)
	if err != nil {
		return nil, err
	}

	schedule := &models.Schedule{
		Day:         req.Day,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		SubjectID:   subject.ID,
		ClassroomID: classroom.ID,
		FacultyID:   subject.FacultyID,
	}
	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, translateStorageError(s.logger, err)
	}
	return schedule, nil
}

// List returns schedules plus pagination data.
func (s *ScheduleService) List(ctx context.Context, q models.PageQuery) ([]models.Schedule, *models.Pagination, error) {
	limit, offset := s.defaults.Resolve(q)
	schedules, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	return schedules, &models.Pagination{Limit: limit, Offset: offset, TotalCount: total}, nil
}

// ListByFaculty returns the schedules whose subject belongs to one
// faculty.
func (s *ScheduleService) ListByFaculty(ctx context.Context, facultyID string, q models.PageQuery) ([]models.Schedule, *models.Pagination, error) {
	if _, err := resolveFaculty(ctx, s.faculties, facultyID); err != nil {
		return nil, nil, err
	}

	limit, offset := s.defaults.Resolve(q)
	schedules, total, err := s.repo.ListByFaculty(ctx, facultyID, limit, offset)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules by faculty")
	}
	return schedules, &models.Pagination{Limit: limit, Offset: offset, TotalCount: total}, nil
}

// ExportByFaculty renders the faculty's full timetable through the
// given renderer (CSV or PDF).
func (s *ScheduleService) ExportByFaculty(ctx context.Context, facultyID string, renderer timetableRenderer) ([]byte, error) {
	faculty, err := resolveFaculty(ctx, s.faculties, facultyID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	details, err := s.repo.ListDetailedByFaculty(ctx, facultyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty timetable")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("schedule_export", time.Since(start))
	}

	timetable := export.Timetable{Title: fmt.Sprintf("%s timetable", faculty.Name)}
	for _, detail := range details {
		timetable.Rows = append(timetable.Rows, export.TimetableRow{
			Day:       detail.Day,
			StartTime: detail.StartTime,
			EndTime:   detail.EndTime,
			Subject:   detail.SubjectName,
			Classroom: detail.ClassroomName,
		})
	}

	rendered, err := renderer.Render(timetable)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render timetable")
	}
	return rendered, nil
}

// Get returns a schedule by id.
func (s *ScheduleService) Get(ctx context.Context, id string) (*models.Schedule, error) {
	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule with id %s not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	return schedule, nil
}

// Update applies a partial update. A subject change refreshes the
// denormalized faculty reference.
func (s *ScheduleService) Update(ctx context.Context, id string, req UpdateScheduleRequest) (*models.Schedule, error) {
	if !req.hasFields() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no fields provided for update")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	var subject *models.Subject
	if req.SubjectID != nil {
		var err error
		subject, err = resolveSubject(ctx, s.subjects, *req.SubjectID)
		if err != nil {
			return nil, err
		}
	}
	if req.ClassroomID != nil {
		if _, err := resolveClassroom(ctx, s.classrooms, *req.ClassroomID); err != nil {
			return nil, err
		}
	}

	schedule, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Day != nil {
		schedule.Day = *req.Day
	}
	if req.StartTime != nil {
		schedule.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		schedule.EndTime = *req.EndTime
	}
	if subject != nil {
		schedule.SubjectID = subject.ID
		schedule.FacultyID = subject.FacultyID
	}
	if req.ClassroomID != nil {
		schedule.ClassroomID = *req.ClassroomID
	}

	if err := s.repo.Update(ctx, schedule); err != nil {
		return nil, translateStorageError(s.logger, err)
	}
	return schedule, nil
}

// Delete removes a schedule slot.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateStorageError(s.logger, err)
	}
	return nil
}
