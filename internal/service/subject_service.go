package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edusync/academia-api/internal/models"
	appErrors "github.com/edusync/academia-api/pkg/errors"
)

type subjectRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.Subject, int, error)
	ListByTeacher(ctx context.Context, teacherID string, limit, offset int) ([]models.Subject, int, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id string) error
}

// CreateSubjectRequest represents payload for creating subjects.
type CreateSubjectRequest struct {
	Name         string `json:"name" validate:"required"`
	Code         string `json:"code" validate:"required"`
	WeeklyHours  int    `json:"weekly_hours" validate:"required,min=1"`
	StudentCount int    `json:"student_count" validate:"omitempty,min=0"`
	FacultyID    string `json:"faculty_id" validate:"required,uuid"`
	TeacherID    string `json:"teacher_id" validate:"required,uuid"`
}

// UpdateSubjectRequest represents a partial subject update.
type UpdateSubjectRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1"`
	Code         *string `json:"code" validate:"omitempty,min=1"`
	WeeklyHours  *int    `json:"weekly_hours" validate:"omitempty,min=1"`
	StudentCount *int    `json:"student_count" validate:"omitempty,min=0"`
	FacultyID    *string `json:"faculty_id" validate:"omitempty,uuid"`
	TeacherID    *string `json:"teacher_id" validate:"omitempty,uuid"`
}

// hasFields reports whether any mutable field is present; foreign key
// references do not count.
func (r UpdateSubjectRequest) hasFields() bool {
	return r.Name != nil || r.Code != nil || r.WeeklyHours != nil || r.StudentCount != nil
}

// SubjectService orchestrates subject operations.
type SubjectService struct {
	repo      subjectRepository
	faculties facultyReader
	teachers  teacherReader
	defaults  PageDefaults
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService constructs a SubjectService.
func NewSubjectService(repo subjectRepository, faculties facultyReader, teachers teacherReader, defaults PageDefaults, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, faculties: faculties, teachers: teachers, defaults: defaults, validator: validate, logger: logger}
}

// Create registers a new subject after resolving its faculty and
// teacher references.
func (s *SubjectService) Create(ctx context.Context, req CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}

	faculty, err := resolveFaculty(ctx, s.faculties, req.FacultyID)
	if err != nil {
		return nil, err
	}
	teacher, err := resolveTeacher(ctx, s.teachers, req.TeacherID)
	if err != nil {
		return nil, err
	}

	subject := &models.Subject{
		Name:         strings.TrimSpace(req.Name),
		Code:         strings.TrimSpace(req.Code),
		WeeklyHours:  req.WeeklyHours,
		StudentCount: req.StudentCount,
		FacultyID:    faculty.ID,
		TeacherID:    teacher.ID,
	}
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, translateStorageError(s.logger, err)
	}
	return subject, nil
}

// List returns subjects plus pagination data.
func (s *SubjectService) List(ctx context.Context, q models.PageQuery) ([]models.Subject, *models.Pagination, error) {
	limit, offset := s.defaults.Resolve(q)
	subjects, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, &models.Pagination{Limit: limit, Offset: offset, TotalCount: total}, nil
}

// ListByTeacher returns the subjects taught by one teacher.
func (s *SubjectService) ListByTeacher(ctx context.Context, teacherID string, q models.PageQuery) ([]models.Subject, *models.Pagination, error) {
	if _, err := resolveTeacher(ctx, s.teachers, teacherID); err != nil {
		return nil, nil, err
	}

	limit, offset := s.defaults.Resolve(q)
	subjects, total, err := s.repo.ListByTeacher(ctx, teacherID, limit, offset)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects by teacher")
	}
	return subjects, &models.Pagination{Limit: limit, Offset: offset, TotalCount: total}, nil
}

// Get returns a subject by id.
func (s *SubjectService) Get(ctx context.Context, id string) (*models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("subject with id %s not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	return subject, nil
}

// Update applies a partial update, re-resolving any supplied foreign
// key references.
func (s *SubjectService) Update(ctx context.Context, id string, req UpdateSubjectRequest) (*models.Subject, error) {
	if !req.hasFields() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no fields provided for update")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}

	if req.FacultyID != nil {
		if _, err := resolveFaculty(ctx, s.faculties, *req.FacultyID); err != nil {
			return nil, err
		}
	}
	if req.TeacherID != nil {
		if _, err := resolveTeacher(ctx, s.teachers, *req.TeacherID); err != nil {
			return nil, err
		}
	}

	subject, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		subject.Name = strings.TrimSpace(*req.Name)
	}
	if req.Code != nil {
		subject.Code = strings.TrimSpace(*req.Code)
	}
	if req.WeeklyHours != nil {
		subject.WeeklyHours = *req.WeeklyHours
	}
	if req.StudentCount != nil {
		subject.StudentCount = *req.StudentCount
	}
	if req.FacultyID != nil {
		subject.FacultyID = *req.FacultyID
	}
	if req.TeacherID != nil {
		subject.TeacherID = *req.TeacherID
	}

	if err := s.repo.Update(ctx, subject); err != nil {
		return nil, translateStorageError(s.logger, err)
	}
	return subject, nil
}

// Delete removes a subject. Its schedules are cleaned up by the
// storage cascade, not here.
func (s *SubjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateStorageError(s.logger, err)
	}
	return nil
}
