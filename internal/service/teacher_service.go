package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/edusync/academia-api/internal/models"
	appErrors "github.com/edusync/academia-api/pkg/errors"
)

const defaultMaxHoursPerWeek = 20

type teacherRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.Teacher, int, error)
	ListByFaculty(ctx context.Context, facultyID string, limit, offset int) ([]models.Teacher, int, error)
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id string) error
}

// CreateTeacherRequest represents payload for creating teachers.
type CreateTeacherRequest struct {
	Name            string         `json:"name" validate:"required"`
	Email           string         `json:"email" validate:"required,email"`
	Availability    types.JSONText `json:"availability"`
	MaxHoursPerWeek *int           `json:"max_hours_per_week" validate:"omitempty,min=1"`
	FacultyID       string         `json:"faculty_id" validate:"required,uuid"`
}

// UpdateTeacherRequest represents a partial teacher update.
type UpdateTeacherRequest struct {
	Name            *string        `json:"name" validate:"omitempty,min=1"`
	Email           *string        `json:"email" validate:"omitempty,email"`
	Availability    types.JSONText `json:"availability"`
	Active          *bool          `json:"active"`
	MaxHoursPerWeek *int           `json:"max_hours_per_week" validate:"omitempty,min=1"`
	FacultyID       *string        `json:"faculty_id" validate:"omitempty,uuid"`
}

// hasFields reports whether any mutable field is present; the faculty
// reference does not count.
func (r UpdateTeacherRequest) hasFields() bool {
	return r.Name != nil || r.Email != nil || r.Availability != nil || r.Active != nil || r.MaxHoursPerWeek != nil
}

// TeacherService orchestrates teacher operations.
type TeacherService struct {
	repo      teacherRepository
	faculties facultyReader
	defaults  PageDefaults
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, faculties facultyReader, defaults PageDefaults, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, faculties: faculties, defaults: defaults, validator: validate, logger: logger}
}

// Create registers a new teacher after resolving its faculty.
func (s *TeacherService) Create(ctx context.Context, req CreateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}

	faculty, err := resolveFaculty(ctx, s.faculties, req.FacultyID)
	if err != nil {
		return nil, err
	}

	maxHours := defaultMaxHoursPerWeek
	if req.MaxHoursPerWeek != nil {
		maxHours = *req.MaxHoursPerWeek
	}
	teacher := &models.Teacher{
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Availability:    req.Availability,
		Active:          true,
		MaxHoursPerWeek: maxHours,
		FacultyID:       faculty.ID,
	}
	if err := s.repo.Create(ctx, teacher); err != nil {
		return nil, translateStorageError(s.logger, err)
	}
	return teacher, nil
}

// List returns teachers plus pagination data.
func (s *TeacherService) List(ctx context.Context, q models.PageQuery) ([]models.Teacher, *models.Pagination, error) {
	limit, offset := s.defaults.Resolve(q)
	teachers, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers")
	}
	return teachers, &models.Pagination{Limit: limit, Offset: offset, TotalCount: total}, nil
}

// ListByFaculty returns the teachers of one faculty.
func (s *TeacherService) ListByFaculty(ctx context.Context, facultyID string, q models.PageQuery) ([]models.Teacher, *models.Pagination, error) {
	if _, err := resolveFaculty(ctx, s.faculties, facultyID); err != nil {
		return nil, nil, err
	}

	limit, offset := s.defaults.Resolve(q)
	teachers, total, err := s.repo.ListByFaculty(ctx, facultyID, limit, offset)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers by faculty")
	}
	return teachers, &models.Pagination{Limit: limit, Offset: offset, TotalCount: total}, nil
}

// Get returns a teacher by id.
func (s *TeacherService) Get(ctx context.Context, id string) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("teacher with id %s not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	return teacher, nil
}

// Update applies a partial update, re-resolving the faculty reference
// when one is supplied.
func (s *TeacherService) Update(ctx context.Context, id string, req UpdateTeacherRequest) (*models.Teacher, error) {
	if !req.hasFields() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no fields provided for update")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}

	if req.FacultyID != nil {
		if _, err := resolveFaculty(ctx, s.faculties, *req.FacultyID); err != nil {
			return nil, err
		}
	}

	teacher, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		teacher.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		teacher.Email = strings.TrimSpace(*req.Email)
	}
	if req.Availability != nil {
		teacher.Availability = req.Availability
	}
	if req.Active != nil {
		teacher.Active = *req.Active
	}
	if req.MaxHoursPerWeek != nil {
		teacher.MaxHoursPerWeek = *req.MaxHoursPerWeek
	}
	if req.FacultyID != nil {
		teacher.FacultyID = *req.FacultyID
	}

	if err := s.repo.Update(ctx, teacher); err != nil {
		return nil, translateStorageError(s.logger, err)
	}
	return teacher, nil
}

// Delete removes a teacher.
func (s *TeacherService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateStorageError(s.logger, err)
	}
	return nil
}
