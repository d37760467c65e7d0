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

type classroomRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.Classroom, int, error)
	ListByFaculty(ctx context.Context, facultyID string, limit, offset int) ([]models.Classroom, int, error)
	FindByID(ctx context.Context, id string) (*models.Classroom, error)
	Create(ctx context.Context, classroom *models.Classroom) error
	Update(ctx context.Context, classroom *models.Classroom) error
	Delete(ctx context.Context, id string) error
}

// CreateClassroomRequest represents payload for creating classrooms.
type CreateClassroomRequest struct {
	Name      string                 `json:"name" validate:"required"`
	Capacity  int                    `json:"capacity" validate:"required,min=1"`
	Status    models.ClassroomStatus `json:"status" validate:"omitempty,oneof=AVAILABLE MAINTENANCE"`
	FacultyID string                 `json:"faculty_id" validate:"required,uuid"`
}

// UpdateClassroomRequest represents a partial classroom update.
type UpdateClassroomRequest struct {
	Name      *string                 `json:"name" validate:"omitempty,min=1"`
	Capacity  *int                    `json:"capacity" validate:"omitempty,min=1"`
	Status    *models.ClassroomStatus `json:"status" validate:"omitempty,oneof=AVAILABLE MAINTENANCE"`
	FacultyID *string                 `json:"faculty_id" validate:"omitempty,uuid"`
}

// hasFields reports whether any mutable field is present. The faculty
// reference does not count: an update carrying only a faculty id is
// rejected as empty before the reference is ever resolved.
func (r UpdateClassroomRequest) hasFields() bool {
	return r.Name != nil || r.Capacity != nil || r.Status != nil
}

// ClassroomService orchestrates classroom operations.
type ClassroomService struct {
	repo      classroomRepository
	faculties facultyReader
	defaults  PageDefaults
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassroomService constructs a ClassroomService.
func NewClassroomService(repo classroomRepository, faculties facultyReader, defaults PageDefaults, validate *validator.Validate, logger *zap.Logger) *ClassroomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomService{repo: repo, faculties: faculties, defaults: defaults, validator: validate, logger: logger}
}

// Create registers a new classroom after resolving its faculty.
func (s *ClassroomService) Create(ctx context.Context, req CreateClassroomRequest) (*models.Classroom, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid classroom payload")
	}

	faculty, err := resolveFaculty(ctx, s.faculties, req.FacultyID)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.ClassroomAvailable
	}
	classroom := &models.Classroom{
		Name:      strings.TrimSpace(req.Name),
		Capacity:  req.Capacity,
		Status:    status,
		FacultyID: faculty.ID,
	}
	if err := s.repo.Create(ctx, classroom); err != nil {
		return nil, translateStorageError(s.logger, err)
	}
	return classroom, nil
}

// List returns classrooms plus pagination data.
func (s *ClassroomService) List(ctx context.Context, q models.PageQuery) ([]models.Classroom, *models.Pagination, error) {
	limit, offset := s.defaults.Resolve(q)
	classrooms, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classrooms")
	}
	return classrooms, &models.Pagination{Limit: limit, Offset: offset, TotalCount: total}, nil
}

// ListByFaculty returns the classrooms of one faculty. The faculty is
// resolved first; a missing parent short-circuits the paginated query.
func (s *ClassroomService) ListByFaculty(ctx context.Context, facultyID string, q models.PageQuery) ([]models.Classroom, *models.Pagination, error) {
	if _, err := resolveFaculty(ctx, s.faculties, facultyID); err != nil {
		return nil, nil, err
	}

	limit, offset := s.defaults.Resolve(q)
	classrooms, total, err := s.repo.ListByFaculty(ctx, facultyID, limit, offset)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classrooms by faculty")
	}
	return classrooms, &models.Pagination{Limit: limit, Offset: offset, TotalCount: total}, nil
}

// Get returns a classroom by id.
func (s *ClassroomService) Get(ctx context.Context, id string) (*models.Classroom, error) {
	classroom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("classroom with id %s not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom")
	}
	return classroom, nil
}

// Update applies a partial update, re-resolving the faculty reference
// when one is supplied.
func (s *ClassroomService) Update(ctx context.Context, id string, req UpdateClassroomRequest) (*models.Classroom, error) {
	if !req.hasFields() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no fields provided for update")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid classroom payload")
	}

	if req.FacultyID != nil {
		if _, err := resolveFaculty(ctx, s.faculties, *req.FacultyID); err != nil {
			return nil, err
		}
	}

	classroom, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		classroom.Name = strings.TrimSpace(*req.Name)
	}
	if req.Capacity != nil {
		classroom.Capacity = *req.Capacity
	}
	if req.Status != nil {
		classroom.Status = *req.Status
	}
	if req.FacultyID != nil {
		classroom.FacultyID = *req.FacultyID
	}

	if err := s.repo.Update(ctx, classroom); err != nil {
		return nil, translateStorageError(s.logger, err)
	}
	return classroom, nil
}

// Delete removes a classroom.
func (s *ClassroomService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateStorageError(s.logger, err)
	}
	return nil
}
