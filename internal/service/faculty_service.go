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

type facultyRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.Faculty, int, error)
	FindByID(ctx context.Context, id string) (*models.Faculty, error)
	Create(ctx context.Context, faculty *models.Faculty) error
	Update(ctx context.Context, faculty *models.Faculty) error
	Delete(ctx context.Context, id string) error
}

// CreateFacultyRequest represents payload for creating faculties.
type CreateFacultyRequest struct {
	Name string `json:"name" validate:"required"`
}

// UpdateFacultyRequest represents a partial faculty update. Only
// non-nil fields are applied.
type UpdateFacultyRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1"`
	Active *bool   `json:"active"`
}

func (r UpdateFacultyRequest) hasFields() bool {
	return r.Name != nil || r.Active != nil
}

// FacultyService orchestrates faculty operations.
type FacultyService struct {
	repo      facultyRepository
	defaults  PageDefaults
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFacultyService constructs a FacultyService.
func NewFacultyService(repo facultyRepository, defaults PageDefaults, validate *validator.Validate, logger *zap.Logger) *FacultyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FacultyService{repo: repo, defaults: defaults, validator: validate, logger: logger}
}

// Create registers a new faculty.
func (s *FacultyService) Create(ctx context.Context, req CreateFacultyRequest) (*models.Faculty, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty payload")
	}

	faculty := &models.Faculty{
		Name:   strings.TrimSpace(req.Name),
		Active: true,
	}
	if err := s.repo.Create(ctx, faculty); err != nil {
		return nil, translateStorageError(s.logger, err)
	}
	return faculty, nil
}

// List returns faculties plus pagination data.
func (s *FacultyService) List(ctx context.Context, q models.PageQuery) ([]models.Faculty, *models.Pagination, error) {
	limit, offset := s.defaults.Resolve(q)
	faculties, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faculties")
	}
	return faculties, &models.Pagination{Limit: limit, Offset: offset, TotalCount: total}, nil
}

// Get returns a faculty by id.
func (s *FacultyService) Get(ctx context.Context, id string) (*models.Faculty, error) {
	faculty, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("faculty with id %s not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}
	return faculty, nil
}

// Update applies a partial update to an existing faculty.
func (s *FacultyService) Update(ctx context.Context, id string, req UpdateFacultyRequest) (*models.Faculty, error) {
	if !req.hasFields() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no fields provided for update")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty payload")
	}

	faculty, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		faculty.Name = strings.TrimSpace(*req.Name)
	}
	if req.Active != nil {
		faculty.Active = *req.Active
	}

	if err := s.repo.Update(ctx, faculty); err != nil {
		return nil, translateStorageError(s.logger, err)
	}
	return faculty, nil
}

// Delete removes a faculty. Dependent rows are cleaned up by storage
// cascade rules, not here.
func (s *FacultyService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateStorageError(s.logger, err)
	}
	return nil
}
