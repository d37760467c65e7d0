package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edusync/academia-api/internal/models"
	appErrors "github.com/edusync/academia-api/pkg/errors"
)

type mockFacultyRepo struct {
	faculties []models.Faculty
	byID      *models.Faculty
	findErr   error
	createErr error
	updateErr error
	deleteErr error
	created   *models.Faculty
	updated   *models.Faculty
	deletedID string
}

func (m *mockFacultyRepo) List(ctx context.Context, limit, offset int) ([]models.Faculty, int, error) {
	return m.faculties, len(m.faculties), nil
}

func (m *mockFacultyRepo) FindByID(ctx context.Context, id string) (*models.Faculty, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.byID, nil
}

func (m *mockFacultyRepo) Create(ctx context.Context, faculty *models.Faculty) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = faculty
	return nil
}

func (m *mockFacultyRepo) Update(ctx context.Context, faculty *models.Faculty) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = faculty
	return nil
}

func (m *mockFacultyRepo) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = id
	return nil
}

func newFacultyService(repo *mockFacultyRepo) *FacultyService {
	return NewFacultyService(repo, PageDefaults{Limit: 10}, validator.New(), zap.NewNop())
}

func TestFacultyServiceCreate(t *testing.T) {
	repo := &mockFacultyRepo{}
	svc := newFacultyService(repo)

	faculty, err := svc.Create(context.Background(), CreateFacultyRequest{Name: "  Engineering  "})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", faculty.Name)
	assert.True(t, faculty.Active)
	require.NotNil(t, repo.created)
}

func TestFacultyServiceCreateValidation(t *testing.T) {
	svc := newFacultyService(&mockFacultyRepo{})

	_, err := svc.Create(context.Background(), CreateFacultyRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestFacultyServiceList(t *testing.T) {
	repo := &mockFacultyRepo{faculties: []models.Faculty{{ID: "f1"}, {ID: "f2"}}}
	svc := newFacultyService(repo)

	faculties, pagination, err := svc.List(context.Background(), models.PageQuery{})
	require.NoError(t, err)
	assert.Len(t, faculties, 2)
	require.NotNil(t, pagination)
	assert.Equal(t, 10, pagination.Limit)
	assert.Equal(t, 2, pagination.TotalCount)
}

func TestFacultyServiceGetNotFound(t *testing.T) {
	svc := newFacultyService(&mockFacultyRepo{findErr: sql.ErrNoRows})

	_, err := svc.Get(context.Background(), "f-missing")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "faculty with id f-missing not found", appErr.Message)
}

func TestFacultyServiceUpdateNoFields(t *testing.T) {
	repo := &mockFacultyRepo{byID: &models.Faculty{ID: "f1", Name: "Science", Active: true}}
	svc := newFacultyService(repo)

	_, err := svc.Update(context.Background(), "f1", UpdateFacultyRequest{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "no fields provided for update", appErr.Message)
	assert.Nil(t, repo.updated)
}

func TestFacultyServiceUpdatePartial(t *testing.T) {
	repo := &mockFacultyRepo{byID: &models.Faculty{ID: "f1", Name: "Science", Active: true}}
	svc := newFacultyService(repo)

	inactive := false
	faculty, err := svc.Update(context.Background(), "f1", UpdateFacultyRequest{Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Science", faculty.Name)
	assert.False(t, faculty.Active)
	require.NotNil(t, repo.updated)
}

func TestFacultyServiceDelete(t *testing.T) {
	repo := &mockFacultyRepo{byID: &models.Faculty{ID: "f1"}}
	svc := newFacultyService(repo)

	require.NoError(t, svc.Delete(context.Background(), "f1"))
	assert.Equal(t, "f1", repo.deletedID)
}

func TestFacultyServiceDeleteNotFound(t *testing.T) {
	repo := &mockFacultyRepo{findErr: sql.ErrNoRows}
	svc := newFacultyService(repo)

	err := svc.Delete(context.Background(), "f-missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.deletedID)
}
