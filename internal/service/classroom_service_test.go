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

const (
	testFacultyID   = "0c3f2a4e-5b1d-4c8a-9e2f-7d6b5a4c3e21"
	testTeacherID   = "1d4e3b5f-6c2e-4d9b-8f3a-2e7c6b5d4f32"
	testSubjectID   = "2e5f4c6a-7d3f-4eac-9a4b-3f8d7c6e5a43"
	testClassroomID = "3f6a5d7b-8e4a-4fbd-8b5c-4a9e8d7f6b54"
)

type mockClassroomRepo struct {
	classrooms []models.Classroom
	byID       *models.Classroom
	findErr    error
	created    *models.Classroom
	updated    *models.Classroom
	deletedID  string
	listedBy   string
}

func (m *mockClassroomRepo) List(ctx context.Context, limit, offset int) ([]models.Classroom, int, error) {
	return m.classrooms, len(m.classrooms), nil
}

func (m *mockClassroomRepo) ListByFaculty(ctx context.Context, facultyID string, limit, offset int) ([]models.Classroom, int, error) {
	m.listedBy = facultyID
	return m.classrooms, len(m.classrooms), nil
}

func (m *mockClassroomRepo) FindByID(ctx context.Context, id string) (*models.Classroom, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.byID, nil
}

func (m *mockClassroomRepo) Create(ctx context.Context, classroom *models.Classroom) error {
	m.created = classroom
	return nil
}

func (m *mockClassroomRepo) Update(ctx context.Context, classroom *models.Classroom) error {
	m.updated = classroom
	return nil
}

func (m *mockClassroomRepo) Delete(ctx context.Context, id string) error {
	m.deletedID = id
	return nil
}

func newClassroomService(repo *mockClassroomRepo, faculties facultyReader) *ClassroomService {
	return NewClassroomService(repo, faculties, PageDefaults{Limit: 10}, validator.New(), zap.NewNop())
}

func TestClassroomServiceCreateDefaultsStatus(t *testing.T) {
	repo := &mockClassroomRepo{}
	faculties := &stubFacultyReader{faculty: &models.Faculty{ID: testFacultyID}}
	svc := newClassroomService(repo, faculties)

	classroom, err := svc.Create(context.Background(), CreateClassroomRequest{
		Name:      "Lab 1",
		Capacity:  30,
		FacultyID: testFacultyID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ClassroomAvailable, classroom.Status)
	assert.Equal(t, testFacultyID, classroom.FacultyID)
	require.NotNil(t, repo.created)
}

func TestClassroomServiceCreateFacultyMissing(t *testing.T) {
	svc := newClassroomService(&mockClassroomRepo{}, &stubFacultyReader{err: sql.ErrNoRows})

	_, err := svc.Create(context.Background(), CreateClassroomRequest{
		Name:      "Lab 1",
		Capacity:  30,
		FacultyID: testFacultyID,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestClassroomServiceUpdateFacultyOnlyIsEmpty(t *testing.T) {
	faculties := &stubFacultyReader{err: sql.ErrNoRows}
	repo := &mockClassroomRepo{byID: &models.Classroom{ID: testClassroomID}}
	svc := newClassroomService(repo, faculties)

	// The faculty reference alone does not count as an update, and the
	// empty-update check fires before the reference would be resolved.
	facultyID := testFacultyID
	_, err := svc.Update(context.Background(), testClassroomID, UpdateClassroomRequest{FacultyID: &facultyID})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "no fields provided for update", appErr.Message)
}

func TestClassroomServiceUpdateMovesFaculty(t *testing.T) {
	faculties := &stubFacultyReader{faculty: &models.Faculty{ID: testFacultyID}}
	repo := &mockClassroomRepo{byID: &models.Classroom{ID: testClassroomID, Name: "Lab 1", Capacity: 30, Status: models.ClassroomAvailable}}
	svc := newClassroomService(repo, faculties)

	capacity := 45
	facultyID := testFacultyID
	classroom, err := svc.Update(context.Background(), testClassroomID, UpdateClassroomRequest{
		Capacity:  &capacity,
		FacultyID: &facultyID,
	})
	require.NoError(t, err)
	assert.Equal(t, 45, classroom.Capacity)
	assert.Equal(t, testFacultyID, classroom.FacultyID)
	assert.Equal(t, "Lab 1", classroom.Name)
}

func TestClassroomServiceListByFacultyMissingParent(t *testing.T) {
	repo := &mockClassroomRepo{}
	svc := newClassroomService(repo, &stubFacultyReader{err: sql.ErrNoRows})

	_, _, err := svc.ListByFaculty(context.Background(), testFacultyID, models.PageQuery{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.listedBy)
}

func TestClassroomServiceListByFaculty(t *testing.T) {
	repo := &mockClassroomRepo{classrooms: []models.Classroom{{ID: testClassroomID}}}
	svc := newClassroomService(repo, &stubFacultyReader{faculty: &models.Faculty{ID: testFacultyID}})

	classrooms, pagination, err := svc.ListByFaculty(context.Background(), testFacultyID, models.PageQuery{})
	require.NoError(t, err)
	assert.Len(t, classrooms, 1)
	assert.Equal(t, testFacultyID, repo.listedBy)
	assert.Equal(t, 1, pagination.TotalCount)
}
