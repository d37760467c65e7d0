package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusync/academia-api/internal/models"
	appErrors "github.com/edusync/academia-api/pkg/errors"
)

// Stub readers shared by the service tests in this package.

type stubFacultyReader struct {
	faculty *models.Faculty
	err     error
}

func (s *stubFacultyReader) FindByID(ctx context.Context, id string) (*models.Faculty, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.faculty, nil
}

type stubTeacherReader struct {
	teacher *models.Teacher
	err     error
}

func (s *stubTeacherReader) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.teacher, nil
}

type stubSubjectReader struct {
	subject *models.Subject
	err     error
}

func (s *stubSubjectReader) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.subject, nil
}

type stubClassroomReader struct {
	classroom *models.Classroom
	err       error
}

func (s *stubClassroomReader) FindByID(ctx context.Context, id string) (*models.Classroom, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.classroom, nil
}

func TestResolveFacultyNotFound(t *testing.T) {
	_, err := resolveFaculty(context.Background(), &stubFacultyReader{err: sql.ErrNoRows}, "f-missing")
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "faculty with id f-missing not found", appErr.Message)
}

func TestResolveFacultyStorageFailure(t *testing.T) {
	_, err := resolveFaculty(context.Background(), &stubFacultyReader{err: errors.New("boom")}, "f1")
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
}

func TestResolveClassroomFound(t *testing.T) {
	reader := &stubClassroomReader{classroom: &models.Classroom{ID: "c1", Name: "Lab 1"}}
	classroom, err := resolveClassroom(context.Background(), reader, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Lab 1", classroom.Name)
}
