package service

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edusync/academia-api/internal/models"
	appErrors "github.com/edusync/academia-api/pkg/errors"
	"github.com/edusync/academia-api/pkg/export"
)

const otherFacultyID = "4a7b6e8c-9f5b-4ace-9c6d-5b1f9e8a7c65"

type mockScheduleRepo struct {
	schedules []models.Schedule
	details   []models.ScheduleDetail
	byID      *models.Schedule
	findErr   error
	created   *models.Schedule
	updated   *models.Schedule
	listedBy  string
}

func (m *mockScheduleRepo) List(ctx context.Context, limit, offset int) ([]models.Schedule, int, error) {
	return m.schedules, len(m.schedules), nil
}

func (m *mockScheduleRepo) ListByFaculty(ctx context.Context, facultyID string, limit, offset int) ([]models.Schedule, int, error) {
	m.listedBy = facultyID
	return m.schedules, len(m.schedules), nil
}

func (m *mockScheduleRepo) ListDetailedByFaculty(ctx context.Context, facultyID string) ([]models.ScheduleDetail, error) {
	return m.details, nil
}

func (m *mockScheduleRepo) FindByID(ctx context.Context, id string) (*models.Schedule, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.byID, nil
}

func (m *mockScheduleRepo) Create(ctx context.Context, schedule *models.Schedule) error {
	m.created = schedule
	return nil
}

func (m *mockScheduleRepo) Update(ctx context.Context, schedule *models.Schedule) error {
	m.updated = schedule
	return nil
}

func (m *mockScheduleRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func newScheduleService(repo *mockScheduleRepo, subjects subjectReader, classrooms classroomReader, faculties facultyReader) *ScheduleService {
	return NewScheduleService(repo, subjects, classrooms, faculties, nil, PageDefaults{Limit: 10}, validator.New(), zap.NewNop())
}

func TestScheduleServiceCreateDenormalizesFaculty(t *testing.T) {
	repo := &mockScheduleRepo{}
	svc := newScheduleService(repo,
		&stubSubjectReader{subject: &models.Subject{ID: testSubjectID, FacultyID: testFacultyID}},
		&stubClassroomReader{classroom: &models.Classroom{ID: testClassroomID}},
		&stubFacultyReader{},
	)

	schedule, err := svc.Create(context.Background(), CreateScheduleRequest{
		Day:         "monday",
		StartTime:   "08:00",
		EndTime:     "10:00",
		SubjectID:   testSubjectID,
		ClassroomID: testClassroomID,
	})
	require.NoError(t, err)
	assert.Equal(t, testFacultyID, schedule.FacultyID)
	assert.Equal(t, testSubjectID, schedule.SubjectID)
	require.NotNil(t, repo.created)
}

func TestScheduleServiceCreateClassroomMissing(t *testing.T) {
	svc := newScheduleService(&mockScheduleRepo{},
		&stubSubjectReader{subject: &models.Subject{ID: testSubjectID, FacultyID: testFacultyID}},
		&stubClassroomReader{err: sql.ErrNoRows},
		&stubFacultyReader{},
	)

	_, err := svc.Create(context.Background(), CreateScheduleRequest{
		Day:         "monday",
		StartTime:   "08:00",
		EndTime:     "10:00",
		SubjectID:   testSubjectID,
		ClassroomID: testClassroomID,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "classroom with id")
}

func TestScheduleServiceUpdateSubjectRefreshesFaculty(t *testing.T) {
	repo := &mockScheduleRepo{byID: &models.Schedule{
		ID:          "s1",
		Day:         "monday",
		StartTime:   "08:00",
		EndTime:     "10:00",
		SubjectID:   testSubjectID,
		ClassroomID: testClassroomID,
		FacultyID:   testFacultyID,
	}}
	svc := newScheduleService(repo,
		&stubSubjectReader{subject: &models.Subject{ID: testSubjectID, FacultyID: otherFacultyID}},
		&stubClassroomReader{classroom: &models.Classroom{ID: testClassroomID}},
		&stubFacultyReader{},
	)

	day := "tuesday"
	subjectID := testSubjectID
	schedule, err := svc.Update(context.Background(), "s1", UpdateScheduleRequest{
		Day:       &day,
		SubjectID: &subjectID,
	})
	require.NoError(t, err)
	assert.Equal(t, "tuesday", schedule.Day)
	assert.Equal(t, otherFacultyID, schedule.FacultyID)
}

func TestScheduleServiceUpdateReferenceOnlyIsEmpty(t *testing.T) {
	repo := &mockScheduleRepo{byID: &models.Schedule{ID: "s1"}}
	svc := newScheduleService(repo, &stubSubjectReader{}, &stubClassroomReader{}, &stubFacultyReader{})

	subjectID := testSubjectID
	_, err := svc.Update(context.Background(), "s1", UpdateScheduleRequest{SubjectID: &subjectID})
	require.Error(t, err)
	assert.Equal(t, "no fields provided for update", appErrors.FromError(err).Message)
}

func TestScheduleServiceExportByFacultyCSV(t *testing.T) {
	repo := &mockScheduleRepo{details: []models.ScheduleDetail{
		{
			Schedule:      models.Schedule{Day: "monday", StartTime: "08:00", EndTime: "10:00"},
			SubjectName:   "Mathematics",
			ClassroomName: "Lab 1",
		},
	}}
	svc := newScheduleService(repo, &stubSubjectReader{}, &stubClassroomReader{},
		&stubFacultyReader{faculty: &models.Faculty{ID: testFacultyID, Name: "Engineering"}})

	rendered, err := svc.ExportByFaculty(context.Background(), testFacultyID, export.NewCSVExporter())
	require.NoError(t, err)

	body := string(rendered)
	assert.True(t, strings.Contains(body, "Mathematics"))
	assert.True(t, strings.Contains(body, "Lab 1"))
	assert.True(t, strings.Contains(body, "monday"))
}

func TestScheduleServiceExportRecordsQueryTiming(t *testing.T) {
	repo := &mockScheduleRepo{details: []models.ScheduleDetail{
		{Schedule: models.Schedule{Day: "monday", StartTime: "08:00", EndTime: "10:00"}},
	}}
	metrics := NewMetricsService()
	svc := NewScheduleService(repo, &stubSubjectReader{}, &stubClassroomReader{},
		&stubFacultyReader{faculty: &models.Faculty{ID: testFacultyID, Name: "Engineering"}},
		metrics, PageDefaults{Limit: 10}, validator.New(), zap.NewNop())

	_, err := svc.ExportByFaculty(context.Background(), testFacultyID, export.NewCSVExporter())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	metrics.Handler().ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), `db_query_duration_seconds_count{query="schedule_export"} 1`)
}

func TestScheduleServiceExportFacultyMissing(t *testing.T) {
	svc := newScheduleService(&mockScheduleRepo{}, &stubSubjectReader{}, &stubClassroomReader{},
		&stubFacultyReader{err: sql.ErrNoRows})

	_, err := svc.ExportByFaculty(context.Background(), testFacultyID, export.NewCSVExporter())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
