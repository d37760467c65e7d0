package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusync/academia-api/internal/models"
)

func TestScheduleRepositoryListByFacultyJoinsSubjects(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	rows := sqlmock.NewRows([]string{"id", "day", "start_time", "end_time", "subject_id", "classroom_id", "faculty_id", "created_at", "updated_at"}).
		AddRow("s1", "monday", "08:00", "10:00", "sub1", "c1", "f1", time.Now(), time.Now())
	mock.ExpectQuery("FROM schedules s\\s+JOIN subjects subj ON subj.id = s.subject_id\\s+WHERE subj.faculty_id = \\$1").
		WithArgs("f1", 10, 0).
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM schedules s JOIN subjects subj").
		WithArgs("f1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	schedules, total, err := repo.ListByFaculty(context.Background(), "f1", 10, 0)
	require.NoError(t, err)
	assert.Len(t, schedules, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "f1", schedules[0].FacultyID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryListDetailedByFaculty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	rows := sqlmock.NewRows([]string{"id", "day", "start_time", "end_time", "subject_id", "classroom_id", "faculty_id", "created_at", "updated_at", "subject_name", "classroom_name"}).
		AddRow("s1", "monday", "08:00", "10:00", "sub1", "c1", "f1", time.Now(), time.Now(), "Mathematics", "Lab 1")
	mock.ExpectQuery("JOIN classrooms c ON c.id = s.classroom_id").
		WithArgs("f1").
		WillReturnRows(rows)

	details, err := repo.ListDetailedByFaculty(context.Background(), "f1")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Mathematics", details[0].SubjectName)
	assert.Equal(t, "Lab 1", details[0].ClassroomName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec("INSERT INTO schedules").
		WithArgs(sqlmock.AnyArg(), "monday", "08:00", "10:00", "sub1", "c1", "f1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	schedule := &models.Schedule{Day: "monday", StartTime: "08:00", EndTime: "10:00", SubjectID: "sub1", ClassroomID: "c1", FacultyID: "f1"}
	require.NoError(t, repo.Create(context.Background(), schedule))
	assert.NotEmpty(t, schedule.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
