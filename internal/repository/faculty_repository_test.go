package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusync/academia-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestFacultyRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFacultyRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "active", "created_at", "updated_at"}).
		AddRow("f1", "Engineering", true, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, active, created_at, updated_at FROM faculties ORDER BY created_at LIMIT $1 OFFSET $2")).
		WithArgs(10, 0).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM faculties")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFacultyRepositoryCreateAssignsIDAndTimestamps(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFacultyRepository(db)

	mock.ExpectExec("INSERT INTO faculties").
		WithArgs(sqlmock.AnyArg(), "Engineering", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	faculty := &models.Faculty{Name: "Engineering", Active: true}
	require.NoError(t, repo.Create(context.Background(), faculty))
	assert.NotEmpty(t, faculty.ID)
	assert.False(t, faculty.CreatedAt.IsZero())
	assert.Equal(t, faculty.CreatedAt, faculty.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFacultyRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFacultyRepository(db)

	mock.ExpectExec("UPDATE faculties SET").
		WithArgs("Science", false, sqlmock.AnyArg(), "f1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	faculty := &models.Faculty{ID: "f1", Name: "Science", Active: false}
	require.NoError(t, repo.Update(context.Background(), faculty))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFacultyRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFacultyRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM faculties WHERE id = $1")).
		WithArgs("f1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Delete(context.Background(), "f1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
