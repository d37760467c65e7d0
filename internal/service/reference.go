package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/edusync/academia-api/internal/models"
	appErrors "github.com/edusync/academia-api/pkg/errors"
)

// Reader interfaces used for foreign-key resolution. Every referenced
// id is re-read from storage immediately before the dependent write;
// results are never cached across operations.

type facultyReader interface {
	FindByID(ctx context.Context, id string) (*models.Faculty, error)
}

type teacherReader interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

type subjectReader interface {
	FindByID(ctx context.Context, id string) (*models.Subject, error)
}

type classroomReader interface {
	FindByID(ctx context.Context, id string) (*models.Classroom, error)
}

func resolveFaculty(ctx context.Context, repo facultyReader, id string) (*models.Faculty, error) {
	faculty, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, referenceError("faculty", id, err)
	}
	return faculty, nil
}

func resolveTeacher(ctx context.Context, repo teacherReader, id string) (*models.Teacher, error) {
	teacher, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, referenceError("teacher", id, err)
	}
	return teacher, nil
}

func resolveSubject(ctx context.Context, repo subjectReader, id string) (*models.Subject, error) {
	subject, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, referenceError("subject", id, err)
	}
	return subject, nil
}

func resolveClassroom(ctx context.Context, repo classroomReader, id string) (*models.Classroom, error) {
	classroom, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, referenceError("classroom", id, err)
	}
	return classroom, nil
}

func referenceError(kind, id string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s with id %s not found", kind, id))
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("failed to load %s", kind))
}
