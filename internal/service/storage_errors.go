package service

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/lib/pq"
	"go.uber.org/zap"

	appErrors "github.com/edusync/academia-api/pkg/errors"
)

// Postgres error codes this layer knows how to translate.
const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
	pgInvalidSyntax    = "22P02"
)

var columnDetailPattern = regexp.MustCompile(`column "([^"]+)"`)

// translateStorageError maps a failed write into the domain error
// taxonomy. Unique violations, missing columns and malformed values
// become bad requests carrying the driver detail; anything else is
// logged with full detail and reported generically.
func translateStorageError(logger *zap.Logger, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		logger.Error("database error",
			zap.String("code", string(pqErr.Code)),
			zap.String("detail", pqErr.Detail),
			zap.Error(err),
		)
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return appErrors.Wrap(err, appErrors.ErrDuplicateKey.Code, appErrors.ErrDuplicateKey.Status, pqDetail(pqErr))
		case pgNotNullViolation:
			if column := nullColumn(pqErr); column != "" {
				return appErrors.Wrap(err, appErrors.ErrNotNullViolation.Code, appErrors.ErrNotNullViolation.Status, fmt.Sprintf("%s property cannot be null", column))
			}
			return appErrors.Wrap(err, appErrors.ErrNotNullViolation.Code, appErrors.ErrNotNullViolation.Status, pqDetail(pqErr))
		case pgInvalidSyntax:
			return appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, pqDetail(pqErr))
		}
	}

	logger.Error("unclassified storage error", zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "check server logs")
}

func pqDetail(pqErr *pq.Error) string {
	if pqErr.Detail != "" {
		return pqErr.Detail
	}
	return pqErr.Message
}

// nullColumn names the offending column of a not-null violation,
// preferring the driver field and falling back to a best-effort parse
// of the detail text.
func nullColumn(pqErr *pq.Error) string {
	if pqErr.Column != "" {
		return pqErr.Column
	}
	for _, text := range []string{pqErr.Detail, pqErr.Message} {
		if match := columnDetailPattern.FindStringSubmatch(text); match != nil {
			return match[1]
		}
	}
	return ""
}
