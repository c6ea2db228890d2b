package repository

import (
	"errors"
	"fmt"

	apperrors "go-gin-event-hub/pkg/app_errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	eventSlugConstraint = "events_slug_key"
)

// mapWriteError 將 PostgreSQL 約束錯誤轉成 apperrors
func mapWriteError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if pgErr.ConstraintName == eventSlugConstraint || pgErr.ConstraintName == "" {
				return apperrors.ErrDuplicateSlug
			}
		case pgForeignKeyViolation:
			return apperrors.ErrDanglingReference
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
