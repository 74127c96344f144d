// Package pgerr translates PostgreSQL driver errors into the sentinel errors
// shared by repositories and services.
package pgerr

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/khonsu303/estudio/internal/common"
)

// SQLSTATE codes handled by Translate.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
	InvalidTextRepr     = "22P02"
)

// Translate maps sql.ErrNoRows to common.ErrorNotFound, unique violations to
// common.ErrDuplicate and foreign key violations to common.ErrInvalidReference.
// Anything else is wrapped as a db error.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case UniqueViolation:
			return common.ErrDuplicate
		case ForeignKeyViolation:
			return common.ErrInvalidReference
		case InvalidTextRepr:
			return common.ErrorNotFound
		}
	}

	return fmt.Errorf("db error: %w", err)
}

// ValidID reports whether id can be used as a primary key. Malformed ids are
// treated by callers as missing records.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Affected returns common.ErrorNotFound when a mutation touched no rows.
func Affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
