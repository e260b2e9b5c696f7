package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes of interest.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == constraintName
}

// AsPgError extracts the underlying PostgreSQL error, if any, so callers can
// inspect the violated constraint by name.
func AsPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	ok := errors.As(err, &pgErr)
	return pgErr, ok
}

// IsForeignKeyViolation checks if the error is a PostgreSQL foreign key
// violation. Deletes on rows still referenced by RESTRICT constraints and
// inserts referencing missing rows both surface this code.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}
