// Package postgres implements the store interfaces using a PostgreSQL
// database as the storage backend.
package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/weeklisthq/weeklist-api/internal/store"
)

// PostgreSQL error codes.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// isUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// isForeignKeyViolation checks if the given error is a PostgreSQL foreign key
// constraint violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// mapUniqueViolation translates a unique violation into the store-level
// duplicate error for the constraint that fired.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return store.ErrEmailExists
	case strings.Contains(pgErr.ConstraintName, "mobile"):
		return store.ErrMobileExists
	default:
		return store.ErrDuplicate
	}
}
