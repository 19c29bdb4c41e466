package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/migrations"
)

// DB wraps a SQL connection together with everything that differs between
// the supported SQL dialects: the migration set, the placeholder format and
// the driver error classifier.
type DB struct {
	*sql.DB
	dialect            string
	placeholder        sq.PlaceholderFormat
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// ErrorClassificator inspects driver errors.
type ErrorClassificator interface {
	// Classify reports whether a failed operation may be retried.
	Classify(err error) ErrorClassification

	// UniqueViolation returns the name of the violated unique index, or ""
	// when err is not a unique violation.
	UniqueViolation(err error) string
}

// Migrate applies the embedded migrations of the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}

// Dialect returns the migration dialect name of the connection.
func (db *DB) Dialect() string {
	return db.dialect
}

// builder returns a squirrel statement builder using the dialect's
// placeholder format.
func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.placeholder)
}

// wrap attaches base to err and marks transient failures with
// [ErrRetryable].
func (db *DB) wrap(base, err error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w: %w", ErrRetryable, base, err)
	}
	return fmt.Errorf("%w: %w", base, err)
}

// userConflict maps a unique violation on the users table to its domain
// error. It returns nil for any other error.
func (db *DB) userConflict(err error) error {
	if db.errorClassificator == nil {
		return nil
	}

	switch db.errorClassificator.UniqueViolation(err) {
	case usernameUniqueIndex:
		return ErrUsernameAlreadyExists
	case emailUniqueIndex:
		return ErrEmailAlreadyExists
	default:
		return nil
	}
}

// Unique indexes of the users table, as named in the migrations.
const (
	usernameUniqueIndex = "users_username_lower_key"
	emailUniqueIndex    = "users_email_lower_key"
)
