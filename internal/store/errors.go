package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserNotFound is returned when no user matches the requested id,
	// username or email.
	ErrUserNotFound = errors.New("user was not found")

	// ErrTranslationNotFound is returned when no translation has the
	// requested id.
	ErrTranslationNotFound = errors.New("translation was not found")

	// ErrConversationNotFound is returned when no conversation has the
	// requested id.
	ErrConversationNotFound = errors.New("conversation was not found")

	// ErrSessionNotFound is returned when a session id is unknown or the
	// session has expired.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrSessionExpired is returned by CreateSession for a session whose
	// expiry is not in the future.
	ErrSessionExpired = errors.New("session is already expired")

	// ErrUsernameAlreadyExists is returned when a user with the same username
	// (compared case-insensitively) already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrEmailAlreadyExists is returned when another user already owns the
	// email address.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrRetryable wraps transient database failures (lost connection,
	// deadlock, serialization failure). The operation may succeed if
	// repeated later.
	ErrRetryable = errors.New("temporary storage failure")

	// ErrUnknownDriver is returned by [NewStorages] for a storage driver or
	// session backend it does not know how to build.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
