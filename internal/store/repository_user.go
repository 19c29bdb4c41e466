package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/models"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// userRepository is the SQL implementation of [UserRepository]. It serves
// both PostgreSQL and SQLite; only the placeholder format and the error
// classifier of the embedded [DB] differ.
type userRepository struct {
	*DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *userRepository) GetUser(ctx context.Context, id int64) (models.User, error) {
	query, args, err := buildGetUserQuery(r.builder(), id)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryUser(ctx, "*userRepository.GetUser", query, args)
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	query, args, err := buildGetUserByUsernameQuery(r.builder(), username)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryUser(ctx, "*userRepository.GetUserByUsername", query, args)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	query, args, err := buildGetUserByEmailQuery(r.builder(), email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryUser(ctx, "*userRepository.GetUserByEmail", query, args)
}

// CreateUser inserts user and returns the stored row.
//
// Error handling:
//   - unique index on LOWER(username) → [ErrUsernameAlreadyExists].
//   - unique index on LOWER(email) → [ErrEmailAlreadyExists].
//   - transient driver errors → wrapped with [ErrRetryable].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateUserQuery(r.builder(), user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanUser(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		if conflict := r.userConflict(err); conflict != nil {
			log.Warn().Str("func", "*userRepository.CreateUser").Err(conflict).Msg("user already exists")
			return models.User{}, conflict
		}

		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, r.wrap(ErrExecutingStatement, err)
	}

	return created, nil
}

// UpdateUser applies update to the user with id. An empty update returns
// the current record unchanged.
func (r *userRepository) UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return r.GetUser(ctx, id)
	}

	query, args, err := buildUpdateUserQuery(r.builder(), id, update)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanUser(r.QueryRowContext(ctx, query, args...))
	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrUserNotFound
	}

	if conflict := r.userConflict(err); conflict != nil {
		log.Warn().Str("func", "*userRepository.UpdateUser").Int64("user_id", id).Err(conflict).Msg("unique field already taken")
		return models.User{}, conflict
	}

	log.Err(err).Str("func", "*userRepository.UpdateUser").Int64("user_id", id).Msg("error updating user")
	return models.User{}, r.wrap(ErrExecutingStatement, err)
}

func (r *userRepository) queryUser(ctx context.Context, funcName, query string, args []any) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error querying user")
		return models.User{}, r.wrap(ErrExecutingQuery, err)
	}

	return user, nil
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(&user.UserID, &user.Username, &user.Password, &user.Email, &user.Name, &user.LangPreference)
	return user, err
}
