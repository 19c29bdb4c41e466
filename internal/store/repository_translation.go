package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/models"
)

// translationRepository is the SQL implementation of [TranslationRepository].
type translationRepository struct {
	*DB
	logger *logger.Logger
}

// NewTranslationRepository constructs a [TranslationRepository] backed by db.
func NewTranslationRepository(db *DB, logger *logger.Logger) TranslationRepository {
	logger.Debug().Msg("creating translation repository")
	return &translationRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *translationRepository) GetTranslations(ctx context.Context, userID int64) ([]models.Translation, error) {
	query, args, err := buildGetTranslationsQuery(r.builder(), userID, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryTranslations(ctx, "translationRepository.GetTranslations", userID, query, args)
}

func (r *translationRepository) GetFavoriteTranslations(ctx context.Context, userID int64) ([]models.Translation, error) {
	query, args, err := buildGetTranslationsQuery(r.builder(), userID, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryTranslations(ctx, "translationRepository.GetFavoriteTranslations", userID, query, args)
}

func (r *translationRepository) GetTranslation(ctx context.Context, id int64) (models.Translation, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetTranslationQuery(r.builder(), id)
	if err != nil {
		return models.Translation{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	translation, err := scanTranslation(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Translation{}, ErrTranslationNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "translationRepository.GetTranslation").
			Int64("translation_id", id).
			Msg("failed to query translation")
		return models.Translation{}, r.wrap(ErrExecutingQuery, err)
	}

	return translation, nil
}

func (r *translationRepository) CreateTranslation(ctx context.Context, translation models.Translation) (models.Translation, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateTranslationQuery(r.builder(), translation)
	if err != nil {
		return models.Translation{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanTranslation(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).
			Str("func", "translationRepository.CreateTranslation").
			Msg("failed to insert translation")
		return models.Translation{}, r.wrap(ErrExecutingStatement, err)
	}

	return created, nil
}

func (r *translationRepository) UpdateTranslationFavorite(ctx context.Context, id int64, favorite bool) (models.Translation, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateTranslationFavoriteQuery(r.builder(), id, favorite)
	if err != nil {
		return models.Translation{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanTranslation(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Translation{}, ErrTranslationNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "translationRepository.UpdateTranslationFavorite").
			Int64("translation_id", id).
			Msg("failed to update favorite flag")
		return models.Translation{}, r.wrap(ErrExecutingStatement, err)
	}

	return updated, nil
}

func (r *translationRepository) queryTranslations(ctx context.Context, funcName string, userID int64, query string, args []any) ([]models.Translation, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Int64("user_id", userID).
			Msg("failed to execute query for translations")
		return nil, r.wrap(ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Translation, 0, 16)

	for rows.Next() {
		translation, scanErr := scanTranslation(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Int64("user_id", userID).
				Msg("failed to scan translation row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, translation)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", funcName).
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

func scanTranslation(row rowScanner) (models.Translation, error) {
	var t models.Translation
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.SourceText,
		&t.TranslatedText,
		&t.FromLang,
		&t.ToLang,
		&t.Favorite,
		&t.CreatedAt,
	)
	return t, err
}
