package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/internal/store"
	"github.com/MKhiriev/amour-lingua/internal/translator"
	"github.com/MKhiriev/amour-lingua/internal/utils"
	"github.com/MKhiriev/amour-lingua/internal/validators"
	"github.com/MKhiriev/amour-lingua/models"
)

type translationService struct {
	translationRepository store.TranslationRepository

	clock utils.Clock

	logger *logger.Logger
}

func NewTranslationService(translationRepository store.TranslationRepository, clock utils.Clock, logger *logger.Logger) TranslationService {
	return &translationService{
		translationRepository: translationRepository,
		clock:                 clock,
		logger:                logger,
	}
}

// Translate runs the canned translator and records the result in the
// caller's history. Every call creates a new, non-favorite record.
func (t *translationService) Translate(ctx context.Context, userID int64, request models.TranslateRequest) (models.Translation, error) {
	from := models.Language(request.FromLang)
	to := models.Language(request.ToLang)

	translation, err := t.translationRepository.CreateTranslation(ctx, models.Translation{
		UserID:         &userID,
		SourceText:     request.Text,
		TranslatedText: translator.Translate(request.Text, from, to),
		FromLang:       from,
		ToLang:         to,
		CreatedAt:      t.clock.Now(),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("saving translation failed")
		return models.Translation{}, fmt.Errorf("saving translation failed: %w", err)
	}

	return translation, nil
}

func (t *translationService) GetTranslations(ctx context.Context, userID int64) ([]models.Translation, error) {
	return t.translationRepository.GetTranslations(ctx, userID)
}

func (t *translationService) GetFavoriteTranslations(ctx context.Context, userID int64) ([]models.Translation, error) {
	return t.translationRepository.GetFavoriteTranslations(ctx, userID)
}

func (t *translationService) SetFavorite(ctx context.Context, userID, translationID int64, request models.FavoriteRequest) (models.Translation, error) {
	log := logger.FromContext(ctx)

	if request.Favorite == nil {
		return models.Translation{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrFavoriteRequired)
	}

	translation, err := t.translationRepository.GetTranslation(ctx, translationID)
	if err != nil {
		log.Err(err).Int64("translation_id", translationID).Msg("translation search failed")
		return models.Translation{}, fmt.Errorf("translation search failed: %w", err)
	}

	if !translation.IsOwnedBy(userID) {
		log.Warn().
			Int64("user_id", userID).
			Int64("translation_id", translationID).
			Msg("attempt to change a translation of another user")
		return models.Translation{}, ErrForbidden
	}

	updated, err := t.translationRepository.UpdateTranslationFavorite(ctx, translationID, *request.Favorite)
	if err != nil {
		log.Err(err).Int64("translation_id", translationID).Msg("favorite update failed")
		return models.Translation{}, fmt.Errorf("favorite update failed: %w", err)
	}

	return updated, nil
}
