package store

import (
	"context"
	"sort"
	"sync"

	"github.com/MKhiriev/amour-lingua/models"
)

// memoryTranslationRepository is the map-backed [TranslationRepository].
type memoryTranslationRepository struct {
	mu           sync.RWMutex
	translations map[int64]models.Translation
	nextID       int64
}

// NewMemoryTranslationRepository returns an empty in-memory [TranslationRepository].
func NewMemoryTranslationRepository() TranslationRepository {
	return &memoryTranslationRepository{
		translations: make(map[int64]models.Translation),
		nextID:       1,
	}
}

func (r *memoryTranslationRepository) GetTranslations(_ context.Context, userID int64) ([]models.Translation, error) {
	return r.list(func(t models.Translation) bool { return t.IsOwnedBy(userID) }), nil
}

func (r *memoryTranslationRepository) GetFavoriteTranslations(_ context.Context, userID int64) ([]models.Translation, error) {
	return r.list(func(t models.Translation) bool { return t.IsOwnedBy(userID) && t.Favorite }), nil
}

func (r *memoryTranslationRepository) GetTranslation(_ context.Context, id int64) (models.Translation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	translation, ok := r.translations[id]
	if !ok {
		return models.Translation{}, ErrTranslationNotFound
	}
	return cloneTranslation(translation), nil
}

func (r *memoryTranslationRepository) CreateTranslation(_ context.Context, translation models.Translation) (models.Translation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	translation.ID = r.nextID
	r.nextID++
	r.translations[translation.ID] = cloneTranslation(translation)

	return cloneTranslation(translation), nil
}

func (r *memoryTranslationRepository) UpdateTranslationFavorite(_ context.Context, id int64, favorite bool) (models.Translation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	translation, ok := r.translations[id]
	if !ok {
		return models.Translation{}, ErrTranslationNotFound
	}

	translation.Favorite = favorite
	r.translations[id] = translation

	return cloneTranslation(translation), nil
}

// list returns the matching translations, newest first.
func (r *memoryTranslationRepository) list(match func(models.Translation) bool) []models.Translation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]models.Translation, 0, 16)
	for _, t := range r.translations {
		if match(t) {
			results = append(results, cloneTranslation(t))
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if !results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		}
		return results[i].ID > results[j].ID
	})

	return results
}

func cloneTranslation(t models.Translation) models.Translation {
	if t.UserID != nil {
		userID := *t.UserID
		t.UserID = &userID
	}
	return t
}
