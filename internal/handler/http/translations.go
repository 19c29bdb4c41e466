package http

import (
	"net/http"

	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/internal/utils"
	"github.com/MKhiriev/amour-lingua/models"
)

func (h *Handler) translate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	userID, _ := utils.GetUserIDFromContext(ctx)

	var request models.TranslateRequest
	if err := decodeJSON(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}

	translation, err := h.services.TranslationService.Translate(ctx, userID, request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Debug().
		Int64("translation_id", translation.ID).
		Str("from", string(translation.FromLang)).
		Str("to", string(translation.ToLang)).
		Msg("text translated")
	utils.WriteJSON(w, translation, http.StatusOK)
}

func (h *Handler) getTranslations(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	translations, err := h.services.TranslationService.GetTranslations(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, nonNil(translations), http.StatusOK)
}

func (h *Handler) getFavoriteTranslations(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	translations, err := h.services.TranslationService.GetFavoriteTranslations(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, nonNil(translations), http.StatusOK)
}

func (h *Handler) setFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	translationID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var request models.FavoriteRequest
	if err = decodeJSON(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}

	translation, err := h.services.TranslationService.SetFavorite(ctx, userID, translationID, request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, translation, http.StatusOK)
}

// nonNil makes empty lists encode as [] instead of null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
