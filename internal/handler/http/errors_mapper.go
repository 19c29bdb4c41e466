package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/amour-lingua/internal/localization"
	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/internal/service"
	"github.com/MKhiriev/amour-lingua/internal/store"
	"github.com/MKhiriev/amour-lingua/internal/utils"
	"github.com/MKhiriev/amour-lingua/internal/validators"
	"github.com/MKhiriev/amour-lingua/models"
)

type errorMapping struct {
	target    error
	status    int
	messageID string
}

// errorStatusMap is checked in order; the first match wins. Field errors come
// first so that the failing field decides the message.
var errorStatusMap = []errorMapping{
	{validators.ErrUsernameRequired, http.StatusBadRequest, localization.MsgUsernameRequired},
	{validators.ErrInvalidUsername, http.StatusBadRequest, localization.MsgInvalidUsername},
	{validators.ErrPasswordRequired, http.StatusBadRequest, localization.MsgPasswordRequired},
	{validators.ErrPasswordTooShort, http.StatusBadRequest, localization.MsgPasswordTooShort},
	{validators.ErrPasswordTooLong, http.StatusBadRequest, localization.MsgPasswordTooLong},
	{validators.ErrInvalidEmail, http.StatusBadRequest, localization.MsgInvalidEmail},
	{validators.ErrNameTooLong, http.StatusBadRequest, localization.MsgNameTooLong},
	{validators.ErrInvalidLanguage, http.StatusBadRequest, localization.MsgInvalidLanguage},
	{validators.ErrInvalidFromLang, http.StatusBadRequest, localization.MsgInvalidFromLang},
	{validators.ErrInvalidToLang, http.StatusBadRequest, localization.MsgInvalidToLang},
	{validators.ErrTextRequired, http.StatusBadRequest, localization.MsgTextRequired},
	{validators.ErrTranslationTooLong, http.StatusBadRequest, localization.MsgTranslationTooLong},
	{validators.ErrMessageTooLong, http.StatusBadRequest, localization.MsgMessageTooLong},
	{validators.ErrInvalidParticipantID, http.StatusBadRequest, localization.MsgInvalidParticipantID},
	{validators.ErrFavoriteRequired, http.StatusBadRequest, localization.MsgFavoriteRequired},
	{validators.ErrNoFieldsToUpdate, http.StatusBadRequest, localization.MsgNoFieldsToUpdate},
	{validators.ErrValidation, http.StatusBadRequest, localization.MsgInvalidRequest},

	{ErrInvalidRequestBody, http.StatusBadRequest, localization.MsgInvalidJSON},
	{ErrInvalidPathID, http.StatusBadRequest, localization.MsgInvalidID},

	{service.ErrInvalidCredentials, http.StatusUnauthorized, localization.MsgInvalidCredentials},
	{service.ErrUnauthorized, http.StatusUnauthorized, localization.MsgUnauthorized},
	{service.ErrForbidden, http.StatusForbidden, localization.MsgForbidden},
	{service.ErrSelfConversation, http.StatusBadRequest, localization.MsgSelfConversation},
	{service.ErrParticipantNotFound, http.StatusNotFound, localization.MsgParticipantNotFound},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, localization.MsgInvalidRequest},

	// duplicates are reported as 400 to match the public API
	{store.ErrUsernameAlreadyExists, http.StatusBadRequest, localization.MsgUsernameAlreadyExists},
	{store.ErrEmailAlreadyExists, http.StatusBadRequest, localization.MsgEmailAlreadyExists},

	{store.ErrUserNotFound, http.StatusNotFound, localization.MsgUserNotFound},
	{store.ErrTranslationNotFound, http.StatusNotFound, localization.MsgTranslationNotFound},
	{store.ErrConversationNotFound, http.StatusNotFound, localization.MsgConversationNotFound},
	{store.ErrSessionNotFound, http.StatusUnauthorized, localization.MsgUnauthorized},
	{store.ErrRetryable, http.StatusServiceUnavailable, localization.MsgServiceUnavailable},
}

// statusFromError returns the HTTP status and the localization message id
// for err. Unknown errors become 500 with a generic message.
func statusFromError(err error) (int, string) {
	for _, mapping := range errorStatusMap {
		if errors.Is(err, mapping.target) {
			return mapping.status, mapping.messageID
		}
	}
	return http.StatusInternalServerError, localization.MsgInternalError
}

// writeError logs err with the request-scoped logger and writes the
// localized {"message": ...} body.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status, messageID := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Warn().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, models.ErrorResponse{Message: h.localize(r, messageID)}, status)
}

func (h *Handler) localize(r *http.Request, messageID string) string {
	return h.localizer.TranslateContext(r.Context(), messageID)
}
