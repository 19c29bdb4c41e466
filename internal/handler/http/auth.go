package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/amour-lingua/internal/localization"
	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/internal/utils"
	"github.com/MKhiriev/amour-lingua/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := decodeJSON(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.Register(ctx, request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.startSession(w, r, user); err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Int64("user_id", user.UserID).Msg("user registered")
	utils.WriteJSON(w, user, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := decodeJSON(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Debug().Str("username", request.Username).Msg("login attempt")

	user, err := h.services.AuthService.VerifyCredentials(ctx, request.Username, request.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.startSession(w, r, user); err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Int64("user_id", user.UserID).Msg("user logged in")
	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokenString, _ := h.tokenFromRequest(r)
	if err := h.services.AuthService.Logout(ctx, tokenString); err != nil {
		h.writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteMessage(w, h.localize(r, localization.MsgLoggedOut), http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	user, err := h.services.AuthService.CurrentUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	userID, _ := utils.GetUserIDFromContext(ctx)

	var request models.UpdateProfileRequest
	if err := decodeJSON(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.UpdateProfile(ctx, userID, request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Int64("user_id", user.UserID).Msg("profile updated")
	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var request models.ForgotPasswordRequest
	if err := decodeJSON(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.ForgotPassword(r.Context(), request); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteMessage(w, h.localize(r, localization.MsgPasswordResetSent), http.StatusOK)
}

// startSession opens a session for user and hands its token to the client
// both as an HttpOnly cookie and in the "Authorization" response header.
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, user models.User) error {
	token, err := h.services.AuthService.CreateSession(r.Context(), user)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token.SignedString,
		Path:     "/",
		Expires:  token.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))

	return nil
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
	}
	return nil
}

// pathID parses the {name} URL parameter as a positive int64.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidPathID, raw, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPathID, raw)
	}

	return id, nil
}
