package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/amour-lingua/internal/localization"
	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/internal/service"
	"github.com/MKhiriev/amour-lingua/internal/utils"
	"github.com/MKhiriev/amour-lingua/models"
)

// auth is an HTTP middleware that enforces session authentication.
//
// The session token is read from the session cookie or, failing that, from
// the "Authorization: Bearer" header. The token must carry a valid signature
// and the session it names must still exist in the session store. On success
// the user and session IDs are stored in the request context with
// [utils.WithUser] and the user's language preference is appended to the
// request languages used for localized messages.
//
// Requests are rejected with 401 when no token is present, when the token is
// invalid or expired, and when the session or its user no longer exists.
// Session store outages are reported as 503.
func (h *Handler) auth(next http.Handler) http.Handler {
	return h.authenticate(next, false)
}

// authOrDemo behaves like auth, except that a request without a usable
// session acts as the seeded demo user while demo mode is on.
func (h *Handler) authOrDemo(next http.Handler) http.Handler {
	return h.authenticate(next, true)
}

func (h *Handler) authenticate(next http.Handler, allowDemo bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		var (
			user      models.User
			sessionID string
		)

		token, err := h.resolveSession(r)
		if err == nil {
			sessionID = token.SessionID
			user, err = h.services.AuthService.CurrentUser(ctx, token.UserID)
		}

		if err != nil && allowDemo && isUnauthenticated(err) {
			log.Debug().Err(err).Msg("no usable session, trying demo user")
			user, err = h.services.AuthService.DemoUser(ctx)
			sessionID = ""
		}

		if err != nil {
			h.writeError(w, r, err)
			return
		}

		ctx = utils.WithUser(ctx, user.UserID, sessionID)
		if user.LangPreference != "" {
			ctx = localization.ToContext(ctx, append(localization.FromContext(ctx), string(user.LangPreference)))
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolveSession finds the session token of r and checks it against the
// session store.
func (h *Handler) resolveSession(r *http.Request) (models.Token, error) {
	tokenString, err := h.tokenFromRequest(r)
	if err != nil {
		return models.Token{}, errors.Join(service.ErrUnauthorized, err)
	}

	return h.services.AuthService.ResolveSession(r.Context(), tokenString)
}

// tokenFromRequest returns the session token carried by the session cookie
// or, when there is no cookie, by the "Authorization" header.
func (h *Handler) tokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrNoSessionToken
	}

	tokenString, err := utils.ParseBearerToken(header)
	if err != nil {
		return "", errors.Join(ErrInvalidAuthorizationHeader, err)
	}

	return tokenString, nil
}

func isUnauthenticated(err error) bool {
	return errors.Is(err, service.ErrUnauthorized)
}
