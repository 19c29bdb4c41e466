package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip, withLanguage)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/register", h.register)
		r.Post("/api/login", h.login)
		r.Post("/api/logout", h.logout)
		r.Post("/api/forgot-password", h.forgotPassword)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes open to the demo user when demo mode is on
	router.Group(func(r chi.Router) {
		r.Use(h.authOrDemo)

		r.Get("/api/user", h.getUser)
		r.Patch("/api/user", h.updateUser)

		r.Post("/api/translate", h.translate)
		r.Get("/api/translations", h.getTranslations)
		r.Get("/api/translations/favorites", h.getFavoriteTranslations)
		r.Patch("/api/translations/{id}/favorite", h.setFavorite)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/conversations", h.getConversations)
		r.Post("/api/conversations", h.createConversation)
		r.Get("/api/conversations/{id}/messages", h.getMessages)
		r.Post("/api/conversations/{id}/messages", h.sendMessage)
		r.Post("/api/conversations/{id}/read", h.markAsRead)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
