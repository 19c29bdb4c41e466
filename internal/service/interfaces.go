// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/amour-lingua/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService owns accounts and server-side sessions.
type AuthService interface {
	// Register creates a new account. The caller is expected to open a
	// session for the returned user right away.
	Register(ctx context.Context, request models.RegisterRequest) (models.User, error)

	// VerifyCredentials returns the user whose stored hash matches password,
	// or ErrInvalidCredentials.
	VerifyCredentials(ctx context.Context, username, password string) (models.User, error)

	// CreateSession stores a new session for user and returns the signed
	// token referencing it.
	CreateSession(ctx context.Context, user models.User) (models.Token, error)

	// ResolveSession validates tokenString and checks that the session it
	// names still exists. Any failure wraps ErrUnauthorized, except storage
	// outages.
	ResolveSession(ctx context.Context, tokenString string) (models.Token, error)

	// Logout deletes the session named by tokenString. Missing or invalid
	// tokens are not an error.
	Logout(ctx context.Context, tokenString string) error

	CurrentUser(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, request models.UpdateProfileRequest) (models.User, error)

	// ForgotPassword never reveals whether the address is registered.
	ForgotPassword(ctx context.Context, request models.ForgotPasswordRequest) error

	// DemoUser returns the seeded fixture user when demo mode is on,
	// ErrUnauthorized otherwise.
	DemoUser(ctx context.Context) (models.User, error)

	// PruneSessions drops expired sessions and returns how many were removed.
	PruneSessions(ctx context.Context) (int, error)
}

// TranslationService translates phrases and manages the caller's history.
type TranslationService interface {
	Translate(ctx context.Context, userID int64, request models.TranslateRequest) (models.Translation, error)
	GetTranslations(ctx context.Context, userID int64) ([]models.Translation, error)
	GetFavoriteTranslations(ctx context.Context, userID int64) ([]models.Translation, error)

	// SetFavorite fails with store.ErrTranslationNotFound for unknown ids and
	// ErrForbidden when the translation belongs to someone else.
	SetFavorite(ctx context.Context, userID, translationID int64, request models.FavoriteRequest) (models.Translation, error)
}

// MessagingService manages two-party conversations. Every operation on a
// single conversation requires userID to be one of its participants.
type MessagingService interface {
	GetConversations(ctx context.Context, userID int64) ([]models.Conversation, error)

	// CreateConversation returns the existing conversation between the two
	// users when there is one; created reports whether a new one was made.
	CreateConversation(ctx context.Context, userID int64, request models.CreateConversationRequest) (conversation models.Conversation, created bool, err error)

	// GetMessages lists messages oldest first. A non-empty translateTo
	// attaches a translation to every message not sent by userID.
	GetMessages(ctx context.Context, userID, conversationID int64, translateTo string) ([]models.Message, error)

	SendMessage(ctx context.Context, userID, conversationID int64, request models.SendMessageRequest) (models.Message, error)

	// MarkAsRead flips messages sent by the other participant and returns
	// how many changed.
	MarkAsRead(ctx context.Context, userID, conversationID int64) (int64, error)
}

// AppInfoService exposes build metadata of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.VersionResponse
}
