// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/amour-lingua/models"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// GetUser returns the user with id or [ErrUserNotFound].
	GetUser(ctx context.Context, id int64) (models.User, error)

	// GetUserByUsername matches username case-insensitively.
	GetUserByUsername(ctx context.Context, username string) (models.User, error)

	// GetUserByEmail matches email case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (models.User, error)

	// CreateUser stores user and returns it with its assigned id.
	// Duplicates surface as [ErrUsernameAlreadyExists] or [ErrEmailAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// UpdateUser applies the non-nil fields of update and returns the
	// resulting user.
	UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (models.User, error)
}

// TranslationRepository persists translation history and favorites.
type TranslationRepository interface {
	// GetTranslations lists userID's translations, newest first.
	GetTranslations(ctx context.Context, userID int64) ([]models.Translation, error)

	// GetTranslation returns the translation with id or [ErrTranslationNotFound].
	GetTranslation(ctx context.Context, id int64) (models.Translation, error)

	// GetFavoriteTranslations lists userID's favorite translations, newest first.
	GetFavoriteTranslations(ctx context.Context, userID int64) ([]models.Translation, error)

	// CreateTranslation stores translation and returns it with its assigned id.
	CreateTranslation(ctx context.Context, translation models.Translation) (models.Translation, error)

	// UpdateTranslationFavorite sets the favorite flag and returns the
	// updated record.
	UpdateTranslationFavorite(ctx context.Context, id int64, favorite bool) (models.Translation, error)
}

// ConversationRepository persists conversations.
type ConversationRepository interface {
	// GetConversations lists the conversations userID takes part in, in
	// either role, most recently active first.
	GetConversations(ctx context.Context, userID int64) ([]models.Conversation, error)

	// GetConversation returns the conversation with id or [ErrConversationNotFound].
	GetConversation(ctx context.Context, id int64) (models.Conversation, error)

	// FindConversationBetween returns the conversation between a and b in
	// either order, or [ErrConversationNotFound].
	FindConversationBetween(ctx context.Context, a, b int64) (models.Conversation, error)

	// CreateConversation stores conversation without checking for an
	// existing one between the same pair.
	CreateConversation(ctx context.Context, conversation models.Conversation) (models.Conversation, error)
}

// MessageRepository persists chat messages.
type MessageRepository interface {
	// GetMessages lists the messages of a conversation ordered by sent time,
	// ties broken by id.
	GetMessages(ctx context.Context, conversationID int64) ([]models.Message, error)

	// CreateMessage appends message and moves the conversation's
	// LastMessageAt to message.SentAt.
	CreateMessage(ctx context.Context, message models.Message) (models.Message, error)

	// MarkMessagesAsRead flags every unread message of the conversation not
	// sent by userID as read and returns how many were changed.
	MarkMessagesAsRead(ctx context.Context, conversationID, userID int64) (int64, error)
}

// SessionStore maps opaque session ids to users.
type SessionStore interface {
	// CreateSession stores session until its ExpiresAt. A session that is
	// already expired is rejected with [ErrSessionExpired].
	CreateSession(ctx context.Context, session models.Session) error

	// GetSession returns a live session or [ErrSessionNotFound].
	GetSession(ctx context.Context, id string) (models.Session, error)

	// DeleteSession removes a session. Unknown ids are not an error.
	DeleteSession(ctx context.Context, id string) error

	// PruneSessions drops every session expired at now and reports how many
	// were removed. Stores with native expiry return zero.
	PruneSessions(ctx context.Context, now time.Time) (int, error)
}

// Pinger reports whether a backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
