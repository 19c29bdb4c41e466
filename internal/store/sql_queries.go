// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/amour-lingua/models"
)

// Table names come from the models so the queries and the model types
// agree on one name per entity.
var (
	usersTable         = models.User{}.TableName()
	translationsTable  = models.Translation{}.TableName()
	conversationsTable = models.Conversation{}.TableName()
	messagesTable      = models.Message{}.TableName()
)

var (
	userColumns         = []string{"id", "username", "password", "email", "name", "lang_preference"}
	translationColumns  = []string{"id", "user_id", "source_text", "translated_text", "from_lang", "to_lang", "favorite", "created_at"}
	conversationColumns = []string{"id", "user_id", "participant_id", "last_message_at"}
	messageColumns      = []string{"id", "conversation_id", "sender_id", "text", "sent_at", "read"}
)

// returning renders a RETURNING clause for columns. Both PostgreSQL and
// SQLite (3.35+) support it.
func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// users

func buildGetUserQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildGetUserByUsernameQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(sq.Expr("LOWER(username) = LOWER(?)", username)).
		ToSql()
}

func buildGetUserByEmailQuery(b sq.StatementBuilderType, email string) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(sq.Expr("LOWER(email) = LOWER(?)", email)).
		ToSql()
}

func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns("username", "password", "email", "name", "lang_preference").
		Values(user.Username, user.Password, user.Email, user.Name, user.LangPreference).
		Suffix(returning(userColumns)).
		ToSql()
}

// buildUpdateUserQuery sets only the non-nil fields of update.
func buildUpdateUserQuery(b sq.StatementBuilderType, id int64, update models.UserUpdate) (string, []any, error) {
	setMap := make(map[string]any, 4)

	if update.Name != nil {
		setMap["name"] = *update.Name
	}
	if update.Email != nil {
		setMap["email"] = *update.Email
	}
	if update.LangPreference != nil {
		setMap["lang_preference"] = *update.LangPreference
	}
	if update.Password != nil {
		setMap["password"] = *update.Password
	}

	return b.Update(usersTable).
		SetMap(setMap).
		Where(sq.Eq{"id": id}).
		Suffix(returning(userColumns)).
		ToSql()
}

// translations

func buildGetTranslationsQuery(b sq.StatementBuilderType, userID int64, favoritesOnly bool) (string, []any, error) {
	where := sq.Eq{"user_id": userID}
	if favoritesOnly {
		where["favorite"] = true
	}

	return b.Select(translationColumns...).
		From(translationsTable).
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
}

func buildGetTranslationQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Select(translationColumns...).
		From(translationsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildCreateTranslationQuery(b sq.StatementBuilderType, t models.Translation) (string, []any, error) {
	return b.Insert(translationsTable).
		Columns("user_id", "source_text", "translated_text", "from_lang", "to_lang", "favorite", "created_at").
		Values(t.UserID, t.SourceText, t.TranslatedText, t.FromLang, t.ToLang, t.Favorite, t.CreatedAt).
		Suffix(returning(translationColumns)).
		ToSql()
}

func buildUpdateTranslationFavoriteQuery(b sq.StatementBuilderType, id int64, favorite bool) (string, []any, error) {
	return b.Update(translationsTable).
		Set("favorite", favorite).
		Where(sq.Eq{"id": id}).
		Suffix(returning(translationColumns)).
		ToSql()
}

// conversations

func buildGetConversationsQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select(conversationColumns...).
		From(conversationsTable).
		Where(sq.Or{sq.Eq{"user_id": userID}, sq.Eq{"participant_id": userID}}).
		OrderBy("last_message_at DESC", "id DESC").
		ToSql()
}

func buildGetConversationQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Select(conversationColumns...).
		From(conversationsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// buildFindConversationBetweenQuery matches the pair in either order and
// picks the oldest conversation when several exist.
func buildFindConversationBetweenQuery(b sq.StatementBuilderType, a, c int64) (string, []any, error) {
	return b.Select(conversationColumns...).
		From(conversationsTable).
		Where(sq.Or{
			sq.And{sq.Eq{"user_id": a}, sq.Eq{"participant_id": c}},
			sq.And{sq.Eq{"user_id": c}, sq.Eq{"participant_id": a}},
		}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
}

func buildCreateConversationQuery(b sq.StatementBuilderType, c models.Conversation) (string, []any, error) {
	return b.Insert(conversationsTable).
		Columns("user_id", "participant_id", "last_message_at").
		Values(c.UserID, c.ParticipantID, c.LastMessageAt).
		Suffix(returning(conversationColumns)).
		ToSql()
}

func buildTouchConversationQuery(b sq.StatementBuilderType, id int64, lastMessageAt time.Time) (string, []any, error) {
	return b.Update(conversationsTable).
		Set("last_message_at", lastMessageAt).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// messages

func buildGetMessagesQuery(b sq.StatementBuilderType, conversationID int64) (string, []any, error) {
	return b.Select(messageColumns...).
		From(messagesTable).
		Where(sq.Eq{"conversation_id": conversationID}).
		OrderBy("sent_at ASC", "id ASC").
		ToSql()
}

func buildCreateMessageQuery(b sq.StatementBuilderType, m models.Message) (string, []any, error) {
	return b.Insert(messagesTable).
		Columns("conversation_id", "sender_id", "text", "sent_at", "read").
		Values(m.ConversationID, m.SenderID, m.Text, m.SentAt, m.Read).
		Suffix(returning(messageColumns)).
		ToSql()
}

func buildMarkMessagesAsReadQuery(b sq.StatementBuilderType, conversationID, userID int64) (string, []any, error) {
	return b.Update(messagesTable).
		Set("read", true).
		Where(sq.Eq{"conversation_id": conversationID, "read": false}).
		Where(sq.NotEq{"sender_id": userID}).
		ToSql()
}
