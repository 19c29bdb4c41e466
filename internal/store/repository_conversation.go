package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/models"
)

// conversationRepository is the SQL implementation of [ConversationRepository].
type conversationRepository struct {
	*DB
	logger *logger.Logger
}

// NewConversationRepository constructs a [ConversationRepository] backed by db.
func NewConversationRepository(db *DB, logger *logger.Logger) ConversationRepository {
	logger.Debug().Msg("creating conversation repository")
	return &conversationRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *conversationRepository) GetConversations(ctx context.Context, userID int64) ([]models.Conversation, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetConversationsQuery(r.builder(), userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "conversationRepository.GetConversations").
			Int64("user_id", userID).
			Msg("failed to execute query for conversations")
		return nil, r.wrap(ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Conversation, 0, 8)

	for rows.Next() {
		conversation, scanErr := scanConversation(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "conversationRepository.GetConversations").
				Int64("user_id", userID).
				Msg("failed to scan conversation row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, conversation)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "conversationRepository.GetConversations").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

func (r *conversationRepository) GetConversation(ctx context.Context, id int64) (models.Conversation, error) {
	query, args, err := buildGetConversationQuery(r.builder(), id)
	if err != nil {
		return models.Conversation{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryConversation(ctx, "conversationRepository.GetConversation", query, args)
}

func (r *conversationRepository) FindConversationBetween(ctx context.Context, a, b int64) (models.Conversation, error) {
	query, args, err := buildFindConversationBetweenQuery(r.builder(), a, b)
	if err != nil {
		return models.Conversation{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryConversation(ctx, "conversationRepository.FindConversationBetween", query, args)
}

func (r *conversationRepository) CreateConversation(ctx context.Context, conversation models.Conversation) (models.Conversation, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateConversationQuery(r.builder(), conversation)
	if err != nil {
		return models.Conversation{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanConversation(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).
			Str("func", "conversationRepository.CreateConversation").
			Int64("user_id", conversation.UserID).
			Int64("participant_id", conversation.ParticipantID).
			Msg("failed to insert conversation")
		return models.Conversation{}, r.wrap(ErrExecutingStatement, err)
	}

	return created, nil
}

func (r *conversationRepository) queryConversation(ctx context.Context, funcName, query string, args []any) (models.Conversation, error) {
	log := logger.FromContext(ctx)

	conversation, err := scanConversation(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Conversation{}, ErrConversationNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to query conversation")
		return models.Conversation{}, r.wrap(ErrExecutingQuery, err)
	}

	return conversation, nil
}

func scanConversation(row rowScanner) (models.Conversation, error) {
	var c models.Conversation
	err := row.Scan(&c.ID, &c.UserID, &c.ParticipantID, &c.LastMessageAt)
	return c, err
}
