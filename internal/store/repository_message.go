package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/models"
)

// messageRepository is the SQL implementation of [MessageRepository].
type messageRepository struct {
	*DB
	logger *logger.Logger
}

// NewMessageRepository constructs a [MessageRepository] backed by db.
func NewMessageRepository(db *DB, logger *logger.Logger) MessageRepository {
	logger.Debug().Msg("creating message repository")
	return &messageRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *messageRepository) GetMessages(ctx context.Context, conversationID int64) ([]models.Message, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetMessagesQuery(r.builder(), conversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "messageRepository.GetMessages").
			Int64("conversation_id", conversationID).
			Msg("failed to execute query for messages")
		return nil, r.wrap(ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Message, 0, 32)

	for rows.Next() {
		message, scanErr := scanMessage(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "messageRepository.GetMessages").
				Int64("conversation_id", conversationID).
				Msg("failed to scan message row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, message)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "messageRepository.GetMessages").
			Int64("conversation_id", conversationID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// CreateMessage moves the conversation's last_message_at and inserts the
// message inside one transaction. The transaction is rolled back (via
// defer) when the conversation does not exist or either statement fails.
func (r *messageRepository) CreateMessage(ctx context.Context, message models.Message) (models.Message, error) {
	log := logger.FromContext(ctx)

	touchQuery, touchArgs, err := buildTouchConversationQuery(r.builder(), message.ConversationID, message.SentAt)
	if err != nil {
		return models.Message{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	insertQuery, insertArgs, err := buildCreateMessageQuery(r.builder(), message)
	if err != nil {
		return models.Message{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "messageRepository.CreateMessage").
			Int64("conversation_id", message.ConversationID).
			Msg("failed to begin transaction")
		return models.Message{}, r.wrap(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, touchQuery, touchArgs...)
	if err != nil {
		log.Err(err).
			Str("func", "messageRepository.CreateMessage").
			Int64("conversation_id", message.ConversationID).
			Msg("failed to update conversation activity")
		return models.Message{}, r.wrap(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Message{}, r.wrap(ErrExecutingStatement, err)
	}
	if affected == 0 {
		log.Warn().
			Str("func", "messageRepository.CreateMessage").
			Int64("conversation_id", message.ConversationID).
			Msg("conversation not found")
		return models.Message{}, ErrConversationNotFound
	}

	created, err := scanMessage(tx.QueryRowContext(ctx, insertQuery, insertArgs...))
	if err != nil {
		log.Err(err).
			Str("func", "messageRepository.CreateMessage").
			Int64("conversation_id", message.ConversationID).
			Msg("failed to insert message")
		return models.Message{}, r.wrap(ErrExecutingStatement, err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "messageRepository.CreateMessage").
			Int64("conversation_id", message.ConversationID).
			Msg("failed to commit transaction")
		return models.Message{}, r.wrap(ErrCommitingTransaction, commitErr)
	}

	return created, nil
}

func (r *messageRepository) MarkMessagesAsRead(ctx context.Context, conversationID, userID int64) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildMarkMessagesAsReadQuery(r.builder(), conversationID, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "messageRepository.MarkMessagesAsRead").
			Int64("conversation_id", conversationID).
			Int64("user_id", userID).
			Msg("failed to mark messages as read")
		return 0, r.wrap(ErrExecutingStatement, err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return 0, r.wrap(ErrExecutingStatement, err)
	}

	log.Debug().
		Str("func", "messageRepository.MarkMessagesAsRead").
		Int64("conversation_id", conversationID).
		Int64("updated", updated).
		Msg("messages marked as read")

	return updated, nil
}

func scanMessage(row rowScanner) (models.Message, error) {
	var m models.Message
	err := row.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Text, &m.SentAt, &m.Read)
	return m, err
}
