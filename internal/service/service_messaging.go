package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/internal/store"
	"github.com/MKhiriev/amour-lingua/internal/translator"
	"github.com/MKhiriev/amour-lingua/internal/utils"
	"github.com/MKhiriev/amour-lingua/internal/validators"
	"github.com/MKhiriev/amour-lingua/models"
)

type messagingService struct {
	userRepository         store.UserRepository
	conversationRepository store.ConversationRepository
	messageRepository      store.MessageRepository

	clock utils.Clock

	// pairLocks serializes find-or-create per unordered user pair.
	pairLocks pairLocks

	logger *logger.Logger
}

const pairLockStripes = 64

// pairLocks is a fixed set of mutexes striped by user pair. Both orders of
// a pair map to the same stripe.
type pairLocks [pairLockStripes]sync.Mutex

func (p *pairLocks) lock(a, b int64) func() {
	if a > b {
		a, b = b, a
	}
	mu := &p[uint64(a*31+b)%pairLockStripes]
	mu.Lock()
	return mu.Unlock
}

func NewMessagingService(
	userRepository store.UserRepository,
	conversationRepository store.ConversationRepository,
	messageRepository store.MessageRepository,
	clock utils.Clock,
	logger *logger.Logger,
) MessagingService {
	return &messagingService{
		userRepository:         userRepository,
		conversationRepository: conversationRepository,
		messageRepository:      messageRepository,
		clock:                  clock,
		logger:                 logger,
	}
}

func (m *messagingService) GetConversations(ctx context.Context, userID int64) ([]models.Conversation, error) {
	return m.conversationRepository.GetConversations(ctx, userID)
}

// CreateConversation starts a conversation with request.ParticipantID.
// At most one conversation exists per pair of users, whichever of them
// started it; asking again returns that conversation with created == false.
func (m *messagingService) CreateConversation(ctx context.Context, userID int64, request models.CreateConversationRequest) (models.Conversation, bool, error) {
	log := logger.FromContext(ctx)
	participantID := request.ParticipantID

	if participantID == userID {
		return models.Conversation{}, false, ErrSelfConversation
	}

	if _, err := m.userRepository.GetUser(ctx, participantID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.Conversation{}, false, fmt.Errorf("%w: id %d", ErrParticipantNotFound, participantID)
		}
		log.Err(err).Int64("participant_id", participantID).Msg("participant search failed")
		return models.Conversation{}, false, fmt.Errorf("participant search failed: %w", err)
	}

	unlock := m.pairLocks.lock(userID, participantID)
	defer unlock()

	existing, err := m.conversationRepository.FindConversationBetween(ctx, userID, participantID)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, store.ErrConversationNotFound):
		log.Err(err).Int64("participant_id", participantID).Msg("conversation search failed")
		return models.Conversation{}, false, fmt.Errorf("conversation search failed: %w", err)
	}

	conversation, err := m.conversationRepository.CreateConversation(ctx, models.Conversation{
		UserID:        userID,
		ParticipantID: participantID,
		LastMessageAt: m.clock.Now(),
	})
	if err != nil {
		log.Err(err).Int64("participant_id", participantID).Msg("conversation creation failed")
		return models.Conversation{}, false, fmt.Errorf("conversation creation failed: %w", err)
	}

	log.Info().Int64("conversation_id", conversation.ID).Msg("conversation created")
	return conversation, true, nil
}

// GetMessages checks participation before the translate language, so a
// non-participant gets ErrForbidden whatever the query.
func (m *messagingService) GetMessages(ctx context.Context, userID, conversationID int64, translateTo string) ([]models.Message, error) {
	if _, err := m.participantConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	var target models.Language
	if translateTo != "" {
		lang, ok := models.ParseLanguage(translateTo)
		if !ok {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidLanguage)
		}
		target = lang
	}

	messages, err := m.messageRepository.GetMessages(ctx, conversationID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("conversation_id", conversationID).Msg("message search failed")
		return nil, fmt.Errorf("message search failed: %w", err)
	}

	if target != "" {
		attachTranslations(messages, userID, target)
	}

	return messages, nil
}

// attachTranslations fills the on-the-fly translation fields of every message
// the reader did not send. Messages are assumed to be written in the language
// opposite to target.
func attachTranslations(messages []models.Message, readerID int64, target models.Language) {
	source := target.Opposite()
	for i := range messages {
		if messages[i].SenderID == readerID {
			continue
		}
		messages[i].TranslatedText = translator.Translate(messages[i].Text, source, target)
		messages[i].TranslateFrom = source
		messages[i].TranslateTo = target
	}
}

func (m *messagingService) SendMessage(ctx context.Context, userID, conversationID int64, request models.SendMessageRequest) (models.Message, error) {
	if _, err := m.participantConversation(ctx, userID, conversationID); err != nil {
		return models.Message{}, err
	}

	message, err := m.messageRepository.CreateMessage(ctx, models.Message{
		ConversationID: conversationID,
		SenderID:       userID,
		Text:           request.Text,
		SentAt:         m.clock.Now(),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("conversation_id", conversationID).Msg("sending message failed")
		return models.Message{}, fmt.Errorf("sending message failed: %w", err)
	}

	return message, nil
}

func (m *messagingService) MarkAsRead(ctx context.Context, userID, conversationID int64) (int64, error) {
	if _, err := m.participantConversation(ctx, userID, conversationID); err != nil {
		return 0, err
	}

	updated, err := m.messageRepository.MarkMessagesAsRead(ctx, conversationID, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("conversation_id", conversationID).Msg("marking messages as read failed")
		return 0, fmt.Errorf("marking messages as read failed: %w", err)
	}

	return updated, nil
}

// participantConversation loads the conversation and fails with ErrForbidden
// unless userID takes part in it.
func (m *messagingService) participantConversation(ctx context.Context, userID, conversationID int64) (models.Conversation, error) {
	log := logger.FromContext(ctx)

	conversation, err := m.conversationRepository.GetConversation(ctx, conversationID)
	if err != nil {
		log.Err(err).Int64("conversation_id", conversationID).Msg("conversation search failed")
		return models.Conversation{}, fmt.Errorf("conversation search failed: %w", err)
	}

	if !conversation.IsParticipant(userID) {
		log.Warn().
			Int64("user_id", userID).
			Int64("conversation_id", conversationID).
			Msg("access to a conversation of other users")
		return models.Conversation{}, ErrForbidden
	}

	return conversation, nil
}
