package store

import (
	"context"
	"sort"
	"sync"

	"github.com/MKhiriev/amour-lingua/models"
)

// memoryConversationRepository is the map-backed [ConversationRepository].
type memoryConversationRepository struct {
	mu            sync.RWMutex
	conversations map[int64]models.Conversation
	nextID        int64
}

// memoryMessageRepository is the map-backed [MessageRepository]. It shares
// the conversation repository to move LastMessageAt on every new message.
// Locks are always taken conversations first, messages second.
type memoryMessageRepository struct {
	mu            sync.RWMutex
	messages      map[int64]models.Message
	nextID        int64
	conversations *memoryConversationRepository
}

// NewMemoryConversationRepositories returns an empty in-memory
// [ConversationRepository] and the [MessageRepository] bound to it.
func NewMemoryConversationRepositories() (ConversationRepository, MessageRepository) {
	conversations := &memoryConversationRepository{
		conversations: make(map[int64]models.Conversation),
		nextID:        1,
	}
	messages := &memoryMessageRepository{
		messages:      make(map[int64]models.Message),
		nextID:        1,
		conversations: conversations,
	}
	return conversations, messages
}

func (r *memoryConversationRepository) GetConversations(_ context.Context, userID int64) ([]models.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]models.Conversation, 0, 8)
	for _, c := range r.conversations {
		if c.IsParticipant(userID) {
			results = append(results, c)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if !results[i].LastMessageAt.Equal(results[j].LastMessageAt) {
			return results[i].LastMessageAt.After(results[j].LastMessageAt)
		}
		return results[i].ID > results[j].ID
	})

	return results, nil
}

func (r *memoryConversationRepository) GetConversation(_ context.Context, id int64) (models.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conversation, ok := r.conversations[id]
	if !ok {
		return models.Conversation{}, ErrConversationNotFound
	}
	return conversation, nil
}

// FindConversationBetween returns the oldest conversation between a and b.
func (r *memoryConversationRepository) FindConversationBetween(_ context.Context, a, b int64) (models.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		found models.Conversation
		ok    bool
	)
	for _, c := range r.conversations {
		if c.Involves(a, b) && (!ok || c.ID < found.ID) {
			found, ok = c, true
		}
	}

	if !ok {
		return models.Conversation{}, ErrConversationNotFound
	}
	return found, nil
}

func (r *memoryConversationRepository) CreateConversation(_ context.Context, conversation models.Conversation) (models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conversation.ID = r.nextID
	r.nextID++
	r.conversations[conversation.ID] = conversation

	return conversation, nil
}

func (r *memoryMessageRepository) GetMessages(_ context.Context, conversationID int64) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]models.Message, 0, 32)
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			results = append(results, m)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if !results[i].SentAt.Equal(results[j].SentAt) {
			return results[i].SentAt.Before(results[j].SentAt)
		}
		return results[i].ID < results[j].ID
	})

	return results, nil
}

func (r *memoryMessageRepository) CreateMessage(_ context.Context, message models.Message) (models.Message, error) {
	r.conversations.mu.Lock()
	defer r.conversations.mu.Unlock()

	conversation, ok := r.conversations.conversations[message.ConversationID]
	if !ok {
		return models.Message{}, ErrConversationNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	message.ID = r.nextID
	r.nextID++
	r.messages[message.ID] = message

	conversation.LastMessageAt = message.SentAt
	r.conversations.conversations[conversation.ID] = conversation

	return message, nil
}

func (r *memoryMessageRepository) MarkMessagesAsRead(_ context.Context, conversationID, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var updated int64
	for id, m := range r.messages {
		if m.ConversationID != conversationID || m.SenderID == userID || m.Read {
			continue
		}
		m.Read = true
		r.messages[id] = m
		updated++
	}

	return updated, nil
}
