package http

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/amour-lingua/internal/service"
	"github.com/MKhiriev/amour-lingua/internal/store"
	"github.com/MKhiriev/amour-lingua/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var conversationStart = time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)

func TestGetConversations(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectSession(alice)

	m.messaging.EXPECT().GetConversations(gomock.Any(), alice.UserID).Return([]models.Conversation{
		{ID: 1, UserID: alice.UserID, ParticipantID: marie.UserID, LastMessageAt: conversationStart},
	}, nil)

	rec := serve(h, newAuthorizedRequest(http.MethodGet, "/api/conversations", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	conversations := decodeBody[[]models.Conversation](t, rec)
	require.Len(t, conversations, 1)
	assert.Equal(t, marie.UserID, conversations[0].ParticipantID)
}

func TestGetConversations_RequiresSession(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(h, newRequest(http.MethodGet, "/api/conversations", ""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateConversation(t *testing.T) {
	conversation := models.Conversation{ID: 7, UserID: alice.UserID, ParticipantID: marie.UserID, LastMessageAt: conversationStart}

	tests := []struct {
		name        string
		body        string
		created     bool
		serviceErr  error
		wantStatus  int
		wantMessage string
	}{
		{name: "new", body: `{"participantId":2}`, created: true, wantStatus: http.StatusCreated},
		{name: "existing", body: `{"participantId":2}`, created: false, wantStatus: http.StatusOK},
		{
			name:        "self",
			body:        `{"participantId":1}`,
			serviceErr:  service.ErrSelfConversation,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "You cannot start a conversation with yourself",
		},
		{
			name:        "participant missing",
			body:        `{"participantId":99}`,
			serviceErr:  fmt.Errorf("%w: id 99", service.ErrParticipantNotFound),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Participant not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.expectSession(alice)

			if tt.serviceErr != nil {
				m.messaging.EXPECT().CreateConversation(gomock.Any(), alice.UserID, gomock.Any()).Return(models.Conversation{}, false, tt.serviceErr)
			} else {
				m.messaging.EXPECT().CreateConversation(gomock.Any(), alice.UserID, models.CreateConversationRequest{ParticipantID: 2}).
					Return(conversation, tt.created, nil)
			}

			rec := serve(h, newAuthorizedRequest(http.MethodPost, "/api/conversations", tt.body))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, errorMessage(t, rec))
				return
			}
			assert.Equal(t, conversation.ID, decodeBody[models.Conversation](t, rec).ID)
		})
	}
}

func TestGetMessages_PassesTranslateTarget(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectSession(alice)

	m.messaging.EXPECT().GetMessages(gomock.Any(), alice.UserID, int64(7), "en").Return([]models.Message{
		{ID: 1, ConversationID: 7, SenderID: marie.UserID, Text: "Merci", TranslatedText: "thank you", TranslateFrom: models.French, TranslateTo: models.English},
	}, nil)

	rec := serve(h, newAuthorizedRequest(http.MethodGet, "/api/conversations/7/messages?translate=en", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	messages := decodeBody[[]models.Message](t, rec)
	require.Len(t, messages, 1)
	assert.Equal(t, "thank you", messages[0].TranslatedText)
}

func TestConversationAccess(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "not a participant", serviceErr: service.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "missing conversation", serviceErr: fmt.Errorf("get conversation: %w", store.ErrConversationNotFound), wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name+" list", func(t *testing.T) {
			h, m := newTestHandler(t)
			m.expectSession(alice)
			m.messaging.EXPECT().GetMessages(gomock.Any(), alice.UserID, int64(7), "").Return(nil, tt.serviceErr)

			rec := serve(h, newAuthorizedRequest(http.MethodGet, "/api/conversations/7/messages", ""))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})

		t.Run(tt.name+" send", func(t *testing.T) {
			h, m := newTestHandler(t)
			m.expectSession(alice)
			m.messaging.EXPECT().SendMessage(gomock.Any(), alice.UserID, int64(7), gomock.Any()).Return(models.Message{}, tt.serviceErr)

			rec := serve(h, newAuthorizedRequest(http.MethodPost, "/api/conversations/7/messages", `{"text":"Salut"}`))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})

		t.Run(tt.name+" read", func(t *testing.T) {
			h, m := newTestHandler(t)
			m.expectSession(alice)
			m.messaging.EXPECT().MarkAsRead(gomock.Any(), alice.UserID, int64(7)).Return(int64(0), tt.serviceErr)

			rec := serve(h, newAuthorizedRequest(http.MethodPost, "/api/conversations/7/read", ""))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestConversationRoutes_InvalidID(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectSession(alice)

	for _, req := range []*http.Request{
		newAuthorizedRequest(http.MethodGet, "/api/conversations/x/messages", ""),
		newAuthorizedRequest(http.MethodPost, "/api/conversations/-1/messages", `{"text":"Salut"}`),
		newAuthorizedRequest(http.MethodPost, "/api/conversations/1.5/read", ""),
	} {
		rec := serve(h, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, req.URL.Path)
		assert.Equal(t, "Invalid id", errorMessage(t, rec))
	}
}

func TestSendMessage(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectSession(alice)

	m.messaging.EXPECT().SendMessage(gomock.Any(), alice.UserID, int64(7), models.SendMessageRequest{Text: "Salut"}).
		Return(models.Message{ID: 11, ConversationID: 7, SenderID: alice.UserID, Text: "Salut", SentAt: conversationStart}, nil)

	rec := serve(h, newAuthorizedRequest(http.MethodPost, "/api/conversations/7/messages", `{"text":"Salut"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	message := decodeBody[models.Message](t, rec)
	assert.Equal(t, int64(11), message.ID)
	assert.False(t, message.Read)
	assert.NotContains(t, rec.Body.String(), "translatedText")
}

func TestMarkAsRead(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectSession(alice)

	m.messaging.EXPECT().MarkAsRead(gomock.Any(), alice.UserID, int64(7)).Return(int64(2), nil)

	rec := serve(h, newAuthorizedRequest(http.MethodPost, "/api/conversations/7/read", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"updated":2}`, rec.Body.String())
}
