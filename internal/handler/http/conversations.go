package http

import (
	"net/http"

	"github.com/MKhiriev/amour-lingua/internal/logger"
	"github.com/MKhiriev/amour-lingua/internal/utils"
	"github.com/MKhiriev/amour-lingua/models"
)

func (h *Handler) getConversations(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	conversations, err := h.services.MessagingService.GetConversations(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, nonNil(conversations), http.StatusOK)
}

func (h *Handler) createConversation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	userID, _ := utils.GetUserIDFromContext(ctx)

	var request models.CreateConversationRequest
	if err := decodeJSON(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}

	conversation, created, err := h.services.MessagingService.CreateConversation(ctx, userID, request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if !created {
		utils.WriteJSON(w, conversation, http.StatusOK)
		return
	}

	log.Info().Int64("conversation_id", conversation.ID).Msg("conversation created")
	utils.WriteJSON(w, conversation, http.StatusCreated)
}

func (h *Handler) getMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	conversationID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	messages, err := h.services.MessagingService.GetMessages(ctx, userID, conversationID, r.URL.Query().Get("translate"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, nonNil(messages), http.StatusOK)
}

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	userID, _ := utils.GetUserIDFromContext(ctx)

	conversationID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var request models.SendMessageRequest
	if err = decodeJSON(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}

	message, err := h.services.MessagingService.SendMessage(ctx, userID, conversationID, request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Debug().Int64("conversation_id", conversationID).Int64("message_id", message.ID).Msg("message sent")
	utils.WriteJSON(w, message, http.StatusCreated)
}

func (h *Handler) markAsRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := utils.GetUserIDFromContext(ctx)

	conversationID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	updated, err := h.services.MessagingService.MarkAsRead(ctx, userID, conversationID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MarkReadResponse{Success: true, Updated: updated}, http.StatusOK)
}
