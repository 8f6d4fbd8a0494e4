package handlers

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/primefit-labs/training-scheduler/internal/domain/messaging"
	"github.com/primefit-labs/training-scheduler/internal/httperr"
	"github.com/primefit-labs/training-scheduler/internal/httpresp"
	"github.com/primefit-labs/training-scheduler/internal/middleware"
	"github.com/primefit-labs/training-scheduler/internal/realtime"
	ucMessaging "github.com/primefit-labs/training-scheduler/internal/usecase/messaging"
)

// ======================================================
// HANDLER
// ======================================================

type MessageHandler struct {
	repo   domain.Repository
	sendUC *ucMessaging.SendMessage
	openUC *ucMessaging.OpenConversation
	hub    *realtime.Hub
}

func NewMessageHandler(
	repo domain.Repository,
	sendUC *ucMessaging.SendMessage,
	openUC *ucMessaging.OpenConversation,
	hub *realtime.Hub,
) *MessageHandler {
	return &MessageHandler{
		repo:   repo,
		sendUC: sendUC,
		openUC: openUC,
		hub:    hub,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SendMessageRequest struct {
	ConversationID *uint  `json:"conversation_id"`
	RecipientID    *uint  `json:"recipient_id"`
	Content        string `json:"content" binding:"required"`
}

// ======================================================
// INBOX
// ======================================================

func (h *MessageHandler) ListConversations(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	summaries, err := h.repo.ListConversationSummaries(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_conversations", "Could not list conversations.")
		return
	}

	httpresp.List(c, summaries)
}

func (h *MessageHandler) OpenConversation(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	convID, ok := h.conversationID(c)
	if !ok {
		return
	}

	msgs, err := h.openUC.Execute(c.Request.Context(), convID, userID)
	if err != nil {
		if httperr.IsBusiness(err, "conversation_not_found") {
			httperr.NotFound(c, "conversation_not_found", "Conversation not found.")
			return
		}
		httperr.Internal(c, "failed_to_open_conversation", "Could not load conversation.")
		return
	}

	httpresp.List(c, msgs)
}

func (h *MessageHandler) Send(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid message payload.")
		return
	}

	msg, err := h.sendUC.Execute(c.Request.Context(), ucMessaging.SendMessageInput{
		SenderID:       userID,
		ConversationID: req.ConversationID,
		RecipientID:    req.RecipientID,
		Content:        req.Content,
	})
	if err != nil {
		if code := httperr.BusinessCode(err); code != "" {
			httperr.BadRequest(c, code, "Could not send message.")
			return
		}
		httperr.Internal(c, "failed_to_send_message", "Could not send message.")
		return
	}

	httpresp.Created(c, msg)
}

// ======================================================
// LIVE STREAM (SSE)
// ======================================================

// Stream pushes message-insert events for one conversation until the
// client disconnects. Events can overlap a concurrent history fetch;
// clients dedup by message id.
func (h *MessageHandler) Stream(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	convID, ok := h.conversationID(c)
	if !ok {
		return
	}

	if _, err := h.repo.GetConversationForUser(c.Request.Context(), convID, userID); err != nil {
		httperr.NotFound(c, "conversation_not_found", "Conversation not found.")
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	events := h.hub.Subscribe(c.Request.Context(), convID)

	c.Stream(func(w io.Writer) bool {
		msg, ok := <-events
		if !ok {
			return false
		}
		c.SSEvent("message", msg)
		return true
	})
}

func (h *MessageHandler) conversationID(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_conversation_id", "Conversation id must be numeric.")
		return 0, false
	}
	return uint(id64), true
}
