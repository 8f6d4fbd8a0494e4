package messaging

import (
	"context"
	"strings"

	domain "github.com/primefit-labs/training-scheduler/internal/domain/messaging"
	"github.com/primefit-labs/training-scheduler/internal/httperr"
	"github.com/primefit-labs/training-scheduler/internal/models"
	"github.com/primefit-labs/training-scheduler/internal/realtime"
)

// ======================================================
// INPUT
// ======================================================

type SendMessageInput struct {
	SenderID uint

	// Either an existing conversation or a recipient to start one with.
	ConversationID *uint
	RecipientID    *uint

	Content string
}

// ======================================================
// USE CASE
// ======================================================

type SendMessage struct {
	repo domain.Repository
	hub  *realtime.Hub
}

func NewSendMessage(repo domain.Repository, hub *realtime.Hub) *SendMessage {
	return &SendMessage{repo: repo, hub: hub}
}

// Execute appends to an existing conversation, or creates one (plus its
// first message) when only a recipient is named. The insert is announced
// on the realtime channel after it is persisted.
func (uc *SendMessage) Execute(
	ctx context.Context,
	in SendMessageInput,
) (*models.Message, error) {

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, httperr.ErrBusiness("empty_message")
	}

	var conv *models.Conversation

	switch {
	case in.ConversationID != nil:
		var err error
		conv, err = uc.repo.GetConversationForUser(ctx, *in.ConversationID, in.SenderID)
		if err != nil {
			return nil, httperr.ErrBusiness("conversation_not_found")
		}

	case in.RecipientID != nil:
		if *in.RecipientID == in.SenderID {
			return nil, httperr.ErrBusiness("cannot_message_self")
		}
		if _, err := uc.repo.GetProfile(ctx, *in.RecipientID); err != nil {
			return nil, httperr.ErrBusiness("recipient_not_found")
		}

		var err error
		conv, err = uc.repo.GetOrCreateConversation(ctx, in.SenderID, *in.RecipientID)
		if err != nil {
			return nil, err
		}

	default:
		return nil, httperr.ErrBusiness("missing_conversation_or_recipient")
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       in.SenderID,
		Content:        content,
	}

	if err := uc.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	uc.hub.PublishMessage(ctx, msg)

	return msg, nil
}
