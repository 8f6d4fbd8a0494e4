package messaging

import (
	"context"

	domain "github.com/primefit-labs/training-scheduler/internal/domain/messaging"
	"github.com/primefit-labs/training-scheduler/internal/httperr"
	"github.com/primefit-labs/training-scheduler/internal/models"
)

type OpenConversation struct {
	repo domain.Repository
}

func NewOpenConversation(repo domain.Repository) *OpenConversation {
	return &OpenConversation{repo: repo}
}

// Execute returns the ordered history for one conversation the user
// participates in, marking the other party's messages read.
func (uc *OpenConversation) Execute(
	ctx context.Context,
	conversationID uint,
	userID uint,
) ([]models.Message, error) {

	if _, err := uc.repo.GetConversationForUser(ctx, conversationID, userID); err != nil {
		return nil, httperr.ErrBusiness("conversation_not_found")
	}

	msgs, err := uc.repo.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	// Opening the thread is what clears the unread badge; a failure here
	// only delays that, so the history is returned regardless.
	_ = uc.repo.MarkMessagesRead(ctx, conversationID, userID)

	return msgs, nil
}
