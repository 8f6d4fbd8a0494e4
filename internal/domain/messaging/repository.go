package messaging

import (
	"context"

	"github.com/primefit-labs/training-scheduler/internal/dto"
	"github.com/primefit-labs/training-scheduler/internal/models"
)

type Repository interface {
	GetProfile(
		ctx context.Context,
		id uint,
	) (*models.Profile, error)

	GetOrCreateConversation(
		ctx context.Context,
		userID uint,
		otherID uint,
	) (*models.Conversation, error)

	GetConversationForUser(
		ctx context.Context,
		conversationID uint,
		userID uint,
	) (*models.Conversation, error)

	ListConversationSummaries(
		ctx context.Context,
		userID uint,
	) ([]dto.ConversationSummary, error)

	ListMessages(
		ctx context.Context,
		conversationID uint,
	) ([]models.Message, error)

	CreateMessage(
		ctx context.Context,
		msg *models.Message,
	) error

	MarkMessagesRead(
		ctx context.Context,
		conversationID uint,
		readerID uint,
	) error
}
