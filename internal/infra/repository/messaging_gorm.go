package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/primefit-labs/training-scheduler/internal/domain/messaging"
	"github.com/primefit-labs/training-scheduler/internal/dto"
	"github.com/primefit-labs/training-scheduler/internal/models"
)

type MessagingGormRepository struct {
	db *gorm.DB
}

func NewMessagingGormRepository(db *gorm.DB) *MessagingGormRepository {
	return &MessagingGormRepository{db: db}
}

// --------------------------------------------------
// Profiles
// --------------------------------------------------

func (r *MessagingGormRepository) GetProfile(
	ctx context.Context,
	id uint,
) (*models.Profile, error) {

	var p models.Profile
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// --------------------------------------------------
// Conversations
// --------------------------------------------------

func (r *MessagingGormRepository) GetOrCreateConversation(
	ctx context.Context,
	userID uint,
	otherID uint,
) (*models.Conversation, error) {

	var conv models.Conversation
	err := r.db.WithContext(ctx).
		Where(
			"(participant_a_id = ? AND participant_b_id = ?) OR (participant_a_id = ? AND participant_b_id = ?)",
			userID, otherID, otherID, userID,
		).
		First(&conv).Error

	if err == nil {
		return &conv, nil
	}

	conv = models.Conversation{
		ParticipantAID: userID,
		ParticipantBID: otherID,
	}

	if err := r.db.WithContext(ctx).Create(&conv).Error; err != nil {
		return nil, err
	}

	return &conv, nil
}

func (r *MessagingGormRepository) GetConversationForUser(
	ctx context.Context,
	conversationID uint,
	userID uint,
) (*models.Conversation, error) {

	var conv models.Conversation
	if err := r.db.WithContext(ctx).
		Where(
			"id = ? AND (participant_a_id = ? OR participant_b_id = ?)",
			conversationID, userID, userID,
		).
		First(&conv).Error; err != nil {
		return nil, err
	}

	return &conv, nil
}

func (r *MessagingGormRepository) ListConversationSummaries(
	ctx context.Context,
	userID uint,
) ([]dto.ConversationSummary, error) {

	var convs []models.Conversation
	if err := r.db.WithContext(ctx).
		Preload("ParticipantA").
		Preload("ParticipantB").
		Where("participant_a_id = ? OR participant_b_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&convs).Error; err != nil {
		return nil, err
	}

	out := make([]dto.ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		other := conv.ParticipantA
		if conv.ParticipantAID == userID {
			other = conv.ParticipantB
		}

		summary := dto.ConversationSummary{
			ID:        conv.ID,
			OtherID:   other.ID,
			OtherName: other.Name,
			OtherRole: other.Role,
		}

		var last models.Message
		if err := r.db.WithContext(ctx).
			Where("conversation_id = ?", conv.ID).
			Order("created_at DESC, id DESC").
			First(&last).Error; err == nil {
			summary.LastMessage = last.Content
			summary.LastMessageAt = &last.CreatedAt
			summary.LastMessageMine = last.SenderID == userID
		}

		var unread int64
		r.db.WithContext(ctx).
			Model(&models.Message{}).
			Where(
				"conversation_id = ? AND sender_id <> ? AND is_read = ?",
				conv.ID, userID, false,
			).
			Count(&unread)
		summary.UnreadCount = int(unread)

		out = append(out, summary)
	}

	return out, nil
}

// --------------------------------------------------
// Messages
// --------------------------------------------------

func (r *MessagingGormRepository) ListMessages(
	ctx context.Context,
	conversationID uint,
) ([]models.Message, error) {

	var msgs []models.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}

	return msgs, nil
}

func (r *MessagingGormRepository) CreateMessage(
	ctx context.Context,
	msg *models.Message,
) error {

	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return err
	}

	// Bump the conversation so the inbox sorts by latest activity.
	return r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", msg.ConversationID).
		Update("updated_at", msg.CreatedAt).Error
}

func (r *MessagingGormRepository) MarkMessagesRead(
	ctx context.Context,
	conversationID uint,
	readerID uint,
) error {

	return r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where(
			"conversation_id = ? AND sender_id <> ? AND is_read = ?",
			conversationID, readerID, false,
		).
		Update("is_read", true).Error
}

// Compile-time check
var _ domain.Repository = (*MessagingGormRepository)(nil)
