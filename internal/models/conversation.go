package models

import "time"

type Conversation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ParticipantAID uint    `gorm:"index:idx_conv_pair" json:"participant_a_id"`
	ParticipantA   Profile `gorm:"foreignKey:ParticipantAID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"participant_a"`

	ParticipantBID uint    `gorm:"index:idx_conv_pair" json:"participant_b_id"`
	ParticipantB   Profile `gorm:"foreignKey:ParticipantBID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"participant_b"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ConversationID uint         `gorm:"index" json:"conversation_id"`
	Conversation   Conversation `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	SenderID uint   `json:"sender_id"`
	Content  string `gorm:"size:2000;not null" json:"content"`
	IsRead   bool   `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}
