package dto

import (
	"time"

	"github.com/google/uuid"
	commonDto "github.com/visionmates/api/pkg/dto"
)

type SendMessageRequest struct {
	RecipientID uuid.UUID `json:"recipient_id" binding:"required"`
	Content     string    `json:"content" binding:"required,max=1000"`
}

type MessageResponse struct {
	ID             uuid.UUID                `json:"id"`
	ConversationID uuid.UUID                `json:"conversation_id"`
	Sender         commonDto.CreatorResponse `json:"sender"`
	Content        string                   `json:"content"`
	IsRead         bool                     `json:"is_read"`
	CreatedAt      time.Time                `json:"created_at"`
}

type ConversationSummary struct {
	ID            uuid.UUID                  `json:"id"`
	Participants  []commonDto.CreatorResponse `json:"participants"`
	LastMessage   *MessageResponse           `json:"last_message"`
	UnreadCount   int64                      `json:"unread_count"`
	LastMessageAt time.Time                  `json:"last_message_at"`
}

type ConversationDetail struct {
	ID           uuid.UUID                  `json:"id"`
	Participants []commonDto.CreatorResponse `json:"participants"`
	// Messages are chronological (oldest of the retained window first).
	Messages []MessageResponse `json:"messages"`
}
