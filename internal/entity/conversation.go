package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation holds the canonical unordered pair of two users:
// Participant1ID < Participant2ID by uuid-string order, so one row exists
// per pair no matter who initiates (unique index on the ordered pair).
type Conversation struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Participant1ID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_conversations_pair,priority:1" json:"participant1_id"`
	Participant1   User      `gorm:"foreignKey:Participant1ID;constraint:OnDelete:CASCADE" json:"participant1,omitempty"`
	Participant2ID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_conversations_pair,priority:2;index" json:"participant2_id"`
	Participant2   User      `gorm:"foreignKey:Participant2ID;constraint:OnDelete:CASCADE" json:"participant2,omitempty"`
	LastMessageAt  time.Time `gorm:"not null;index:,sort:desc" json:"last_message_at"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index" json:"conversation_id"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	Sender         User      `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"sender,omitempty"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	IsRead         bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID, err = uuid.NewV7()
	}
	return
}
