package message

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/visionmates/api/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageRepository interface {
	// FindConversationByPair expects the canonically ordered pair and
	// returns nil when no conversation exists yet.
	FindConversationByPair(ctx context.Context, p1, p2 uuid.UUID) (*entity.Conversation, error)
	// InsertConversation is conflict-tolerant: false means another insert
	// for the same pair already landed.
	InsertConversation(ctx context.Context, conv *entity.Conversation) (bool, error)
	FindConversationByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error)
	FindConversationsForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Conversation, error)
	TouchLastMessage(ctx context.Context, conversationID uuid.UUID, at time.Time) error

	CreateMessage(ctx context.Context, msg *entity.Message) error
	// FindRecentMessages returns newest first.
	FindRecentMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]entity.Message, error)
	LatestMessage(ctx context.Context, conversationID uuid.UUID) (*entity.Message, error)
	// MarkRead flips unread messages in the conversation that were not
	// authored by the viewer.
	MarkRead(ctx context.Context, conversationID, viewerID uuid.UUID) error
	CountUnread(ctx context.Context, conversationID, viewerID uuid.UUID) (int64, error)
	ExistsMessage(ctx context.Context, id uuid.UUID) (bool, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) FindConversationByPair(ctx context.Context, p1, p2 uuid.UUID) (*entity.Conversation, error) {
	var rows []entity.Conversation
	err := r.db.WithContext(ctx).
		Where("participant1_id = ? AND participant2_id = ?", p1, p2).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *messageRepository) InsertConversation(ctx context.Context, conv *entity.Conversation) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(conv)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *messageRepository) FindConversationByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	var rows []entity.Conversation
	err := r.db.WithContext(ctx).
		Preload("Participant1").
		Preload("Participant2").
		Where("id = ?", id).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *messageRepository) FindConversationsForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Conversation, error) {
	var convs []*entity.Conversation
	err := r.db.WithContext(ctx).
		Preload("Participant1").
		Preload("Participant2").
		Where("participant1_id = ? OR participant2_id = ?", userID, userID).
		Order("last_message_at DESC").
		Find(&convs).Error
	return convs, err
}

func (r *messageRepository) TouchLastMessage(ctx context.Context, conversationID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.Conversation{}).
		Where("id = ?", conversationID).
		Update("last_message_at", at).Error
}

func (r *messageRepository) CreateMessage(ctx context.Context, msg *entity.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageRepository) FindRecentMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]entity.Message, error) {
	var messages []entity.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) LatestMessage(ctx context.Context, conversationID uuid.UUID) (*entity.Message, error) {
	var rows []entity.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *messageRepository) MarkRead(ctx context.Context, conversationID, viewerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.Message{}).
		Where("conversation_id = ? AND is_read = ? AND sender_id <> ?", conversationID, false, viewerID).
		Update("is_read", true).Error
}

func (r *messageRepository) CountUnread(ctx context.Context, conversationID, viewerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Message{}).
		Where("conversation_id = ? AND is_read = ? AND sender_id <> ?", conversationID, false, viewerID).
		Count(&count).Error
	return count, err
}

func (r *messageRepository) ExistsMessage(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Message{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
