package message

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/visionmates/api/internal/entity"
	messageDto "github.com/visionmates/api/internal/modules/message/dto"
	messageRepo "github.com/visionmates/api/internal/modules/message/repository"
	userRepo "github.com/visionmates/api/internal/modules/user/repository"
	"github.com/visionmates/api/pkg/apperror"
	commonDto "github.com/visionmates/api/pkg/dto"
	"gorm.io/gorm"
)

const recentMessageWindow = 50

type MessageService interface {
	GetOrCreateConversation(ctx context.Context, userA, userB uuid.UUID) (*entity.Conversation, error)
	Send(ctx context.Context, senderID uuid.UUID, req messageDto.SendMessageRequest) (*messageDto.MessageResponse, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]messageDto.ConversationSummary, error)
	// GetConversation returns the most recent messages in chronological
	// order and marks the counterpart's unread messages as read.
	GetConversation(ctx context.Context, userID, conversationID uuid.UUID) (*messageDto.ConversationDetail, error)
}

type messageService struct {
	repo      messageRepo.MessageRepository
	userRepo  userRepo.UserRepository
	sanitizer *bluemonday.Policy
}

func NewMessageService(repo messageRepo.MessageRepository, userRepo userRepo.UserRepository) MessageService {
	return &messageService{
		repo:      repo,
		userRepo:  userRepo,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// canonicalPair orders two user ids into the stable (participant1,
// participant2) key. Byte-wise uuid-string comparison; any total order
// works as long as it is consistent.
func canonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if strings.Compare(a.String(), b.String()) < 0 {
		return a, b
	}
	return b, a
}

func (s *messageService) GetOrCreateConversation(ctx context.Context, userA, userB uuid.UUID) (*entity.Conversation, error) {
	if userA == userB {
		return nil, apperror.Wrap(apperror.ErrInvalidInput, "cannot message yourself")
	}

	p1, p2 := canonicalPair(userA, userB)

	conv, err := s.repo.FindConversationByPair(ctx, p1, p2)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return conv, nil
	}

	conv = &entity.Conversation{
		Participant1ID: p1,
		Participant2ID: p2,
		LastMessageAt:  time.Now(),
	}
	created, err := s.repo.InsertConversation(ctx, conv)
	if err != nil {
		return nil, err
	}
	if !created {
		// Concurrent first contact from the other side; use the row it won.
		return s.repo.FindConversationByPair(ctx, p1, p2)
	}
	return conv, nil
}

func (s *messageService) Send(ctx context.Context, senderID uuid.UUID, req messageDto.SendMessageRequest) (*messageDto.MessageResponse, error) {
	if senderID == req.RecipientID {
		return nil, apperror.Wrap(apperror.ErrInvalidInput, "cannot message yourself")
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(req.Content))
	if content == "" {
		return nil, apperror.Wrap(apperror.ErrInvalidInput, "message content is required")
	}
	// The limit is characters, not bytes; multibyte content counts per rune
	// just like the binding on the request struct.
	if utf8.RuneCountInString(content) > 1000 {
		return nil, apperror.Wrap(apperror.ErrInvalidInput, "message content must be at most 1000 characters")
	}

	recipientExists, err := s.userRepo.Exists(ctx, req.RecipientID)
	if err != nil {
		return nil, err
	}
	if !recipientExists {
		return nil, apperror.Wrap(apperror.ErrNotFound, "recipient not found")
	}

	conv, err := s.GetOrCreateConversation(ctx, senderID, req.RecipientID)
	if err != nil {
		return nil, err
	}

	msg := &entity.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
		IsRead:         false,
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	if err := s.repo.TouchLastMessage(ctx, conv.ID, msg.CreatedAt); err != nil {
		return nil, err
	}

	sender, err := s.userRepo.FindByID(ctx, senderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}

	resp := toMessageResponse(msg, sender)
	return &resp, nil
}

func (s *messageService) ListConversations(ctx context.Context, userID uuid.UUID) ([]messageDto.ConversationSummary, error) {
	convs, err := s.repo.FindConversationsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]messageDto.ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		summary := messageDto.ConversationSummary{
			ID: conv.ID,
			Participants: []commonDto.CreatorResponse{
				toCreator(&conv.Participant1),
				toCreator(&conv.Participant2),
			},
			LastMessageAt: conv.LastMessageAt,
		}

		latest, err := s.repo.LatestMessage(ctx, conv.ID)
		if err != nil {
			return nil, err
		}
		if latest != nil {
			sender := &conv.Participant1
			if latest.SenderID == conv.Participant2ID {
				sender = &conv.Participant2
			}
			resp := toMessageResponse(latest, sender)
			summary.LastMessage = &resp
		}

		unread, err := s.repo.CountUnread(ctx, conv.ID, userID)
		if err != nil {
			return nil, err
		}
		summary.UnreadCount = unread

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (s *messageService) GetConversation(ctx context.Context, userID, conversationID uuid.UUID) (*messageDto.ConversationDetail, error) {
	conv, err := s.repo.FindConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, apperror.Wrap(apperror.ErrNotFound, "conversation not found")
	}
	if conv.Participant1ID != userID && conv.Participant2ID != userID {
		return nil, apperror.Wrap(apperror.ErrForbidden, "not a participant of this conversation")
	}

	messages, err := s.repo.FindRecentMessages(ctx, conversationID, recentMessageWindow)
	if err != nil {
		return nil, err
	}

	// Opening the conversation reads it. Only the counterpart's messages
	// flip; the viewer's own sent messages keep their read state.
	if err := s.repo.MarkRead(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	detail := &messageDto.ConversationDetail{
		ID: conv.ID,
		Participants: []commonDto.CreatorResponse{
			toCreator(&conv.Participant1),
			toCreator(&conv.Participant2),
		},
		Messages: make([]messageDto.MessageResponse, 0, len(messages)),
	}

	// Storage order is newest first; reverse for chronological display.
	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		detail.Messages = append(detail.Messages, toMessageResponse(&msg, &msg.Sender))
	}

	return detail, nil
}

func toCreator(u *entity.User) commonDto.CreatorResponse {
	return commonDto.CreatorResponse{
		ID:              u.ID,
		FirstName:       u.FirstName,
		ProfileImageURL: u.ProfileImageURL,
	}
}

func toMessageResponse(m *entity.Message, sender *entity.User) messageDto.MessageResponse {
	return messageDto.MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Sender:         toCreator(sender),
		Content:        m.Content,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
}
