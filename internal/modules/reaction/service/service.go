package reaction

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/visionmates/api/internal/entity"
	messageRepo "github.com/visionmates/api/internal/modules/message/repository"
	projectRepo "github.com/visionmates/api/internal/modules/project/repository"
	reactionDto "github.com/visionmates/api/internal/modules/reaction/dto"
	reactionRepo "github.com/visionmates/api/internal/modules/reaction/repository"
	"github.com/visionmates/api/pkg/apperror"
	commonDto "github.com/visionmates/api/pkg/dto"
)

const countCacheTTL = 7 * 24 * time.Hour

type ReactionService interface {
	Toggle(ctx context.Context, userID uuid.UUID, req reactionDto.ReactionToggleRequest) (*commonDto.ToggleResponse, error)
	// Status works without a caller; userReacted is false for anonymous reads.
	Status(ctx context.Context, userID *uuid.UUID, targetID uuid.UUID, targetType string) (*commonDto.ReactionStatusResponse, error)
}

type reactionService struct {
	repo        reactionRepo.ReactionRepository
	projectRepo projectRepo.ProjectRepository
	messageRepo messageRepo.MessageRepository
	redisClient *redis.Client
}

func NewReactionService(repo reactionRepo.ReactionRepository, projectRepo projectRepo.ProjectRepository, messageRepo messageRepo.MessageRepository, redisClient *redis.Client) ReactionService {
	return &reactionService{
		repo:        repo,
		projectRepo: projectRepo,
		messageRepo: messageRepo,
		redisClient: redisClient,
	}
}

// targetExists dispatches over the closed target-type set. The switch is
// the exhaustiveness point: a new target kind must add its check here.
func (s *reactionService) targetExists(ctx context.Context, targetID uuid.UUID, targetType string) (bool, error) {
	switch targetType {
	case entity.TargetProject:
		// Inactive projects stay reactable; soft delete keeps them around
		return s.projectRepo.Exists(ctx, targetID)
	case entity.TargetProgressUpdate:
		return s.projectRepo.ExistsProgressUpdate(ctx, targetID)
	case entity.TargetComment:
		return s.projectRepo.ExistsComment(ctx, targetID)
	case entity.TargetMessage:
		return s.messageRepo.ExistsMessage(ctx, targetID)
	default:
		return false, apperror.Wrap(apperror.ErrInvalidInput, "invalid target type")
	}
}

func (s *reactionService) Toggle(ctx context.Context, userID uuid.UUID, req reactionDto.ReactionToggleRequest) (*commonDto.ToggleResponse, error) {
	exists, err := s.targetExists(ctx, req.TargetID, req.TargetType)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.Wrap(apperror.ErrNotFound, "reaction target not found")
	}

	existing, err := s.repo.Find(ctx, userID, req.TargetID, req.TargetType, entity.ReactionClap)
	if err != nil {
		return nil, err
	}

	action := "added"
	if existing != nil {
		if err := s.repo.Delete(ctx, userID, req.TargetID, req.TargetType, entity.ReactionClap); err != nil {
			return nil, err
		}
		action = "removed"
	} else {
		reaction := &entity.Reaction{
			UserID:     userID,
			TargetID:   req.TargetID,
			TargetType: req.TargetType,
			Type:       entity.ReactionClap,
		}
		// Insert may find a duplicate when two toggles race; the row is
		// there either way, so the result is still "added".
		if _, err := s.repo.Insert(ctx, reaction); err != nil {
			return nil, err
		}
	}

	count, err := s.repo.Count(ctx, req.TargetID, req.TargetType, entity.ReactionClap)
	if err != nil {
		return nil, err
	}

	s.writeCountCache(ctx, req.TargetID, req.TargetType, count)

	return &commonDto.ToggleResponse{
		Action:      action,
		Count:       count,
		UserReacted: action == "added",
	}, nil
}

func (s *reactionService) Status(ctx context.Context, userID *uuid.UUID, targetID uuid.UUID, targetType string) (*commonDto.ReactionStatusResponse, error) {
	count, cached := s.readCountCache(ctx, targetID, targetType)
	if !cached {
		var err error
		count, err = s.repo.Count(ctx, targetID, targetType, entity.ReactionClap)
		if err != nil {
			return nil, err
		}
		s.writeCountCache(ctx, targetID, targetType, count)
	}

	userReacted := false
	if userID != nil {
		existing, err := s.repo.Find(ctx, *userID, targetID, targetType, entity.ReactionClap)
		if err != nil {
			return nil, err
		}
		userReacted = existing != nil
	}

	return &commonDto.ReactionStatusResponse{
		Count:       count,
		UserReacted: userReacted,
	}, nil
}

func cacheKey(targetID uuid.UUID, targetType string) string {
	return fmt.Sprintf("clapcount:%s:%s", targetType, targetID.String())
}

func (s *reactionService) writeCountCache(ctx context.Context, targetID uuid.UUID, targetType string, count int64) {
	if s.redisClient == nil {
		return
	}
	// Best effort; the database stays authoritative
	if err := s.redisClient.Set(ctx, cacheKey(targetID, targetType), count, countCacheTTL).Err(); err != nil {
		log.Printf("redis clap count update failed: %v", err)
	}
}

func (s *reactionService) readCountCache(ctx context.Context, targetID uuid.UUID, targetType string) (int64, bool) {
	if s.redisClient == nil {
		return 0, false
	}
	val, err := s.redisClient.Get(ctx, cacheKey(targetID, targetType)).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}
