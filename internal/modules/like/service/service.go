package like

import (
	"context"
	"time"

	"github.com/google/uuid"
	likeDto "github.com/visionmates/api/internal/modules/like/dto"
	likeRepo "github.com/visionmates/api/internal/modules/like/repository"
	projectRepo "github.com/visionmates/api/internal/modules/project/repository"
	"github.com/visionmates/api/pkg/apperror"
	commonDto "github.com/visionmates/api/pkg/dto"
)

const defaultPageSize = 12

type LikeService interface {
	ToggleLike(ctx context.Context, userID, projectID uuid.UUID) (*likeDto.ToggleResult, error)
	ToggleHide(ctx context.Context, userID, projectID uuid.UUID) (*likeDto.ToggleResult, error)
	ListLiked(ctx context.Context, userID uuid.UUID, query likeDto.LikedQuery) (*likeDto.LikedResponse, error)
}

type likeService struct {
	repo        likeRepo.LikeRepository
	projectRepo projectRepo.ProjectRepository
}

func NewLikeService(repo likeRepo.LikeRepository, projectRepo projectRepo.ProjectRepository) LikeService {
	return &likeService{
		repo:        repo,
		projectRepo: projectRepo,
	}
}

func (s *likeService) ToggleLike(ctx context.Context, userID, projectID uuid.UUID) (*likeDto.ToggleResult, error) {
	return s.toggle(ctx, userID, projectID,
		s.repo.IsLiked, s.repo.DeleteLike, s.repo.InsertLike)
}

func (s *likeService) ToggleHide(ctx context.Context, userID, projectID uuid.UUID) (*likeDto.ToggleResult, error) {
	return s.toggle(ctx, userID, projectID,
		s.repo.IsHidden, s.repo.DeleteHide, s.repo.InsertHide)
}

// toggle runs the membership flip shared by likes and hides: present
// removes, absent inserts, with a conflict-tolerant insert so races cannot
// duplicate the pair.
func (s *likeService) toggle(
	ctx context.Context,
	userID, projectID uuid.UUID,
	isMember func(context.Context, uuid.UUID, uuid.UUID) (bool, error),
	remove func(context.Context, uuid.UUID, uuid.UUID) error,
	insert func(context.Context, uuid.UUID, uuid.UUID) (bool, error),
) (*likeDto.ToggleResult, error) {
	exists, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.Wrap(apperror.ErrNotFound, "project not found")
	}

	member, err := isMember(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	if member {
		if err := remove(ctx, userID, projectID); err != nil {
			return nil, err
		}
		return &likeDto.ToggleResult{Action: "removed"}, nil
	}

	if _, err := insert(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return &likeDto.ToggleResult{Action: "added"}, nil
}

func (s *likeService) ListLiked(ctx context.Context, userID uuid.UUID, query likeDto.LikedQuery) (*likeDto.LikedResponse, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	var before *time.Time
	if query.LastCreatedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, query.LastCreatedAt)
		if err != nil {
			return nil, apperror.Wrap(apperror.ErrInvalidInput, "invalid lastCreatedAt cursor")
		}
		before = &t
	}

	likes, err := s.repo.FindLiked(ctx, userID, limit, before)
	if err != nil {
		return nil, err
	}

	resp := &likeDto.LikedResponse{
		Projects: make([]likeDto.LikedProject, 0, len(likes)),
		HasMore:  len(likes) == limit,
	}

	for _, l := range likes {
		resp.Projects = append(resp.Projects, likeDto.LikedProject{
			ID:          l.Project.ID,
			Title:       l.Project.Title,
			Description: l.Project.Description,
			IsActive:    l.Project.IsActive,
			Creator: commonDto.CreatorResponse{
				ID:              l.Project.Creator.ID,
				FirstName:       l.Project.Creator.FirstName,
				ProfileImageURL: l.Project.Creator.ProfileImageURL,
			},
			LikedAt: l.CreatedAt,
		})
	}

	if len(likes) > 0 {
		last := likes[len(likes)-1].CreatedAt
		resp.NextCursor = &last
	}

	return resp, nil
}
