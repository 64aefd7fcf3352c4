package discovery

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/visionmates/api/internal/entity"
	discoveryDto "github.com/visionmates/api/internal/modules/discovery/dto"
	discoveryRepo "github.com/visionmates/api/internal/modules/discovery/repository"
	"github.com/visionmates/api/pkg/apperror"
	commonDto "github.com/visionmates/api/pkg/dto"
)

const defaultPageSize = 12

type DiscoveryService interface {
	GetPage(ctx context.Context, query discoveryDto.DiscoverQuery) (*discoveryDto.DiscoverResponse, error)
}

type discoveryService struct {
	repo discoveryRepo.DiscoveryRepository
}

func NewDiscoveryService(repo discoveryRepo.DiscoveryRepository) DiscoveryService {
	return &discoveryService{repo: repo}
}

func (s *discoveryService) GetPage(ctx context.Context, query discoveryDto.DiscoverQuery) (*discoveryDto.DiscoverResponse, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	cursor, err := parseCursor(query)
	if err != nil {
		return nil, err
	}

	projects, err := s.repo.FindPage(ctx, limit, cursor)
	if err != nil {
		return nil, err
	}

	resp := &discoveryDto.DiscoverResponse{
		Projects: make([]discoveryDto.ProjectCard, 0, len(projects)),
		// Heuristic: a full page means there is probably another one.
		HasMore: len(projects) == limit,
	}

	for _, p := range projects {
		resp.Projects = append(resp.Projects, toProjectCard(p))
	}

	if len(projects) > 0 {
		last := projects[len(projects)-1]
		resp.NextCursor = &commonDto.Cursor{
			LastCreatedAt: last.CreatedAt,
			LastID:        last.ID,
		}
	}

	return resp, nil
}

func parseCursor(query discoveryDto.DiscoverQuery) (*discoveryRepo.Cursor, error) {
	if query.LastCreatedAt == "" && query.LastID == "" {
		return nil, nil
	}

	lastCreatedAt, err := time.Parse(time.RFC3339Nano, query.LastCreatedAt)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrInvalidInput, "invalid lastCreatedAt cursor")
	}

	lastID, err := uuid.Parse(query.LastID)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrInvalidInput, "invalid lastId cursor")
	}

	return &discoveryRepo.Cursor{
		LastCreatedAt: lastCreatedAt,
		LastID:        lastID,
	}, nil
}

func toProjectCard(p *entity.Project) discoveryDto.ProjectCard {
	card := discoveryDto.ProjectCard{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Creator: commonDto.CreatorResponse{
			ID:              p.Creator.ID,
			FirstName:       p.Creator.FirstName,
			ProfileImageURL: p.Creator.ProfileImageURL,
		},
		Participations: make([]commonDto.ParticipationEdge, 0, len(p.Participations)),
		CreatedAt:      p.CreatedAt,
	}
	for _, part := range p.Participations {
		card.Participations = append(card.Participations, commonDto.ParticipationEdge{
			Type:   part.Type,
			UserID: part.UserID,
		})
	}
	return card
}
