package participation

import (
	"context"

	"github.com/google/uuid"
	"github.com/visionmates/api/internal/entity"
	participationDto "github.com/visionmates/api/internal/modules/participation/dto"
	participationRepo "github.com/visionmates/api/internal/modules/participation/repository"
	projectRepo "github.com/visionmates/api/internal/modules/project/repository"
	"github.com/visionmates/api/pkg/apperror"
)

type ParticipationService interface {
	// Set replaces whatever the user currently holds on the project with
	// the given type (exclusive replace).
	Set(ctx context.Context, userID, projectID uuid.UUID, ptype string) (*entity.Participation, error)
	// Remove deletes the exact triple; removing nothing is success.
	Remove(ctx context.Context, userID, projectID uuid.UUID, ptype string) error
	// AddStrict fails with a conflict when the exact triple already exists
	// and never touches other types the user may hold.
	AddStrict(ctx context.Context, userID, projectID uuid.UUID, ptype string) (*entity.Participation, error)
	Summary(ctx context.Context, userID *uuid.UUID, projectID uuid.UUID) (*participationDto.ParticipationSummary, error)
}

type participationService struct {
	repo        participationRepo.ParticipationRepository
	projectRepo projectRepo.ProjectRepository
}

func NewParticipationService(repo participationRepo.ParticipationRepository, projectRepo projectRepo.ProjectRepository) ParticipationService {
	return &participationService{
		repo:        repo,
		projectRepo: projectRepo,
	}
}

func (s *participationService) Set(ctx context.Context, userID, projectID uuid.UUID, ptype string) (*entity.Participation, error) {
	if !entity.ValidParticipationType(ptype) {
		return nil, apperror.Wrap(apperror.ErrInvalidInput, "invalid participation type")
	}

	exists, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.Wrap(apperror.ErrNotFound, "project not found")
	}

	// Exclusive replace: drop every type the user holds on this project,
	// then insert the new one. The delete is idempotent and the insert
	// tolerates a concurrent duplicate.
	if err := s.repo.DeleteAllForPair(ctx, projectID, userID); err != nil {
		return nil, err
	}

	p := &entity.Participation{
		ProjectID: projectID,
		UserID:    userID,
		Type:      ptype,
	}
	created, err := s.repo.Insert(ctx, p)
	if err != nil {
		return nil, err
	}
	if !created {
		// A concurrent Set won the insert; the row it wrote is the state.
		return s.repo.FindForUser(ctx, projectID, userID)
	}
	return p, nil
}

func (s *participationService) Remove(ctx context.Context, userID, projectID uuid.UUID, ptype string) error {
	if !entity.ValidParticipationType(ptype) {
		return apperror.Wrap(apperror.ErrInvalidInput, "invalid participation type")
	}
	return s.repo.DeleteExact(ctx, projectID, userID, ptype)
}

func (s *participationService) AddStrict(ctx context.Context, userID, projectID uuid.UUID, ptype string) (*entity.Participation, error) {
	if !entity.ValidParticipationType(ptype) {
		return nil, apperror.Wrap(apperror.ErrInvalidInput, "invalid participation type")
	}

	exists, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.Wrap(apperror.ErrNotFound, "project not found")
	}

	p := &entity.Participation{
		ProjectID: projectID,
		UserID:    userID,
		Type:      ptype,
	}
	created, err := s.repo.Insert(ctx, p)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, apperror.Wrap(apperror.ErrConflict, "participation already exists")
	}
	return p, nil
}

func (s *participationService) Summary(ctx context.Context, userID *uuid.UUID, projectID uuid.UUID) (*participationDto.ParticipationSummary, error) {
	counts, err := s.repo.CountsByType(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, t := range []string{entity.ParticipationWatch, entity.ParticipationRaiseHand, entity.ParticipationCommit} {
		if _, ok := counts[t]; !ok {
			counts[t] = 0
		}
	}

	var userType *string
	if userID != nil {
		current, err := s.repo.FindForUser(ctx, projectID, *userID)
		if err != nil {
			return nil, err
		}
		if current != nil {
			userType = &current.Type
		}
	}

	return &participationDto.ParticipationSummary{
		ProjectID: projectID,
		Counts:    counts,
		UserType:  userType,
	}, nil
}
