package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/visionmates/api/internal/entity"
	profileDto "github.com/visionmates/api/internal/modules/profile/dto"
	userRepo "github.com/visionmates/api/internal/modules/user/repository"
	"github.com/visionmates/api/pkg/apperror"
	commonDto "github.com/visionmates/api/pkg/dto"
	"github.com/visionmates/api/pkg/storage"
	"golang.org/x/crypto/bcrypt"
)

type ProfileService interface {
	GetCurrentProfile(ctx context.Context, userID uuid.UUID) (*profileDto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input profileDto.UpdateProfileInput, avatar *commonDto.AvatarFile) (*profileDto.ProfileResponse, error)
	GetPublicProfile(ctx context.Context, userID uuid.UUID) (*profileDto.PublicProfileResponse, error)
	UpsertSkills(ctx context.Context, userID uuid.UUID, req profileDto.UpsertSkillsRequest) ([]entity.UserSkill, error)
}

type profileService struct {
	repo         userRepo.UserRepository
	imageStorage storage.ImageStorage
}

func NewProfileService(repo userRepo.UserRepository, imageStorage storage.ImageStorage) ProfileService {
	return &profileService{
		repo:         repo,
		imageStorage: imageStorage,
	}
}

func (s *profileService) GetCurrentProfile(ctx context.Context, userID uuid.UUID) (*profileDto.ProfileResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrNotFound, "user not found")
	}

	user.PasswordHash = ""

	return &profileDto.ProfileResponse{User: user}, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input profileDto.UpdateProfileInput, avatar *commonDto.AvatarFile) (*profileDto.ProfileResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrNotFound, "user not found")
	}

	if input.FirstName != nil && strings.TrimSpace(*input.FirstName) != "" {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Bio != nil {
		user.Bio = normalizeOptional(input.Bio)
	}
	if input.LinkedinURL != nil {
		user.LinkedinURL = normalizeOptional(input.LinkedinURL)
	}
	if input.GithubURL != nil {
		user.GithubURL = normalizeOptional(input.GithubURL)
	}

	if input.Password != nil && *input.Password != "" {
		if len(*input.Password) < 8 {
			return nil, apperror.Wrap(apperror.ErrBadRequest, "password must be at least 8 characters")
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if avatar != nil && avatar.Reader != nil && s.imageStorage != nil {
		url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, "avatars", avatar.FileName)
		if err != nil {
			return nil, err
		}
		user.ProfileImageURL = &url
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated.PasswordHash = ""

	return &profileDto.ProfileResponse{User: updated}, nil
}

func (s *profileService) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*profileDto.PublicProfileResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrNotFound, "user not found")
	}

	return &profileDto.PublicProfileResponse{
		ID:              user.ID,
		FirstName:       user.FirstName,
		Bio:             user.Bio,
		ProfileImageURL: user.ProfileImageURL,
		Skills:          user.Skills,
		CreatedAt:       user.CreatedAt,
	}, nil
}

func (s *profileService) UpsertSkills(ctx context.Context, userID uuid.UUID, req profileDto.UpsertSkillsRequest) ([]entity.UserSkill, error) {
	for _, input := range req.Skills {
		skill := &entity.UserSkill{
			UserID: userID,
			Skill:  strings.TrimSpace(input.Skill),
			Level:  input.Level,
		}
		if err := s.repo.UpsertSkill(ctx, skill); err != nil {
			return nil, err
		}
	}

	return s.repo.FindSkills(ctx, userID)
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}

	result := trimmed
	return &result
}
