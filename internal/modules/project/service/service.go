package project

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/visionmates/api/internal/entity"
	projectDto "github.com/visionmates/api/internal/modules/project/dto"
	projectRepo "github.com/visionmates/api/internal/modules/project/repository"
	"github.com/visionmates/api/pkg/apperror"
	"gorm.io/gorm"
)

type ProjectService interface {
	Create(ctx context.Context, creatorID uuid.UUID, req projectDto.CreateProjectRequest) (*entity.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Project, error)
	ListMine(ctx context.Context, creatorID uuid.UUID) ([]*entity.Project, error)
	Update(ctx context.Context, callerID, id uuid.UUID, req projectDto.UpdateProjectRequest) (*entity.Project, error)
	// Deactivate soft-deletes; the project row survives so historical
	// participations and comments keep their referent.
	Deactivate(ctx context.Context, callerID, id uuid.UUID) error

	CreateProgressUpdate(ctx context.Context, callerID, projectID uuid.UUID, req projectDto.CreateProgressUpdateRequest) (*entity.ProgressUpdate, error)
	ListProgressUpdates(ctx context.Context, projectID uuid.UUID) ([]entity.ProgressUpdate, error)

	CreateComment(ctx context.Context, callerID, projectID uuid.UUID, req projectDto.CreateCommentRequest) (*entity.Comment, error)
	ListComments(ctx context.Context, projectID uuid.UUID) ([]entity.Comment, error)

	UpsertRequiredSkills(ctx context.Context, callerID, projectID uuid.UUID, req projectDto.UpsertRequiredSkillsRequest) error
}

type projectService struct {
	repo      projectRepo.ProjectRepository
	sanitizer *bluemonday.Policy
}

func NewProjectService(repo projectRepo.ProjectRepository) ProjectService {
	return &projectService{
		repo:      repo,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *projectService) Create(ctx context.Context, creatorID uuid.UUID, req projectDto.CreateProjectRequest) (*entity.Project, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.Wrap(apperror.ErrInvalidInput, "title is required")
	}

	project := &entity.Project{
		CreatorID:   creatorID,
		Title:       title,
		Description: s.sanitizer.Sanitize(req.Description),
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Get(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Wrap(apperror.ErrNotFound, "project not found")
		}
		return nil, err
	}
	return project, nil
}

func (s *projectService) ListMine(ctx context.Context, creatorID uuid.UUID) ([]*entity.Project, error) {
	return s.repo.FindByCreator(ctx, creatorID)
}

func (s *projectService) Update(ctx context.Context, callerID, id uuid.UUID, req projectDto.UpdateProjectRequest) (*entity.Project, error) {
	project, err := s.ownedProject(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	// CreatorID never changes after creation
	project.Title = strings.TrimSpace(req.Title)
	project.Description = s.sanitizer.Sanitize(req.Description)
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Deactivate(ctx context.Context, callerID, id uuid.UUID) error {
	if _, err := s.ownedProject(ctx, callerID, id); err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, id)
}

func (s *projectService) CreateProgressUpdate(ctx context.Context, callerID, projectID uuid.UUID, req projectDto.CreateProgressUpdateRequest) (*entity.ProgressUpdate, error) {
	if _, err := s.ownedProject(ctx, callerID, projectID); err != nil {
		return nil, err
	}

	update := &entity.ProgressUpdate{
		ProjectID: projectID,
		Title:     strings.TrimSpace(req.Title),
		Content:   s.sanitizer.Sanitize(req.Content),
	}
	if err := s.repo.CreateProgressUpdate(ctx, update); err != nil {
		return nil, err
	}
	return update, nil
}

func (s *projectService) ListProgressUpdates(ctx context.Context, projectID uuid.UUID) ([]entity.ProgressUpdate, error) {
	return s.repo.FindProgressUpdates(ctx, projectID)
}

func (s *projectService) CreateComment(ctx context.Context, callerID, projectID uuid.UUID, req projectDto.CreateCommentRequest) (*entity.Comment, error) {
	exists, err := s.repo.Exists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.Wrap(apperror.ErrNotFound, "project not found")
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(req.Content))
	if content == "" {
		return nil, apperror.Wrap(apperror.ErrInvalidInput, "comment content is required")
	}

	comment := &entity.Comment{
		ProjectID: projectID,
		UserID:    callerID,
		Content:   content,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *projectService) ListComments(ctx context.Context, projectID uuid.UUID) ([]entity.Comment, error) {
	return s.repo.FindComments(ctx, projectID)
}

func (s *projectService) UpsertRequiredSkills(ctx context.Context, callerID, projectID uuid.UUID, req projectDto.UpsertRequiredSkillsRequest) error {
	if _, err := s.ownedProject(ctx, callerID, projectID); err != nil {
		return err
	}

	for _, input := range req.Skills {
		priority := input.Priority
		if priority <= 0 {
			priority = 1
		}
		skill := &entity.ProjectRequiredSkill{
			ProjectID: projectID,
			Skill:     strings.TrimSpace(input.Skill),
			Priority:  priority,
		}
		if err := s.repo.UpsertRequiredSkill(ctx, skill); err != nil {
			return err
		}
	}
	return nil
}

func (s *projectService) ownedProject(ctx context.Context, callerID, id uuid.UUID) (*entity.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Wrap(apperror.ErrNotFound, "project not found")
		}
		return nil, err
	}
	if project.CreatorID != callerID {
		return nil, apperror.Wrap(apperror.ErrForbidden, "only the project creator can do this")
	}
	return project, nil
}
