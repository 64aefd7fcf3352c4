package project

import (
	"context"

	"github.com/google/uuid"
	"github.com/visionmates/api/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)
	FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	// Deactivate soft-deletes: the row stays for referential integrity.
	Deactivate(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	CreateProgressUpdate(ctx context.Context, update *entity.ProgressUpdate) error
	FindProgressUpdates(ctx context.Context, projectID uuid.UUID) ([]entity.ProgressUpdate, error)
	ExistsProgressUpdate(ctx context.Context, id uuid.UUID) (bool, error)

	CreateComment(ctx context.Context, comment *entity.Comment) error
	FindComments(ctx context.Context, projectID uuid.UUID) ([]entity.Comment, error)
	ExistsComment(ctx context.Context, id uuid.UUID) (bool, error)

	UpsertRequiredSkill(ctx context.Context, skill *entity.ProjectRequiredSkill) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	var project entity.Project
	if err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("RequiredSkills").
		Preload("Participations").
		Where("id = ?", id).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*entity.Project, error) {
	var projects []*entity.Project
	err := r.db.WithContext(ctx).
		Preload("RequiredSkills").
		Preload("Participations").
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Update(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *projectRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.Project{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *projectRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Project{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *projectRepository) CreateProgressUpdate(ctx context.Context, update *entity.ProgressUpdate) error {
	return r.db.WithContext(ctx).Create(update).Error
}

func (r *projectRepository) FindProgressUpdates(ctx context.Context, projectID uuid.UUID) ([]entity.ProgressUpdate, error) {
	var updates []entity.ProgressUpdate
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&updates).Error
	return updates, err
}

func (r *projectRepository) ExistsProgressUpdate(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ProgressUpdate{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *projectRepository) CreateComment(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *projectRepository) FindComments(ctx context.Context, projectID uuid.UUID) ([]entity.Comment, error) {
	var comments []entity.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *projectRepository) ExistsComment(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Comment{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *projectRepository) UpsertRequiredSkill(ctx context.Context, skill *entity.ProjectRequiredSkill) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "project_id"}, {Name: "skill"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"priority": skill.Priority,
		}),
	}).Create(skill).Error
}
