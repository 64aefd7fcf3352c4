package like

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/visionmates/api/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository interface {
	IsLiked(ctx context.Context, userID, projectID uuid.UUID) (bool, error)
	InsertLike(ctx context.Context, userID, projectID uuid.UUID) (bool, error)
	DeleteLike(ctx context.Context, userID, projectID uuid.UUID) error

	IsHidden(ctx context.Context, userID, projectID uuid.UUID) (bool, error)
	InsertHide(ctx context.Context, userID, projectID uuid.UUID) (bool, error)
	DeleteHide(ctx context.Context, userID, projectID uuid.UUID) error

	// FindLiked returns the user's likes newest first, strictly before the
	// cursor timestamp when one is given, with project and creator loaded.
	FindLiked(ctx context.Context, userID uuid.UUID, limit int, before *time.Time) ([]entity.ProjectLike, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) IsLiked(ctx context.Context, userID, projectID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ProjectLike{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) InsertLike(ctx context.Context, userID, projectID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.ProjectLike{UserID: userID, ProjectID: projectID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *likeRepository) DeleteLike(ctx context.Context, userID, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(&entity.ProjectLike{}).Error
}

func (r *likeRepository) IsHidden(ctx context.Context, userID, projectID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ProjectHide{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) InsertHide(ctx context.Context, userID, projectID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.ProjectHide{UserID: userID, ProjectID: projectID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *likeRepository) DeleteHide(ctx context.Context, userID, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(&entity.ProjectHide{}).Error
}

func (r *likeRepository) FindLiked(ctx context.Context, userID uuid.UUID, limit int, before *time.Time) ([]entity.ProjectLike, error) {
	query := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Project.Creator").
		Where("user_id = ?", userID)

	if before != nil {
		query = query.Where("created_at < ?", *before)
	}

	var likes []entity.ProjectLike
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Find(&likes).Error
	return likes, err
}
