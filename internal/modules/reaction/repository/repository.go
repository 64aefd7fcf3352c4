package reaction

import (
	"context"

	"github.com/google/uuid"
	"github.com/visionmates/api/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReactionRepository interface {
	// Find returns nil when the user holds no reaction of the type on the
	// target.
	Find(ctx context.Context, userID, targetID uuid.UUID, targetType, rtype string) (*entity.Reaction, error)
	// Insert is conflict-tolerant: a duplicate (even one racing this call)
	// is a no-op, never an error, so no transaction is needed around the
	// preceding read.
	Insert(ctx context.Context, reaction *entity.Reaction) (bool, error)
	// Delete is a no-op when the row is already gone.
	Delete(ctx context.Context, userID, targetID uuid.UUID, targetType, rtype string) error
	Count(ctx context.Context, targetID uuid.UUID, targetType, rtype string) (int64, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Find(ctx context.Context, userID, targetID uuid.UUID, targetType, rtype string) (*entity.Reaction, error) {
	// Find with a slice avoids "record not found" log noise from First()
	var rows []entity.Reaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_id = ? AND target_type = ? AND type = ?",
			userID, targetID, targetType, rtype).
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

func (r *reactionRepository) Insert(ctx context.Context, reaction *entity.Reaction) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(reaction)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *reactionRepository) Delete(ctx context.Context, userID, targetID uuid.UUID, targetType, rtype string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND target_id = ? AND target_type = ? AND type = ?",
			userID, targetID, targetType, rtype).
		Delete(&entity.Reaction{}).Error
}

func (r *reactionRepository) Count(ctx context.Context, targetID uuid.UUID, targetType, rtype string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Reaction{}).
		Where("target_id = ? AND target_type = ? AND type = ?", targetID, targetType, rtype).
		Count(&count).Error
	return count, err
}
