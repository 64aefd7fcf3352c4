package participation

import (
	"context"

	"github.com/google/uuid"
	"github.com/visionmates/api/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ParticipationRepository interface {
	// Insert is conflict-tolerant: it returns false without error when a row
	// for the exact (project, user, type) triple already exists.
	Insert(ctx context.Context, p *entity.Participation) (bool, error)
	// DeleteAllForPair removes every participation a user holds on a
	// project, regardless of type. Deleting nothing is not an error.
	DeleteAllForPair(ctx context.Context, projectID, userID uuid.UUID) error
	// DeleteExact removes only the matching triple; absence is success.
	DeleteExact(ctx context.Context, projectID, userID uuid.UUID, ptype string) error
	CountsByType(ctx context.Context, projectID uuid.UUID) (map[string]int64, error)
	// FindForUser returns the user's current participation on the project,
	// or nil when none exists.
	FindForUser(ctx context.Context, projectID, userID uuid.UUID) (*entity.Participation, error)
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]entity.Participation, error)
}

type participationRepository struct {
	db *gorm.DB
}

func NewParticipationRepository(db *gorm.DB) ParticipationRepository {
	return &participationRepository{db: db}
}

func (r *participationRepository) Insert(ctx context.Context, p *entity.Participation) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(p)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *participationRepository) DeleteAllForPair(ctx context.Context, projectID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&entity.Participation{}).Error
}

func (r *participationRepository) DeleteExact(ctx context.Context, projectID, userID uuid.UUID, ptype string) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ? AND type = ?", projectID, userID, ptype).
		Delete(&entity.Participation{}).Error
}

func (r *participationRepository) CountsByType(ctx context.Context, projectID uuid.UUID) (map[string]int64, error) {
	type result struct {
		Type  string
		Count int64
	}
	var results []result

	err := r.db.WithContext(ctx).
		Model(&entity.Participation{}).
		Select("type, count(*) as count").
		Where("project_id = ?", projectID).
		Group("type").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, res := range results {
		counts[res.Type] = res.Count
	}
	return counts, nil
}

func (r *participationRepository) FindForUser(ctx context.Context, projectID, userID uuid.UUID) (*entity.Participation, error) {
	// Find with a slice avoids "record not found" log noise from First()
	var rows []entity.Participation
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
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

func (r *participationRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]entity.Participation, error) {
	var rows []entity.Participation
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Find(&rows).Error
	return rows, err
}
