package discovery

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/visionmates/api/internal/entity"
	"gorm.io/gorm"
)

// Cursor is a keyset position in the (created_at DESC, id DESC) total
// order over active projects.
type Cursor struct {
	LastCreatedAt time.Time
	LastID        uuid.UUID
}

type DiscoveryRepository interface {
	// FindPage returns the next window strictly after the cursor position;
	// a nil cursor starts from the top.
	FindPage(ctx context.Context, limit int, cursor *Cursor) ([]*entity.Project, error)
}

type discoveryRepository struct {
	db *gorm.DB
}

func NewDiscoveryRepository(db *gorm.DB) DiscoveryRepository {
	return &discoveryRepository{db: db}
}

func (r *discoveryRepository) FindPage(ctx context.Context, limit int, cursor *Cursor) ([]*entity.Project, error) {
	query := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Participations").
		Where("is_active = ?", true)

	if cursor != nil {
		// Keyset predicate: rows strictly after the cursor in the total
		// order. The id tie-break matters because created_at collides at
		// low timestamp resolution.
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.LastCreatedAt, cursor.LastCreatedAt, cursor.LastID,
		)
	}

	var projects []*entity.Project
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}
