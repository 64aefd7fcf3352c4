package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProjectLike is boolean-set membership: the pair itself is the primary
// key, so at most one row per (user, project).
type ProjectLike struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"project_id"`
	Project   Project   `gorm:"constraint:OnDelete:CASCADE" json:"project,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (ProjectLike) TableName() string {
	return "project_likes"
}

// ProjectHide mirrors ProjectLike for the discovery swipe-away signal.
type ProjectHide struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"project_id"`
	Project   Project   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ProjectHide) TableName() string {
	return "project_hides"
}
