package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ParticipationWatch     = "watch"
	ParticipationRaiseHand = "raise_hand"
	ParticipationCommit    = "commit"
)

func ValidParticipationType(t string) bool {
	switch t {
	case ParticipationWatch, ParticipationRaiseHand, ParticipationCommit:
		return true
	}
	return false
}

// Participation ties a (project, user) pair to a signal type. The unique
// index enforces at most one row per (project, user, type); the application
// layer additionally keeps at most one type active per pair.
type Participation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_participations_unique,priority:1;index:idx_participations_project,priority:1" json:"project_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_participations_unique,priority:2" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Type      string    `gorm:"size:20;not null;uniqueIndex:idx_participations_unique,priority:3" json:"type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p *Participation) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}
