package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReactionType currently knows a single value; the column keeps the
// dimension open.
const ReactionClap = "clap"

// Reaction target kinds. The set is closed: every kind maps to an explicit
// existence check in the reaction service.
const (
	TargetProject        = "project"
	TargetProgressUpdate = "progress_update"
	TargetComment        = "comment"
	TargetMessage        = "message"
)

// Reaction is a polymorphic edge; a user holds at most one reaction of a
// type per target, enforced by the unique index.
type Reaction struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_unique,priority:1" json:"user_id"`
	User       User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	TargetID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_unique,priority:2;index:idx_reactions_lookup,priority:1" json:"target_id"`
	TargetType string    `gorm:"size:20;not null;uniqueIndex:idx_reactions_unique,priority:3;index:idx_reactions_lookup,priority:2" json:"target_type"`
	Type       string    `gorm:"size:20;not null;default:clap;uniqueIndex:idx_reactions_unique,priority:4" json:"type"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
