package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID             uuid.UUID              `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID      uuid.UUID              `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator        User                   `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"creator,omitempty"`
	Title          string                 `gorm:"size:255;not null" json:"title"`
	Description    string                 `gorm:"type:text;not null" json:"description"`
	IsActive       bool                   `gorm:"not null;default:true;index:idx_projects_discover,priority:1" json:"is_active"`
	Participations []Participation        `gorm:"foreignKey:ProjectID" json:"participations,omitempty"`
	RequiredSkills []ProjectRequiredSkill `gorm:"foreignKey:ProjectID" json:"required_skills,omitempty"`
	CreatedAt      time.Time              `gorm:"autoCreateTime;index:idx_projects_discover,priority:2,sort:desc" json:"created_at"`
	UpdatedAt      time.Time              `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}

// ProgressUpdate is authored by the project's creator only and is immutable
// once created.
type ProgressUpdate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Project   Project   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *ProgressUpdate) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID, err = uuid.NewV7()
	}
	return
}

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Project   Project   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}

// ProjectRequiredSkill upserts on the (project, skill) pair.
type ProjectRequiredSkill struct {
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey" json:"project_id"`
	Skill     string    `gorm:"size:50;primaryKey" json:"skill"`
	Priority  int       `gorm:"not null;default:1" json:"priority"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ProjectRequiredSkill) TableName() string {
	return "project_required_skills"
}
