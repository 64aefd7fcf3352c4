package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string      `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash    string      `gorm:"size:255;not null" json:"-"`
	FirstName       string      `gorm:"size:50;not null" json:"first_name"`
	LastName        string      `gorm:"size:50" json:"last_name"`
	Bio             *string     `gorm:"type:text" json:"bio,omitempty"`
	ProfileImageURL *string     `gorm:"type:text" json:"profile_image_url,omitempty"`
	GoogleID        *string     `gorm:"size:100;uniqueIndex" json:"-"`
	LinkedinURL     *string     `gorm:"type:text" json:"linkedin_url,omitempty"`
	GithubURL       *string     `gorm:"type:text" json:"github_url,omitempty"`
	Skills          []UserSkill `gorm:"foreignKey:UserID" json:"skills,omitempty"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserSkill is keyed by the (user, skill) pair; re-adding a skill updates
// its level instead of erroring.
type UserSkill struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Skill     string    `gorm:"size:50;primaryKey" json:"skill"`
	Level     int       `gorm:"not null;default:1" json:"level"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (UserSkill) TableName() string {
	return "user_skills"
}
