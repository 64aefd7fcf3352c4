package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/visionmates/api/internal/entity"
)

// UpdateProfileInput represents the input for updating the caller's profile
type UpdateProfileInput struct {
	FirstName   *string `json:"first_name" form:"first_name"`
	LastName    *string `json:"last_name" form:"last_name"`
	Password    *string `json:"password" form:"password"`
	Bio         *string `json:"bio" form:"bio"`
	LinkedinURL *string `json:"linkedin_url" form:"linkedin_url"`
	GithubURL   *string `json:"github_url" form:"github_url"`
}

// ProfileResponse is returned when updating the profile or getting the
// current user's own profile.
type ProfileResponse struct {
	User *entity.User `json:"user"`
}

// PublicProfileResponse is returned when viewing another user's profile.
// It deliberately omits the email and private links.
type PublicProfileResponse struct {
	ID              uuid.UUID          `json:"id"`
	FirstName       string             `json:"first_name"`
	Bio             *string            `json:"bio,omitempty"`
	ProfileImageURL *string            `json:"profile_image_url,omitempty"`
	Skills          []entity.UserSkill `json:"skills,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

type SkillInput struct {
	Skill string `json:"skill" binding:"required,min=1,max=50"`
	Level int    `json:"level" binding:"required,min=1,max=5"`
}

type UpsertSkillsRequest struct {
	Skills []SkillInput `json:"skills" binding:"required,min=1,dive"`
}
