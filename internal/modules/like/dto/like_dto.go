package dto

import (
	"time"

	"github.com/google/uuid"
	commonDto "github.com/visionmates/api/pkg/dto"
)

type ToggleResult struct {
	Action string `json:"action"` // "added" or "removed"
}

type LikedQuery struct {
	Limit         int    `form:"limit" binding:"omitempty,min=1,max=48"`
	LastCreatedAt string `form:"lastCreatedAt"`
}

type LikedProject struct {
	ID          uuid.UUID                 `json:"id"`
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	IsActive    bool                      `json:"is_active"`
	Creator     commonDto.CreatorResponse `json:"creator"`
	LikedAt     time.Time                 `json:"liked_at"`
}

type LikedResponse struct {
	Projects   []LikedProject `json:"projects"`
	HasMore    bool           `json:"has_more"`
	NextCursor *time.Time     `json:"next_cursor"`
}
