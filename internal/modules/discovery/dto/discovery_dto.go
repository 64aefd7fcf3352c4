package dto

import (
	"time"

	"github.com/google/uuid"
	commonDto "github.com/visionmates/api/pkg/dto"
)

type DiscoverQuery struct {
	Limit         int    `form:"limit" binding:"omitempty,min=1,max=48"`
	LastCreatedAt string `form:"lastCreatedAt"`
	LastID        string `form:"lastId"`
}

type ProjectCard struct {
	ID             uuid.UUID                    `json:"id"`
	Title          string                       `json:"title"`
	Description    string                       `json:"description"`
	Creator        commonDto.CreatorResponse    `json:"creator"`
	Participations []commonDto.ParticipationEdge `json:"participations"`
	CreatedAt      time.Time                    `json:"created_at"`
}

type DiscoverResponse struct {
	Projects   []ProjectCard     `json:"projects"`
	HasMore    bool              `json:"has_more"`
	NextCursor *commonDto.Cursor `json:"next_cursor"`
}
