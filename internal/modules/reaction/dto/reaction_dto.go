package dto

import "github.com/google/uuid"

type ReactionToggleRequest struct {
	TargetID   uuid.UUID `json:"target_id" binding:"required"`
	TargetType string    `json:"target_type" binding:"required,oneof=project progress_update comment message"`
}
