package dto

import "github.com/google/uuid"

type ParticipationRequest struct {
	Type string `json:"type" binding:"required,oneof=watch raise_hand commit"`
}

type ParticipationSummary struct {
	ProjectID uuid.UUID        `json:"project_id"`
	Counts    map[string]int64 `json:"counts"`
	UserType  *string          `json:"user_type"`
}
