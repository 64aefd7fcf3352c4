package dto

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// AvatarFile carries an uploaded profile image through to storage.
type AvatarFile struct {
	Reader   io.Reader
	FileName string
}

// CreatorResponse is the public projection of a user attached to projects,
// comments and messages. It never carries the email or other private fields.
type CreatorResponse struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"first_name"`
	ProfileImageURL *string   `json:"profile_image_url"`
}

// ParticipationEdge is the (type, user) pair exposed on discovery cards so
// clients can compute counts locally.
type ParticipationEdge struct {
	Type   string    `json:"type"`
	UserID uuid.UUID `json:"user_id"`
}

// Cursor is the keyset position returned with a discovery page.
type Cursor struct {
	LastCreatedAt time.Time `json:"last_created_at"`
	LastID        uuid.UUID `json:"last_id"`
}

type ReactionStatusResponse struct {
	Count       int64 `json:"count"`
	UserReacted bool  `json:"user_reacted"`
}

type ToggleResponse struct {
	Action      string `json:"action"` // "added" or "removed"
	Count       int64  `json:"count"`
	UserReacted bool   `json:"user_reacted"`
}
