package dto

import (
	"time"

	"github.com/google/uuid"

	"community-api/internal/domain"
)

// CreateThreadRequest represents the request to create an announcement or question
type CreateThreadRequest struct {
	Title       string `json:"title" binding:"required,min=1"`
	Description string `json:"description" binding:"required,min=1"`
}

// UpdateThreadRequest represents a partial update of a thread
type UpdateThreadRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1"`
	Description *string `json:"description" binding:"omitempty,min=1"`
}

// ThreadResponse is a thread with its enriched comment list. IsPinned is
// meaningful only when the request carried an authenticated viewer.
type ThreadResponse struct {
	ID          uuid.UUID         `json:"id"`
	Kind        domain.ThreadKind `json:"kind"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	ViewCount   int               `json:"viewCount"`
	IsPinned    bool              `json:"isPinned"`
	Comments    []CommentResponse `json:"comments"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}
