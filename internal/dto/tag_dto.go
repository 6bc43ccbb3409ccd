package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTagRequest represents the request to create a tag
type CreateTagRequest struct {
	Title string `json:"title" binding:"required,min=1,max=100"`
}

// UpdateTagRequest represents the request to rename a tag
type UpdateTagRequest struct {
	Title string `json:"title" binding:"required,min=1,max=100"`
}

// TagResponse is the public view of a tag
type TagResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
