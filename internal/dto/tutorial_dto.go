package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTutorialRequest represents the request to create a tutorial
type CreateTutorialRequest struct {
	Slug        string     `json:"slug" binding:"required,min=1,max=255"`
	Title       string     `json:"title" binding:"required,min=1"`
	Description string     `json:"description" binding:"required"`
	VideoURL    string     `json:"videoUrl" binding:"omitempty,max=500"`
	EmbedURL    string     `json:"embedUrl" binding:"omitempty,max=500"`
	Category    string     `json:"category"`
	Source      string     `json:"source"`
	Language    string     `json:"language"`
	Duration    string     `json:"duration"`
	AuthorName  string     `json:"authorName"`
	AuthorRole  string     `json:"authorRole"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// UpdateTutorialRequest represents a partial update of a tutorial
type UpdateTutorialRequest struct {
	Slug        *string    `json:"slug" binding:"omitempty,min=1,max=255"`
	Title       *string    `json:"title" binding:"omitempty,min=1"`
	Description *string    `json:"description"`
	VideoURL    *string    `json:"videoUrl" binding:"omitempty,max=500"`
	EmbedURL    *string    `json:"embedUrl" binding:"omitempty,max=500"`
	Category    *string    `json:"category"`
	Source      *string    `json:"source"`
	Language    *string    `json:"language"`
	Duration    *string    `json:"duration"`
	AuthorName  *string    `json:"authorName"`
	AuthorRole  *string    `json:"authorRole"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// TutorialResponse is the public view of a tutorial
type TutorialResponse struct {
	ID           uuid.UUID  `json:"id"`
	Slug         string     `json:"slug"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	VideoURL     string     `json:"videoUrl"`
	EmbedURL     string     `json:"embedUrl"`
	Category     string     `json:"category"`
	Source       string     `json:"source"`
	Language     string     `json:"language"`
	Duration     string     `json:"duration"`
	ViewCount    int        `json:"viewCount"`
	AuthorName   string     `json:"authorName"`
	AuthorRole   string     `json:"authorRole"`
	Likes        int        `json:"likes"`
	CommentCount int        `json:"commentCount"`
	PublishedAt  *time.Time `json:"publishedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
