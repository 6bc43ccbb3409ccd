package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCommentRequest represents the request to add a comment to a thread.
// ParentCommentID is optional; when set it must reference a comment on the
// same thread.
type CreateCommentRequest struct {
	Content         string     `json:"content" binding:"required,min=1"`
	ParentCommentID *uuid.UUID `json:"parentCommentId" binding:"omitempty"`
}

// UpdateCommentRequest represents the request to replace a comment's content
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// CommentAuthor is the subset of user fields embedded in comment payloads
type CommentAuthor struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
}

// CommentResponse is a comment enriched with like metadata for the viewer.
// ParentCommentID is included so clients can rebuild the tree from the flat list.
type CommentResponse struct {
	CommentID          uuid.UUID      `json:"commentId"`
	ThreadID           uuid.UUID      `json:"threadId"`
	UserID             uuid.UUID      `json:"userId"`
	ParentCommentID    *uuid.UUID     `json:"parentCommentId"`
	Content            string         `json:"content"`
	LikeCount          int64          `json:"likeCount"`
	LikedByCurrentUser bool           `json:"likedByCurrentUser"`
	User               *CommentAuthor `json:"user,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

// DeleteCommentResponse reports the full set of removed comment ids so a
// caller can prune client-side caches
type DeleteCommentResponse struct {
	Message    string      `json:"message"`
	DeletedIDs []uuid.UUID `json:"deletedIds"`
}

// LikeStatusResponse reports the like state after a like/unlike/toggle call
type LikeStatusResponse struct {
	Message string `json:"message"`
	Liked   bool   `json:"liked"`
}

// PinStatusResponse reports the pin state after a pin/unpin/toggle call
type PinStatusResponse struct {
	Message string `json:"message"`
	Pinned  bool   `json:"pinned"`
}
