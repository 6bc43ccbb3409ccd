package domain

import "github.com/google/uuid"

// Comment is a single node of a thread's comment tree. ParentID is nil for
// top-level comments; a non-nil ParentID always references a comment on the
// same thread (enforced at creation, immutable afterwards).
type Comment struct {
	BaseModel
	ThreadID uuid.UUID  `gorm:"type:uuid;not null;index:idx_comments_thread_id" json:"thread_id"`
	UserID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_comments_user_id" json:"user_id"`
	ParentID *uuid.UUID `gorm:"type:uuid;index:idx_comments_parent_id" json:"parent_id"`
	Content  string     `gorm:"type:text;not null" json:"content"`
	Thread   Thread     `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE" json:"thread,omitempty"`
	User     User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// CommentLike is a (user, comment) pair; at most one per pair
type CommentLike struct {
	BaseModel
	CommentID uuid.UUID `gorm:"type:uuid;not null;index:idx_comment_likes_comment_id;uniqueIndex:uq_comment_likes_user_comment" json:"comment_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_comment_likes_user_id;uniqueIndex:uq_comment_likes_user_comment" json:"user_id"`
	Comment   Comment   `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"comment,omitempty"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// TableName specifies the table name for CommentLike
func (CommentLike) TableName() string {
	return "comment_likes"
}
