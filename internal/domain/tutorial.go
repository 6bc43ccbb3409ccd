package domain

import "time"

// Tutorial represents an embedded video tutorial
type Tutorial struct {
	BaseModel
	Slug         string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Description  string     `gorm:"type:text;not null" json:"description"`
	VideoURL     string     `gorm:"type:varchar(500)" json:"video_url"`
	EmbedURL     string     `gorm:"type:varchar(500)" json:"embed_url"`
	Category     string     `gorm:"type:varchar(100)" json:"category"`
	Source       string     `gorm:"type:varchar(100)" json:"source"`
	Language     string     `gorm:"type:varchar(50)" json:"language"`
	Duration     string     `gorm:"type:varchar(20)" json:"duration"`
	ViewCount    int        `gorm:"not null;default:0" json:"view_count"`
	AuthorName   string     `gorm:"type:varchar(100)" json:"author_name"`
	AuthorRole   string     `gorm:"type:varchar(100)" json:"author_role"`
	Likes        int        `gorm:"not null;default:0" json:"likes"`
	CommentCount int        `gorm:"not null;default:0" json:"comment_count"`
	PublishedAt  *time.Time `gorm:"type:timestamp" json:"published_at"`
}

// TableName specifies the table name for Tutorial
func (Tutorial) TableName() string {
	return "tutorials"
}
