package domain

// ThreadKind discriminates the two thread resources sharing the comment machinery
type ThreadKind string

const (
	ThreadKindAnnouncement ThreadKind = "ANNOUNCEMENT"
	ThreadKindQuestion     ThreadKind = "QUESTION"
)

// Thread is a top-level content item (announcement or question) owning a comment tree
type Thread struct {
	BaseModel
	Kind        ThreadKind `gorm:"type:varchar(20);not null;index:idx_threads_kind" json:"kind"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	ViewCount   int        `gorm:"not null;default:0" json:"view_count"`
	Comments    []Comment  `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// TableName specifies the table name for Thread
func (Thread) TableName() string {
	return "threads"
}
