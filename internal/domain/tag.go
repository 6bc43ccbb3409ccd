package domain

// Tag is a simple lookup label attached to content by clients
type Tag struct {
	BaseModel
	Title string `gorm:"type:varchar(100);uniqueIndex;not null" json:"title"`
}

// TableName specifies the table name for Tag
func (Tag) TableName() string {
	return "tags"
}
