package domain

import "gorm.io/datatypes"

// CourseLevel represents the difficulty level of a course
type CourseLevel string

const (
	CourseLevelBeginner     CourseLevel = "Beginner"
	CourseLevelIntermediate CourseLevel = "Intermediate"
	CourseLevelAdvanced     CourseLevel = "Advanced"
)

// Course represents a video course listing
type Course struct {
	BaseModel
	Title         string         `gorm:"type:varchar(255);not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Video         string         `gorm:"type:varchar(500)" json:"video"`
	Paid          bool           `gorm:"not null;default:false" json:"paid"`
	Amount        float64        `gorm:"type:decimal(10,2);default:0" json:"amount"`
	Level         CourseLevel    `gorm:"type:varchar(20);not null;default:'Beginner'" json:"level"`
	LanguageIDs   datatypes.JSON `gorm:"type:jsonb" json:"language_ids"`
	InstructorIDs datatypes.JSON `gorm:"type:jsonb" json:"instructor_ids"`
	Review        float64        `gorm:"type:decimal(10,2);default:0" json:"review"`
}

// TableName specifies the table name for Course
func (Course) TableName() string {
	return "courses"
}
