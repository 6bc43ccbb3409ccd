package dto

import (
	"time"

	"github.com/google/uuid"

	"community-api/internal/domain"
)

// CreateCourseRequest represents the request to create a course listing
type CreateCourseRequest struct {
	Title         string             `json:"title" binding:"required,min=1"`
	Description   string             `json:"description"`
	Video         string             `json:"video" binding:"omitempty,max=500"`
	Paid          bool               `json:"paid"`
	Amount        float64            `json:"amount" binding:"omitempty,gte=0"`
	Level         domain.CourseLevel `json:"level" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
	LanguageIDs   []uuid.UUID        `json:"languageIds" binding:"omitempty,dive,uuid"`
	InstructorIDs []uuid.UUID        `json:"instructorIds" binding:"omitempty,dive,uuid"`
}

// UpdateCourseRequest represents a partial update of a course
type UpdateCourseRequest struct {
	Title         *string             `json:"title" binding:"omitempty,min=1"`
	Description   *string             `json:"description"`
	Video         *string             `json:"video" binding:"omitempty,max=500"`
	Paid          *bool               `json:"paid"`
	Amount        *float64            `json:"amount" binding:"omitempty,gte=0"`
	Level         *domain.CourseLevel `json:"level" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
	LanguageIDs   []uuid.UUID         `json:"languageIds" binding:"omitempty,dive,uuid"`
	InstructorIDs []uuid.UUID         `json:"instructorIds" binding:"omitempty,dive,uuid"`
	Review        *float64            `json:"review" binding:"omitempty,gte=0"`
}

// CourseResponse is the public view of a course
type CourseResponse struct {
	ID            uuid.UUID          `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Video         string             `json:"video"`
	Paid          bool               `json:"paid"`
	Amount        float64            `json:"amount"`
	Level         domain.CourseLevel `json:"level"`
	LanguageIDs   []uuid.UUID        `json:"languageIds"`
	InstructorIDs []uuid.UUID        `json:"instructorIds"`
	Review        float64            `json:"review"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}
