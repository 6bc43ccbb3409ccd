package dto

import (
	"time"

	"github.com/google/uuid"

	"community-api/internal/domain"
)

// CreateCommunityRequest represents the request to create a community listing
type CreateCommunityRequest struct {
	Title       string                      `json:"title" binding:"required,min=1"`
	Description string                      `json:"description"`
	PricingType domain.CommunityPricingType `json:"pricingType" binding:"omitempty,oneof=free paid"`
	Amount      float64                     `json:"amount" binding:"omitempty,gte=0"`
}

// UpdateCommunityRequest represents a partial update of a community
type UpdateCommunityRequest struct {
	Title       *string                      `json:"title" binding:"omitempty,min=1"`
	Description *string                      `json:"description"`
	PricingType *domain.CommunityPricingType `json:"pricingType" binding:"omitempty,oneof=free paid"`
	Amount      *float64                     `json:"amount" binding:"omitempty,gte=0"`
}

// CommunityResponse is the public view of a community
type CommunityResponse struct {
	ID          uuid.UUID                   `json:"id"`
	Title       string                      `json:"title"`
	Description string                      `json:"description"`
	PricingType domain.CommunityPricingType `json:"pricingType"`
	Amount      float64                     `json:"amount"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}
