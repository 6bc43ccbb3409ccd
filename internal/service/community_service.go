package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"community-api/internal/domain"
	"community-api/internal/dto"
	"community-api/internal/repository"
	"community-api/internal/response"
)

// CommunityService defines the interface for community listing business logic
type CommunityService interface {
	CreateCommunity(ctx context.Context, req *dto.CreateCommunityRequest) (*dto.CommunityResponse, error)
	GetCommunity(ctx context.Context, id uuid.UUID) (*dto.CommunityResponse, error)
	ListCommunities(ctx context.Context) ([]dto.CommunityResponse, error)
	UpdateCommunity(ctx context.Context, id uuid.UUID, req *dto.UpdateCommunityRequest) (*dto.CommunityResponse, error)
	DeleteCommunity(ctx context.Context, id uuid.UUID) error
}

type communityServiceImpl struct {
	communityRepo repository.CommunityRepository
	logger        *zap.Logger
}

// NewCommunityService creates a new instance of CommunityService
func NewCommunityService(communityRepo repository.CommunityRepository, logger *zap.Logger) CommunityService {
	return &communityServiceImpl{communityRepo: communityRepo, logger: logger}
}

func (s *communityServiceImpl) CreateCommunity(ctx context.Context, req *dto.CreateCommunityRequest) (*dto.CommunityResponse, error) {
	pricing := req.PricingType
	if pricing == "" {
		pricing = domain.CommunityPricingFree
	}

	community := &domain.Community{
		Title:       req.Title,
		Description: req.Description,
		PricingType: pricing,
		Amount:      req.Amount,
	}

	if err := s.communityRepo.Create(ctx, community); err != nil {
		s.logger.Error("Failed to create community", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create community", err.Error())
	}

	return toCommunityResponse(community), nil
}

func (s *communityServiceImpl) GetCommunity(ctx context.Context, id uuid.UUID) (*dto.CommunityResponse, error) {
	community, err := s.communityRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Community not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to find community", err.Error())
	}
	return toCommunityResponse(community), nil
}

func (s *communityServiceImpl) ListCommunities(ctx context.Context) ([]dto.CommunityResponse, error) {
	communities, err := s.communityRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list communities", err.Error())
	}

	responses := make([]dto.CommunityResponse, 0, len(communities))
	for _, community := range communities {
		responses = append(responses, *toCommunityResponse(community))
	}
	return responses, nil
}

func (s *communityServiceImpl) UpdateCommunity(ctx context.Context, id uuid.UUID, req *dto.UpdateCommunityRequest) (*dto.CommunityResponse, error) {
	community, err := s.communityRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Community not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to find community", err.Error())
	}

	if req.Title != nil {
		community.Title = *req.Title
	}
	if req.Description != nil {
		community.Description = *req.Description
	}
	if req.PricingType != nil {
		community.PricingType = *req.PricingType
	}
	if req.Amount != nil {
		community.Amount = *req.Amount
	}

	if err := s.communityRepo.Update(ctx, community); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update community", err.Error())
	}

	return toCommunityResponse(community), nil
}

func (s *communityServiceImpl) DeleteCommunity(ctx context.Context, id uuid.UUID) error {
	if _, err := s.communityRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Community not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to find community", err.Error())
	}

	if err := s.communityRepo.Delete(ctx, id); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete community", err.Error())
	}
	return nil
}

func toCommunityResponse(community *domain.Community) *dto.CommunityResponse {
	return &dto.CommunityResponse{
		ID:          community.ID,
		Title:       community.Title,
		Description: community.Description,
		PricingType: community.PricingType,
		Amount:      community.Amount,
		CreatedAt:   community.CreatedAt,
		UpdatedAt:   community.UpdatedAt,
	}
}
