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

// TutorialService defines the interface for tutorial business logic
type TutorialService interface {
	CreateTutorial(ctx context.Context, req *dto.CreateTutorialRequest) (*dto.TutorialResponse, error)
	GetTutorial(ctx context.Context, id uuid.UUID) (*dto.TutorialResponse, error)
	GetTutorialBySlug(ctx context.Context, slug string) (*dto.TutorialResponse, error)
	ListTutorials(ctx context.Context) ([]dto.TutorialResponse, error)
	UpdateTutorial(ctx context.Context, id uuid.UUID, req *dto.UpdateTutorialRequest) (*dto.TutorialResponse, error)
	DeleteTutorial(ctx context.Context, id uuid.UUID) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}

type tutorialServiceImpl struct {
	tutorialRepo repository.TutorialRepository
	logger       *zap.Logger
}

// NewTutorialService creates a new instance of TutorialService
func NewTutorialService(tutorialRepo repository.TutorialRepository, logger *zap.Logger) TutorialService {
	return &tutorialServiceImpl{tutorialRepo: tutorialRepo, logger: logger}
}

func (s *tutorialServiceImpl) CreateTutorial(ctx context.Context, req *dto.CreateTutorialRequest) (*dto.TutorialResponse, error) {
	if existing, err := s.tutorialRepo.FindBySlug(ctx, req.Slug); err == nil && existing != nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Slug already in use", "")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check slug", err.Error())
	}

	tutorial := &domain.Tutorial{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		EmbedURL:    req.EmbedURL,
		Category:    req.Category,
		Source:      req.Source,
		Language:    req.Language,
		Duration:    req.Duration,
		AuthorName:  req.AuthorName,
		AuthorRole:  req.AuthorRole,
		PublishedAt: req.PublishedAt,
	}

	if err := s.tutorialRepo.Create(ctx, tutorial); err != nil {
		s.logger.Error("Failed to create tutorial", zap.String("slug", req.Slug), zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create tutorial", err.Error())
	}

	return toTutorialResponse(tutorial), nil
}

func (s *tutorialServiceImpl) GetTutorial(ctx context.Context, id uuid.UUID) (*dto.TutorialResponse, error) {
	tutorial, err := s.tutorialRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Tutorial not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to find tutorial", err.Error())
	}
	return toTutorialResponse(tutorial), nil
}

func (s *tutorialServiceImpl) GetTutorialBySlug(ctx context.Context, slug string) (*dto.TutorialResponse, error) {
	tutorial, err := s.tutorialRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Tutorial not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to find tutorial", err.Error())
	}
	return toTutorialResponse(tutorial), nil
}

func (s *tutorialServiceImpl) ListTutorials(ctx context.Context) ([]dto.TutorialResponse, error) {
	tutorials, err := s.tutorialRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list tutorials", err.Error())
	}

	responses := make([]dto.TutorialResponse, 0, len(tutorials))
	for _, tutorial := range tutorials {
		responses = append(responses, *toTutorialResponse(tutorial))
	}
	return responses, nil
}

func (s *tutorialServiceImpl) UpdateTutorial(ctx context.Context, id uuid.UUID, req *dto.UpdateTutorialRequest) (*dto.TutorialResponse, error) {
	tutorial, err := s.tutorialRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Tutorial not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to find tutorial", err.Error())
	}

	if req.Slug != nil && *req.Slug != tutorial.Slug {
		if existing, err := s.tutorialRepo.FindBySlug(ctx, *req.Slug); err == nil && existing != nil {
			return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Slug already in use", "")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check slug", err.Error())
		}
		tutorial.Slug = *req.Slug
	}
	if req.Title != nil {
		tutorial.Title = *req.Title
	}
	if req.Description != nil {
		tutorial.Description = *req.Description
	}
	if req.VideoURL != nil {
		tutorial.VideoURL = *req.VideoURL
	}
	if req.EmbedURL != nil {
		tutorial.EmbedURL = *req.EmbedURL
	}
	if req.Category != nil {
		tutorial.Category = *req.Category
	}
	if req.Source != nil {
		tutorial.Source = *req.Source
	}
	if req.Language != nil {
		tutorial.Language = *req.Language
	}
	if req.Duration != nil {
		tutorial.Duration = *req.Duration
	}
	if req.AuthorName != nil {
		tutorial.AuthorName = *req.AuthorName
	}
	if req.AuthorRole != nil {
		tutorial.AuthorRole = *req.AuthorRole
	}
	if req.PublishedAt != nil {
		tutorial.PublishedAt = req.PublishedAt
	}

	if err := s.tutorialRepo.Update(ctx, tutorial); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update tutorial", err.Error())
	}

	return toTutorialResponse(tutorial), nil
}

func (s *tutorialServiceImpl) DeleteTutorial(ctx context.Context, id uuid.UUID) error {
	if _, err := s.tutorialRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Tutorial not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to find tutorial", err.Error())
	}

	if err := s.tutorialRepo.Delete(ctx, id); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete tutorial", err.Error())
	}
	return nil
}

func (s *tutorialServiceImpl) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	if _, err := s.tutorialRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Tutorial not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to find tutorial", err.Error())
	}

	if err := s.tutorialRepo.IncrementViewCount(ctx, id); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to increment view count", err.Error())
	}
	return nil
}

func toTutorialResponse(tutorial *domain.Tutorial) *dto.TutorialResponse {
	return &dto.TutorialResponse{
		ID:           tutorial.ID,
		Slug:         tutorial.Slug,
		Title:        tutorial.Title,
		Description:  tutorial.Description,
		VideoURL:     tutorial.VideoURL,
		EmbedURL:     tutorial.EmbedURL,
		Category:     tutorial.Category,
		Source:       tutorial.Source,
		Language:     tutorial.Language,
		Duration:     tutorial.Duration,
		ViewCount:    tutorial.ViewCount,
		AuthorName:   tutorial.AuthorName,
		AuthorRole:   tutorial.AuthorRole,
		Likes:        tutorial.Likes,
		CommentCount: tutorial.CommentCount,
		PublishedAt:  tutorial.PublishedAt,
		CreatedAt:    tutorial.CreatedAt,
		UpdatedAt:    tutorial.UpdatedAt,
	}
}
