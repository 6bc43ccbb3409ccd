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

// TagService defines the interface for tag business logic
type TagService interface {
	CreateTag(ctx context.Context, req *dto.CreateTagRequest) (*dto.TagResponse, error)
	GetTag(ctx context.Context, id uuid.UUID) (*dto.TagResponse, error)
	ListTags(ctx context.Context) ([]dto.TagResponse, error)
	UpdateTag(ctx context.Context, id uuid.UUID, req *dto.UpdateTagRequest) (*dto.TagResponse, error)
	DeleteTag(ctx context.Context, id uuid.UUID) error
}

type tagServiceImpl struct {
	tagRepo repository.TagRepository
	logger  *zap.Logger
}

// NewTagService creates a new instance of TagService
func NewTagService(tagRepo repository.TagRepository, logger *zap.Logger) TagService {
	return &tagServiceImpl{tagRepo: tagRepo, logger: logger}
}

func (s *tagServiceImpl) CreateTag(ctx context.Context, req *dto.CreateTagRequest) (*dto.TagResponse, error) {
	if existing, err := s.tagRepo.FindByTitle(ctx, req.Title); err == nil && existing != nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Tag already exists", "")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check tag", err.Error())
	}

	tag := &domain.Tag{Title: req.Title}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		s.logger.Error("Failed to create tag", zap.String("title", req.Title), zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create tag", err.Error())
	}

	return toTagResponse(tag), nil
}

func (s *tagServiceImpl) GetTag(ctx context.Context, id uuid.UUID) (*dto.TagResponse, error) {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Tag not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to find tag", err.Error())
	}
	return toTagResponse(tag), nil
}

func (s *tagServiceImpl) ListTags(ctx context.Context) ([]dto.TagResponse, error) {
	tags, err := s.tagRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list tags", err.Error())
	}

	responses := make([]dto.TagResponse, 0, len(tags))
	for _, tag := range tags {
		responses = append(responses, *toTagResponse(tag))
	}
	return responses, nil
}

func (s *tagServiceImpl) UpdateTag(ctx context.Context, id uuid.UUID, req *dto.UpdateTagRequest) (*dto.TagResponse, error) {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Tag not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to find tag", err.Error())
	}

	if req.Title != tag.Title {
		if existing, err := s.tagRepo.FindByTitle(ctx, req.Title); err == nil && existing != nil {
			return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Tag already exists", "")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check tag", err.Error())
		}
	}

	tag.Title = req.Title
	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update tag", err.Error())
	}

	return toTagResponse(tag), nil
}

func (s *tagServiceImpl) DeleteTag(ctx context.Context, id uuid.UUID) error {
	if _, err := s.tagRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Tag not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to find tag", err.Error())
	}

	if err := s.tagRepo.Delete(ctx, id); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete tag", err.Error())
	}
	return nil
}

func toTagResponse(tag *domain.Tag) *dto.TagResponse {
	return &dto.TagResponse{
		ID:        tag.ID,
		Title:     tag.Title,
		CreatedAt: tag.CreatedAt,
		UpdatedAt: tag.UpdatedAt,
	}
}
