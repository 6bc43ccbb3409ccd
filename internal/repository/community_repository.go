package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"community-api/internal/domain"
)

// CommunityRepository defines the interface for community data access
type CommunityRepository interface {
	Create(ctx context.Context, community *domain.Community) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Community, error)
	FindAll(ctx context.Context) ([]*domain.Community, error)
	Update(ctx context.Context, community *domain.Community) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type communityRepositoryImpl struct {
	db *gorm.DB
}

// NewCommunityRepository creates a new instance of CommunityRepository
func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepositoryImpl{db: db}
}

func (r *communityRepositoryImpl) Create(ctx context.Context, community *domain.Community) error {
	return r.db.WithContext(ctx).Create(community).Error
}

func (r *communityRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Community, error) {
	var community domain.Community
	if err := r.db.WithContext(ctx).First(&community, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *communityRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Community, error) {
	var communities []*domain.Community
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&communities).Error; err != nil {
		return nil, err
	}
	return communities, nil
}

func (r *communityRepositoryImpl) Update(ctx context.Context, community *domain.Community) error {
	return r.db.WithContext(ctx).Save(community).Error
}

func (r *communityRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Community{}, "id = ?", id).Error
}
