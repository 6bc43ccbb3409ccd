package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"community-api/internal/domain"
)

// TagRepository defines the interface for tag data access
type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error)
	FindByTitle(ctx context.Context, title string) (*domain.Tag, error)
	FindAll(ctx context.Context) ([]*domain.Tag, error)
	Update(ctx context.Context, tag *domain.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type tagRepositoryImpl struct {
	db *gorm.DB
}

// NewTagRepository creates a new instance of TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepositoryImpl{db: db}
}

func (r *tagRepositoryImpl) Create(ctx context.Context, tag *domain.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	var tag domain.Tag
	if err := r.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepositoryImpl) FindByTitle(ctx context.Context, title string) (*domain.Tag, error) {
	var tag domain.Tag
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepositoryImpl) Update(ctx context.Context, tag *domain.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *tagRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Tag{}, "id = ?", id).Error
}
