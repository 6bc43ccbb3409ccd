package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"community-api/internal/domain"
)

// TutorialRepository defines the interface for tutorial data access
type TutorialRepository interface {
	Create(ctx context.Context, tutorial *domain.Tutorial) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Tutorial, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Tutorial, error)
	FindAll(ctx context.Context) ([]*domain.Tutorial, error)
	Update(ctx context.Context, tutorial *domain.Tutorial) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}

type tutorialRepositoryImpl struct {
	db *gorm.DB
}

// NewTutorialRepository creates a new instance of TutorialRepository
func NewTutorialRepository(db *gorm.DB) TutorialRepository {
	return &tutorialRepositoryImpl{db: db}
}

func (r *tutorialRepositoryImpl) Create(ctx context.Context, tutorial *domain.Tutorial) error {
	return r.db.WithContext(ctx).Create(tutorial).Error
}

func (r *tutorialRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tutorial, error) {
	var tutorial domain.Tutorial
	if err := r.db.WithContext(ctx).First(&tutorial, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tutorial, nil
}

func (r *tutorialRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*domain.Tutorial, error) {
	var tutorial domain.Tutorial
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tutorial).Error; err != nil {
		return nil, err
	}
	return &tutorial, nil
}

func (r *tutorialRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Tutorial, error) {
	var tutorials []*domain.Tutorial
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&tutorials).Error; err != nil {
		return nil, err
	}
	return tutorials, nil
}

func (r *tutorialRepositoryImpl) Update(ctx context.Context, tutorial *domain.Tutorial) error {
	return r.db.WithContext(ctx).Save(tutorial).Error
}

func (r *tutorialRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Tutorial{}, "id = ?", id).Error
}

// IncrementViewCount bumps the view counter atomically in the database
func (r *tutorialRepositoryImpl) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Tutorial{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}
