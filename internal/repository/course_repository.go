package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"community-api/internal/domain"
)

// CourseRepository defines the interface for course data access
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	FindAll(ctx context.Context) ([]*domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type courseRepositoryImpl struct {
	db *gorm.DB
}

// NewCourseRepository creates a new instance of CourseRepository
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepositoryImpl{db: db}
}

func (r *courseRepositoryImpl) Create(ctx context.Context, course *domain.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	if err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Course, error) {
	var courses []*domain.Course
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepositoryImpl) Update(ctx context.Context, course *domain.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Course{}, "id = ?", id).Error
}
