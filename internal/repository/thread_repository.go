package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"community-api/internal/domain"
)

// ThreadRepository defines the interface for thread data access
type ThreadRepository interface {
	Create(ctx context.Context, thread *domain.Thread) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Thread, error)
	FindByIDWithComments(ctx context.Context, id uuid.UUID) (*domain.Thread, error)
	FindByKind(ctx context.Context, kind domain.ThreadKind) ([]*domain.Thread, error)
	Update(ctx context.Context, thread *domain.Thread) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}

// threadRepositoryImpl is the GORM implementation of ThreadRepository
type threadRepositoryImpl struct {
	db *gorm.DB
}

// NewThreadRepository creates a new instance of ThreadRepository
func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &threadRepositoryImpl{db: db}
}

func (r *threadRepositoryImpl) Create(ctx context.Context, thread *domain.Thread) error {
	return r.db.WithContext(ctx).Create(thread).Error
}

func (r *threadRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
	var thread domain.Thread
	if err := r.db.WithContext(ctx).First(&thread, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &thread, nil
}

// FindByIDWithComments loads a thread together with its comments and their authors,
// newest comments first
func (r *threadRepositoryImpl) FindByIDWithComments(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
	var thread domain.Thread
	if err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at DESC")
		}).
		Preload("Comments.User").
		First(&thread, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepositoryImpl) FindByKind(ctx context.Context, kind domain.ThreadKind) ([]*domain.Thread, error) {
	var threads []*domain.Thread
	if err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at DESC")
		}).
		Preload("Comments.User").
		Where("kind = ?", kind).
		Order("created_at DESC").
		Find(&threads).Error; err != nil {
		return nil, err
	}
	return threads, nil
}

func (r *threadRepositoryImpl) Update(ctx context.Context, thread *domain.Thread) error {
	return r.db.WithContext(ctx).Save(thread).Error
}

// Delete removes a thread and everything hanging off it: comment likes,
// comments and per-user pins. Runs in a single transaction.
func (r *threadRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&domain.Comment{}).Select("id").Where("thread_id = ?", id)

		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&domain.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("thread_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("thread_id = ?", id).Delete(&domain.PinnedThread{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Thread{}, "id = ?", id).Error
	})
}

// IncrementViewCount bumps the view counter atomically
func (r *threadRepositoryImpl) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Thread{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}
