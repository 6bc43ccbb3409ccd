package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"community-api/internal/domain"
)

// PinRepository defines the interface for pinned thread data access
type PinRepository interface {
	Create(ctx context.Context, pin *domain.PinnedThread) error
	FindByUserAndThread(ctx context.Context, userID, threadID uuid.UUID) (*domain.PinnedThread, error)
	Delete(ctx context.Context, userID, threadID uuid.UUID) error
	FindThreadIDsByUser(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error)
}

type pinRepositoryImpl struct {
	db *gorm.DB
}

// NewPinRepository creates a new instance of PinRepository
func NewPinRepository(db *gorm.DB) PinRepository {
	return &pinRepositoryImpl{db: db}
}

func (r *pinRepositoryImpl) Create(ctx context.Context, pin *domain.PinnedThread) error {
	return r.db.WithContext(ctx).Create(pin).Error
}

// FindByUserAndThread returns nil, nil when the thread is not pinned by the user
func (r *pinRepositoryImpl) FindByUserAndThread(ctx context.Context, userID, threadID uuid.UUID) (*domain.PinnedThread, error) {
	var pin domain.PinnedThread
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND thread_id = ?", userID, threadID).
		First(&pin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pin, nil
}

func (r *pinRepositoryImpl) Delete(ctx context.Context, userID, threadID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND thread_id = ?", userID, threadID).
		Delete(&domain.PinnedThread{}).Error
}

// FindThreadIDsByUser returns every thread id the user has pinned as a set
func (r *pinRepositoryImpl) FindThreadIDsByUser(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&domain.PinnedThread{}).
		Where("user_id = ?", userID).
		Pluck("thread_id", &ids).Error; err != nil {
		return nil, err
	}

	pinned := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		pinned[id] = true
	}
	return pinned, nil
}
