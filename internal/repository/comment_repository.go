package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"community-api/internal/domain"
)

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindByThreadID(ctx context.Context, threadID uuid.UUID) ([]*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	DeleteSubtree(ctx context.Context, rootID uuid.UUID) ([]uuid.UUID, error)
}

// commentRepositoryImpl is the GORM implementation of CommentRepository
type commentRepositoryImpl struct {
	db *gorm.DB
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepositoryImpl{db: db}
}

func (r *commentRepositoryImpl) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByIDWithRelations loads a comment together with its author and thread
func (r *commentRepositoryImpl) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Thread").
		First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByThreadID returns all comments of a thread, newest first, with authors
func (r *commentRepositoryImpl) FindByThreadID(ctx context.Context, threadID uuid.UUID) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("thread_id = ?", threadID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepositoryImpl) Update(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// DeleteSubtree removes a comment, its full descendant closure and every like
// referencing any of them. The whole sequence runs inside one transaction, so
// a reply inserted concurrently either lands before the closure is computed
// (and is deleted with it) or fails its parent lookup afterwards.
//
// The closure is computed by repeated parent-lookup passes until a fixed
// point; rows are then deleted leaves first so no remaining row ever points
// at a deleted parent. Returns the ids of all removed comments.
func (r *commentRepositoryImpl) DeleteSubtree(ctx context.Context, rootID uuid.UUID) ([]uuid.UUID, error) {
	var allIDs []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		closure := map[uuid.UUID]bool{rootID: true}
		for {
			working := make([]uuid.UUID, 0, len(closure))
			for id := range closure {
				working = append(working, id)
			}

			var childIDs []uuid.UUID
			if err := tx.Model(&domain.Comment{}).
				Where("parent_id IN ?", working).
				Pluck("id", &childIDs).Error; err != nil {
				return err
			}

			added := 0
			for _, id := range childIDs {
				if !closure[id] {
					closure[id] = true
					added++
				}
			}
			if added == 0 {
				break
			}
		}

		allIDs = make([]uuid.UUID, 0, len(closure))
		for id := range closure {
			allIDs = append(allIDs, id)
		}

		if err := tx.Where("comment_id IN ?", allIDs).Delete(&domain.CommentLike{}).Error; err != nil {
			return err
		}

		remaining := make(map[uuid.UUID]bool, len(closure))
		for id := range closure {
			remaining[id] = true
		}

		for len(remaining) > 0 {
			working := make([]uuid.UUID, 0, len(remaining))
			for id := range remaining {
				working = append(working, id)
			}

			var rows []domain.Comment
			if err := tx.Select("id", "parent_id").
				Where("id IN ?", working).
				Find(&rows).Error; err != nil {
				return err
			}

			referenced := make(map[uuid.UUID]bool)
			for _, row := range rows {
				if row.ParentID != nil && remaining[*row.ParentID] {
					referenced[*row.ParentID] = true
				}
			}

			leaves := make([]uuid.UUID, 0, len(working))
			for _, id := range working {
				if !referenced[id] {
					leaves = append(leaves, id)
				}
			}
			if len(leaves) == 0 {
				// Cannot happen on a well-formed tree; bail out instead of spinning.
				leaves = working
			}

			if err := tx.Where("id IN ?", leaves).Delete(&domain.Comment{}).Error; err != nil {
				return err
			}
			for _, id := range leaves {
				delete(remaining, id)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return allIDs, nil
}
