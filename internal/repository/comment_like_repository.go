package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"community-api/internal/domain"
)

// CommentLikeRepository defines the interface for comment like data access
type CommentLikeRepository interface {
	Create(ctx context.Context, like *domain.CommentLike) error
	FindByUserAndComment(ctx context.Context, userID, commentID uuid.UUID) (*domain.CommentLike, error)
	Delete(ctx context.Context, userID, commentID uuid.UUID) error
	CountByCommentIDs(ctx context.Context, commentIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	FindLikedCommentIDs(ctx context.Context, userID uuid.UUID, commentIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type commentLikeRepositoryImpl struct {
	db *gorm.DB
}

// NewCommentLikeRepository creates a new instance of CommentLikeRepository
func NewCommentLikeRepository(db *gorm.DB) CommentLikeRepository {
	return &commentLikeRepositoryImpl{db: db}
}

func (r *commentLikeRepositoryImpl) Create(ctx context.Context, like *domain.CommentLike) error {
	return r.db.WithContext(ctx).Create(like).Error
}

// FindByUserAndComment returns nil, nil when no like exists
func (r *commentLikeRepositoryImpl) FindByUserAndComment(ctx context.Context, userID, commentID uuid.UUID) (*domain.CommentLike, error) {
	var like domain.CommentLike
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &like, nil
}

func (r *commentLikeRepositoryImpl) Delete(ctx context.Context, userID, commentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&domain.CommentLike{}).Error
}

// CountByCommentIDs returns like counts for the given comments in one grouped
// query. Comments without likes are simply absent from the result map.
func (r *commentLikeRepositoryImpl) CountByCommentIDs(ctx context.Context, commentIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(commentIDs))
	if len(commentIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		CommentID uuid.UUID
		Count     int64
	}
	if err := r.db.WithContext(ctx).
		Model(&domain.CommentLike{}).
		Select("comment_id, COUNT(*) as count").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.CommentID] = row.Count
	}
	return counts, nil
}

// FindLikedCommentIDs returns the subset of commentIDs liked by the user as a set
func (r *commentLikeRepositoryImpl) FindLikedCommentIDs(ctx context.Context, userID uuid.UUID, commentIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool, len(commentIDs))
	if len(commentIDs) == 0 {
		return liked, nil
	}

	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&domain.CommentLike{}).
		Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Pluck("comment_id", &ids).Error; err != nil {
		return nil, err
	}

	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
