package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"community-api/internal/domain"
	"community-api/internal/dto"
	"community-api/internal/metrics"
	"community-api/internal/realtime"
	"community-api/internal/repository"
	"community-api/internal/response"
)

// CommentService defines the interface for comment business logic
type CommentService interface {
	CreateComment(ctx context.Context, threadID, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, threadID uuid.UUID, viewerID *uuid.UUID) ([]dto.CommentResponse, error)
	UpdateComment(ctx context.Context, commentID, userID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID, userID uuid.UUID) (*dto.DeleteCommentResponse, error)
	LikeComment(ctx context.Context, commentID, userID uuid.UUID) (*dto.LikeStatusResponse, error)
	UnlikeComment(ctx context.Context, commentID, userID uuid.UUID) (*dto.LikeStatusResponse, error)
	ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (*dto.LikeStatusResponse, error)
}

// commentServiceImpl is the implementation of CommentService
type commentServiceImpl struct {
	commentRepo repository.CommentRepository
	likeRepo    repository.CommentLikeRepository
	threadRepo  repository.ThreadRepository
	userRepo    repository.UserRepository
	notifier    realtime.Notifier
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	likeRepo repository.CommentLikeRepository,
	threadRepo repository.ThreadRepository,
	userRepo repository.UserRepository,
	notifier realtime.Notifier,
	m *metrics.Metrics,
	logger *zap.Logger,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		threadRepo:  threadRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		metrics:     m,
		logger:      logger,
	}
}

// CreateComment adds a comment to a thread, optionally as a reply to an
// existing comment on the same thread
func (s *commentServiceImpl) CreateComment(ctx context.Context, threadID, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	// Verify thread exists
	if _, err := s.threadRepo.FindByID(ctx, threadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Thread not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify thread", err.Error())
	}

	// Verify user exists
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify user", err.Error())
	}

	// A parent must exist and live on the same thread. A parent on another
	// thread is reported exactly like a missing one.
	if req.ParentCommentID != nil {
		parent, err := s.commentRepo.FindByID(ctx, *req.ParentCommentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewAppError(response.ErrCodeNotFound, "Parent comment not found", "")
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify parent comment", err.Error())
		}
		if parent.ThreadID != threadID {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Parent comment not found", "")
		}
	}

	comment := &domain.Comment{
		ThreadID: threadID,
		UserID:   userID,
		ParentID: req.ParentCommentID,
		Content:  req.Content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		s.logger.Error("Failed to create comment",
			zap.String("thread_id", threadID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create comment", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementCommentCreated()
	}

	resp := toCommentResponse(comment, user, 0, false)
	s.notifier.Publish(realtime.ThreadScope(threadID.String()), "comment:added", resp)

	s.logger.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("thread_id", threadID.String()))

	return resp, nil
}

// ListComments returns a thread's comments enriched with like counts and,
// when a viewer is given, whether the viewer liked each one
func (s *commentServiceImpl) ListComments(ctx context.Context, threadID uuid.UUID, viewerID *uuid.UUID) ([]dto.CommentResponse, error) {
	if _, err := s.threadRepo.FindByID(ctx, threadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Thread not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify thread", err.Error())
	}

	comments, err := s.commentRepo.FindByThreadID(ctx, threadID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list comments", err.Error())
	}

	return s.enrichComments(ctx, comments, viewerID)
}

// UpdateComment replaces a comment's content. Only the author or an admin may
// update; a failed ownership check is reported as Forbidden and rendered as
// NotFound at the HTTP boundary.
func (s *commentServiceImpl) UpdateComment(ctx context.Context, commentID, userID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.FindByIDWithRelations(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Comment not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to find comment", err.Error())
	}

	if err := s.authorizeCommentMutation(ctx, comment, userID); err != nil {
		return nil, err
	}

	comment.Content = req.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		s.logger.Error("Failed to update comment",
			zap.String("comment_id", commentID.String()),
			zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update comment", err.Error())
	}

	likeCount, likedBySelf, err := s.likeStateFor(ctx, commentID, userID)
	if err != nil {
		return nil, err
	}

	resp := toCommentResponse(comment, &comment.User, likeCount, likedBySelf)
	s.notifier.Publish(realtime.ThreadScope(comment.ThreadID.String()), "comment:updated", resp)

	return resp, nil
}

// DeleteComment removes a comment together with its full reply subtree and
// every like on any comment in that subtree. Returns all removed ids.
func (s *commentServiceImpl) DeleteComment(ctx context.Context, commentID, userID uuid.UUID) (*dto.DeleteCommentResponse, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Comment not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to find comment", err.Error())
	}

	if err := s.authorizeCommentMutation(ctx, comment, userID); err != nil {
		return nil, err
	}

	deletedIDs, err := s.commentRepo.DeleteSubtree(ctx, commentID)
	if err != nil {
		s.logger.Error("Failed to delete comment subtree",
			zap.String("comment_id", commentID.String()),
			zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to delete comment", err.Error())
	}

	resp := &dto.DeleteCommentResponse{
		Message:    "Comment deleted",
		DeletedIDs: deletedIDs,
	}
	s.notifier.Publish(realtime.ThreadScope(comment.ThreadID.String()), "comment:deleted", resp)

	s.logger.Info("Comment subtree deleted",
		zap.String("comment_id", commentID.String()),
		zap.Int("deleted_count", len(deletedIDs)))

	return resp, nil
}

// LikeComment records a like; liking an already liked comment is a no-op.
// Both the comment and the liking user must exist.
func (s *commentServiceImpl) LikeComment(ctx context.Context, commentID, userID uuid.UUID) (*dto.LikeStatusResponse, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Comment not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to find comment", err.Error())
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify user", err.Error())
	}

	existing, err := s.likeRepo.FindByUserAndComment(ctx, userID, commentID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check like", err.Error())
	}
	if existing != nil {
		return &dto.LikeStatusResponse{Message: "Comment already liked", Liked: true}, nil
	}

	like := &domain.CommentLike{CommentID: commentID, UserID: userID}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to like comment", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementCommentLiked()
	}
	s.notifier.Publish(realtime.ThreadScope(comment.ThreadID.String()), "comment:liked", map[string]interface{}{
		"commentId": commentID,
		"userId":    userID,
	})

	return &dto.LikeStatusResponse{Message: "Comment liked", Liked: true}, nil
}

// UnlikeComment removes a like; removing an absent like succeeds and simply
// reports the unliked state, even when the comment itself no longer exists
func (s *commentServiceImpl) UnlikeComment(ctx context.Context, commentID, userID uuid.UUID) (*dto.LikeStatusResponse, error) {
	existing, err := s.likeRepo.FindByUserAndComment(ctx, userID, commentID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check like", err.Error())
	}
	if existing == nil {
		return &dto.LikeStatusResponse{Message: "Comment was not liked", Liked: false}, nil
	}

	if err := s.likeRepo.Delete(ctx, userID, commentID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to unlike comment", err.Error())
	}

	// The like row implies the comment existed; the lookup only scopes the event
	if comment, err := s.commentRepo.FindByID(ctx, commentID); err == nil {
		s.notifier.Publish(realtime.ThreadScope(comment.ThreadID.String()), "comment:unliked", map[string]interface{}{
			"commentId": commentID,
			"userId":    userID,
		})
	}

	return &dto.LikeStatusResponse{Message: "Comment unliked", Liked: false}, nil
}

// ToggleLike flips the like state and reports the resulting state
func (s *commentServiceImpl) ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (*dto.LikeStatusResponse, error) {
	existing, err := s.likeRepo.FindByUserAndComment(ctx, userID, commentID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check like", err.Error())
	}
	if existing != nil {
		return s.UnlikeComment(ctx, commentID, userID)
	}
	return s.LikeComment(ctx, commentID, userID)
}

// authorizeCommentMutation allows the comment's author and admins. The
// Forbidden code is mapped to 404 at the HTTP boundary so callers cannot
// distinguish a foreign comment from a missing one.
func (s *commentServiceImpl) authorizeCommentMutation(ctx context.Context, comment *domain.Comment, userID uuid.UUID) error {
	if comment.UserID == userID {
		return nil
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to verify user", err.Error())
	}
	if !user.IsAdmin() {
		return response.NewAppError(response.ErrCodeForbidden, "Comment not found", "")
	}
	return nil
}

// likeStateFor fetches the like count of one comment and whether userID liked it
func (s *commentServiceImpl) likeStateFor(ctx context.Context, commentID, userID uuid.UUID) (int64, bool, error) {
	counts, err := s.likeRepo.CountByCommentIDs(ctx, []uuid.UUID{commentID})
	if err != nil {
		return 0, false, response.NewAppError(response.ErrCodeInternal, "Failed to count likes", err.Error())
	}
	existing, err := s.likeRepo.FindByUserAndComment(ctx, userID, commentID)
	if err != nil {
		return 0, false, response.NewAppError(response.ErrCodeInternal, "Failed to check like", err.Error())
	}
	return counts[commentID], existing != nil, nil
}

// enrichComments resolves like counts in one grouped query and, when a
// viewer is present, the viewer's likes in a second one
func (s *commentServiceImpl) enrichComments(ctx context.Context, comments []*domain.Comment, viewerID *uuid.UUID) ([]dto.CommentResponse, error) {
	ids := make([]uuid.UUID, 0, len(comments))
	for _, comment := range comments {
		ids = append(ids, comment.ID)
	}

	counts, err := s.likeRepo.CountByCommentIDs(ctx, ids)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count likes", err.Error())
	}

	liked := map[uuid.UUID]bool{}
	if viewerID != nil {
		liked, err = s.likeRepo.FindLikedCommentIDs(ctx, *viewerID, ids)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve viewer likes", err.Error())
		}
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, *toCommentResponse(comment, &comment.User, counts[comment.ID], liked[comment.ID]))
	}
	return responses, nil
}

// toCommentResponse converts a domain comment into its API shape
func toCommentResponse(comment *domain.Comment, user *domain.User, likeCount int64, likedBySelf bool) *dto.CommentResponse {
	resp := &dto.CommentResponse{
		CommentID:          comment.ID,
		ThreadID:           comment.ThreadID,
		UserID:             comment.UserID,
		ParentCommentID:    comment.ParentID,
		Content:            comment.Content,
		LikeCount:          likeCount,
		LikedByCurrentUser: likedBySelf,
		CreatedAt:          comment.CreatedAt,
		UpdatedAt:          comment.UpdatedAt,
	}
	if user != nil && user.ID != uuid.Nil {
		resp.User = &dto.CommentAuthor{
			ID:        user.ID,
			Username:  user.Username,
			Firstname: user.Firstname,
			Lastname:  user.Lastname,
			Email:     user.Email,
		}
	}
	return resp
}
