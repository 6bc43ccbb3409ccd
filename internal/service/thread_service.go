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

// ThreadService defines the interface for announcement/question business logic
type ThreadService interface {
	CreateThread(ctx context.Context, kind domain.ThreadKind, req *dto.CreateThreadRequest) (*dto.ThreadResponse, error)
	GetThread(ctx context.Context, kind domain.ThreadKind, threadID uuid.UUID, viewerID *uuid.UUID) (*dto.ThreadResponse, error)
	ListThreads(ctx context.Context, kind domain.ThreadKind, viewerID *uuid.UUID) ([]dto.ThreadResponse, error)
	UpdateThread(ctx context.Context, kind domain.ThreadKind, threadID uuid.UUID, req *dto.UpdateThreadRequest) (*dto.ThreadResponse, error)
	DeleteThread(ctx context.Context, kind domain.ThreadKind, threadID uuid.UUID) error
	IncrementViewCount(ctx context.Context, kind domain.ThreadKind, threadID uuid.UUID) error
	PinThread(ctx context.Context, threadID, userID uuid.UUID) (*dto.PinStatusResponse, error)
	UnpinThread(ctx context.Context, threadID, userID uuid.UUID) (*dto.PinStatusResponse, error)
	TogglePin(ctx context.Context, threadID, userID uuid.UUID) (*dto.PinStatusResponse, error)
}

// threadServiceImpl is the implementation of ThreadService
type threadServiceImpl struct {
	threadRepo repository.ThreadRepository
	pinRepo    repository.PinRepository
	likeRepo   repository.CommentLikeRepository
	notifier   realtime.Notifier
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewThreadService creates a new instance of ThreadService
func NewThreadService(
	threadRepo repository.ThreadRepository,
	pinRepo repository.PinRepository,
	likeRepo repository.CommentLikeRepository,
	notifier realtime.Notifier,
	m *metrics.Metrics,
	logger *zap.Logger,
) ThreadService {
	return &threadServiceImpl{
		threadRepo: threadRepo,
		pinRepo:    pinRepo,
		likeRepo:   likeRepo,
		notifier:   notifier,
		metrics:    m,
		logger:     logger,
	}
}

// CreateThread creates an announcement or question. The handler layer
// restricts this to admins.
func (s *threadServiceImpl) CreateThread(ctx context.Context, kind domain.ThreadKind, req *dto.CreateThreadRequest) (*dto.ThreadResponse, error) {
	thread := &domain.Thread{
		Kind:        kind,
		Title:       req.Title,
		Description: req.Description,
	}

	if err := s.threadRepo.Create(ctx, thread); err != nil {
		s.logger.Error("Failed to create thread",
			zap.String("kind", string(kind)),
			zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create thread", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementThreadCreated(string(kind))
	}

	resp := s.toThreadResponse(ctx, thread, nil, false)
	s.notifier.Publish(realtime.KindScope(string(kind)), "thread:added", resp)

	s.logger.Info("Thread created",
		zap.String("thread_id", thread.ID.String()),
		zap.String("kind", string(kind)))

	return resp, nil
}

// GetThread returns one thread with its enriched comments. IsPinned reflects
// the viewer when one is present.
func (s *threadServiceImpl) GetThread(ctx context.Context, kind domain.ThreadKind, threadID uuid.UUID, viewerID *uuid.UUID) (*dto.ThreadResponse, error) {
	thread, err := s.findThreadOfKind(ctx, kind, threadID, true)
	if err != nil {
		return nil, err
	}

	isPinned := false
	if viewerID != nil {
		pin, err := s.pinRepo.FindByUserAndThread(ctx, *viewerID, threadID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve pin state", err.Error())
		}
		isPinned = pin != nil
	}

	return s.toThreadResponse(ctx, thread, viewerID, isPinned), nil
}

// ListThreads returns all threads of a kind, newest first, each with
// enriched comments and the viewer's pin state
func (s *threadServiceImpl) ListThreads(ctx context.Context, kind domain.ThreadKind, viewerID *uuid.UUID) ([]dto.ThreadResponse, error) {
	threads, err := s.threadRepo.FindByKind(ctx, kind)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list threads", err.Error())
	}

	pinned := map[uuid.UUID]bool{}
	if viewerID != nil {
		pinned, err = s.pinRepo.FindThreadIDsByUser(ctx, *viewerID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve pin state", err.Error())
		}
	}

	responses := make([]dto.ThreadResponse, 0, len(threads))
	for _, thread := range threads {
		responses = append(responses, *s.toThreadResponse(ctx, thread, viewerID, pinned[thread.ID]))
	}
	return responses, nil
}

// UpdateThread applies a partial update to title and description
func (s *threadServiceImpl) UpdateThread(ctx context.Context, kind domain.ThreadKind, threadID uuid.UUID, req *dto.UpdateThreadRequest) (*dto.ThreadResponse, error) {
	thread, err := s.findThreadOfKind(ctx, kind, threadID, false)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		thread.Title = *req.Title
	}
	if req.Description != nil {
		thread.Description = *req.Description
	}

	if err := s.threadRepo.Update(ctx, thread); err != nil {
		s.logger.Error("Failed to update thread",
			zap.String("thread_id", threadID.String()),
			zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update thread", err.Error())
	}

	resp := s.toThreadResponse(ctx, thread, nil, false)
	s.notifier.Publish(realtime.KindScope(string(kind)), "thread:updated", resp)

	return resp, nil
}

// DeleteThread removes a thread and cascades to its comments, their likes
// and every pin referencing it
func (s *threadServiceImpl) DeleteThread(ctx context.Context, kind domain.ThreadKind, threadID uuid.UUID) error {
	if _, err := s.findThreadOfKind(ctx, kind, threadID, false); err != nil {
		return err
	}

	if err := s.threadRepo.Delete(ctx, threadID); err != nil {
		s.logger.Error("Failed to delete thread",
			zap.String("thread_id", threadID.String()),
			zap.Error(err))
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete thread", err.Error())
	}

	s.notifier.Publish(realtime.KindScope(string(kind)), "thread:deleted", map[string]interface{}{
		"threadId": threadID,
	})

	s.logger.Info("Thread deleted", zap.String("thread_id", threadID.String()))
	return nil
}

// IncrementViewCount bumps the thread's view counter
func (s *threadServiceImpl) IncrementViewCount(ctx context.Context, kind domain.ThreadKind, threadID uuid.UUID) error {
	if _, err := s.findThreadOfKind(ctx, kind, threadID, false); err != nil {
		return err
	}

	if err := s.threadRepo.IncrementViewCount(ctx, threadID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to increment view count", err.Error())
	}
	return nil
}

// PinThread bookmarks a thread for the user; pinning an already pinned
// thread is a no-op
func (s *threadServiceImpl) PinThread(ctx context.Context, threadID, userID uuid.UUID) (*dto.PinStatusResponse, error) {
	if _, err := s.threadRepo.FindByID(ctx, threadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Thread not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify thread", err.Error())
	}

	existing, err := s.pinRepo.FindByUserAndThread(ctx, userID, threadID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check pin", err.Error())
	}
	if existing != nil {
		return &dto.PinStatusResponse{Message: "Thread already pinned", Pinned: true}, nil
	}

	pin := &domain.PinnedThread{UserID: userID, ThreadID: threadID}
	if err := s.pinRepo.Create(ctx, pin); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to pin thread", err.Error())
	}

	return &dto.PinStatusResponse{Message: "Thread pinned", Pinned: true}, nil
}

// UnpinThread removes the user's pin. Unlike unliking, unpinning a thread
// that is not pinned is an error.
func (s *threadServiceImpl) UnpinThread(ctx context.Context, threadID, userID uuid.UUID) (*dto.PinStatusResponse, error) {
	existing, err := s.pinRepo.FindByUserAndThread(ctx, userID, threadID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check pin", err.Error())
	}
	if existing == nil {
		return nil, response.NewAppError(response.ErrCodeNotFound, "Pin not found", "")
	}

	if err := s.pinRepo.Delete(ctx, userID, threadID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to unpin thread", err.Error())
	}

	return &dto.PinStatusResponse{Message: "Thread unpinned", Pinned: false}, nil
}

// TogglePin flips the pin state and reports the resulting state
func (s *threadServiceImpl) TogglePin(ctx context.Context, threadID, userID uuid.UUID) (*dto.PinStatusResponse, error) {
	existing, err := s.pinRepo.FindByUserAndThread(ctx, userID, threadID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check pin", err.Error())
	}
	if existing != nil {
		return s.UnpinThread(ctx, threadID, userID)
	}
	return s.PinThread(ctx, threadID, userID)
}

// findThreadOfKind loads a thread and hides threads of the other kind so
// announcement routes cannot address questions and vice versa
func (s *threadServiceImpl) findThreadOfKind(ctx context.Context, kind domain.ThreadKind, threadID uuid.UUID, withComments bool) (*domain.Thread, error) {
	var (
		thread *domain.Thread
		err    error
	)
	if withComments {
		thread, err = s.threadRepo.FindByIDWithComments(ctx, threadID)
	} else {
		thread, err = s.threadRepo.FindByID(ctx, threadID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Thread not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to find thread", err.Error())
	}
	if thread.Kind != kind {
		return nil, response.NewAppError(response.ErrCodeNotFound, "Thread not found", "")
	}
	return thread, nil
}

// toThreadResponse converts a thread and enriches its preloaded comments
func (s *threadServiceImpl) toThreadResponse(ctx context.Context, thread *domain.Thread, viewerID *uuid.UUID, isPinned bool) *dto.ThreadResponse {
	comments := make([]dto.CommentResponse, 0, len(thread.Comments))
	if len(thread.Comments) > 0 {
		ids := make([]uuid.UUID, 0, len(thread.Comments))
		for _, comment := range thread.Comments {
			ids = append(ids, comment.ID)
		}

		counts, err := s.likeRepo.CountByCommentIDs(ctx, ids)
		if err != nil {
			s.logger.Error("Failed to count likes for thread", zap.Error(err))
			counts = map[uuid.UUID]int64{}
		}

		liked := map[uuid.UUID]bool{}
		if viewerID != nil {
			liked, err = s.likeRepo.FindLikedCommentIDs(ctx, *viewerID, ids)
			if err != nil {
				s.logger.Error("Failed to resolve viewer likes for thread", zap.Error(err))
				liked = map[uuid.UUID]bool{}
			}
		}

		for i := range thread.Comments {
			comment := &thread.Comments[i]
			comments = append(comments, *toCommentResponse(comment, &comment.User, counts[comment.ID], liked[comment.ID]))
		}
	}

	return &dto.ThreadResponse{
		ID:          thread.ID,
		Kind:        thread.Kind,
		Title:       thread.Title,
		Description: thread.Description,
		ViewCount:   thread.ViewCount,
		IsPinned:    isPinned,
		Comments:    comments,
		CreatedAt:   thread.CreatedAt,
		UpdatedAt:   thread.UpdatedAt,
	}
}
