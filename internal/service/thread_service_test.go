package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"community-api/internal/domain"
	"community-api/internal/dto"
	"community-api/internal/realtime"
	"community-api/internal/response"
)

type threadServiceFixture struct {
	threadRepo *mockThreadRepository
	pinRepo    *mockPinRepository
	likeRepo   *mockCommentLikeRepository
	notifier   *recordingNotifier
	service    ThreadService
}

func newThreadServiceFixture() *threadServiceFixture {
	f := &threadServiceFixture{
		threadRepo: &mockThreadRepository{},
		pinRepo:    &mockPinRepository{},
		likeRepo:   &mockCommentLikeRepository{},
		notifier:   &recordingNotifier{},
	}
	f.service = NewThreadService(f.threadRepo, f.pinRepo, f.likeRepo, f.notifier, nil, zap.NewNop())
	return f
}

func TestCreateThread(t *testing.T) {
	f := newThreadServiceFixture()
	var created *domain.Thread
	f.threadRepo.CreateFunc = func(ctx context.Context, thread *domain.Thread) error {
		thread.ID = uuid.New()
		created = thread
		return nil
	}

	resp, err := f.service.CreateThread(context.Background(), domain.ThreadKindAnnouncement, &dto.CreateThreadRequest{
		Title:       "Maintenance window",
		Description: "Saturday 02:00",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, domain.ThreadKindAnnouncement, created.Kind)
	assert.Equal(t, "Maintenance window", resp.Title)
	assert.Equal(t, 0, resp.ViewCount)
	assert.False(t, resp.IsPinned)
	assert.NotNil(t, resp.Comments)

	events := f.notifier.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, realtime.KindScope(string(domain.ThreadKindAnnouncement)), events[0].Scope)
	assert.Equal(t, "thread:added", events[0].Event)
}

func TestGetThread(t *testing.T) {
	threadID := uuid.New()
	viewerID := uuid.New()

	t.Run("a question is invisible through the announcement routes", func(t *testing.T) {
		f := newThreadServiceFixture()
		f.threadRepo.FindByIDWithCommentsFunc = func(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
			return &domain.Thread{BaseModel: domain.BaseModel{ID: id}, Kind: domain.ThreadKindQuestion}, nil
		}

		_, err := f.service.GetThread(context.Background(), domain.ThreadKindAnnouncement, threadID, nil)

		appErr := appErrFrom(t, err)
		assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Thread not found", appErr.Message)
	})

	t.Run("pin state reflects the viewer", func(t *testing.T) {
		f := newThreadServiceFixture()
		f.threadRepo.FindByIDWithCommentsFunc = func(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
			return &domain.Thread{BaseModel: domain.BaseModel{ID: id}, Kind: domain.ThreadKindQuestion}, nil
		}
		f.pinRepo.FindByUserAndThreadFunc = func(ctx context.Context, uID, tID uuid.UUID) (*domain.PinnedThread, error) {
			return &domain.PinnedThread{UserID: uID, ThreadID: tID}, nil
		}

		resp, err := f.service.GetThread(context.Background(), domain.ThreadKindQuestion, threadID, &viewerID)

		require.NoError(t, err)
		assert.True(t, resp.IsPinned)
	})

	t.Run("preloaded comments are enriched with like metadata", func(t *testing.T) {
		f := newThreadServiceFixture()
		commentID := uuid.New()
		f.threadRepo.FindByIDWithCommentsFunc = func(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
			return &domain.Thread{
				BaseModel: domain.BaseModel{ID: id},
				Kind:      domain.ThreadKindQuestion,
				Comments: []domain.Comment{
					{BaseModel: domain.BaseModel{ID: commentID}, ThreadID: id, Content: "nice"},
				},
			}, nil
		}
		f.pinRepo.FindByUserAndThreadFunc = func(ctx context.Context, uID, tID uuid.UUID) (*domain.PinnedThread, error) {
			return nil, nil
		}
		f.likeRepo.CountByCommentIDsFunc = func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
			return map[uuid.UUID]int64{commentID: 5}, nil
		}
		f.likeRepo.FindLikedCommentIDsFunc = func(ctx context.Context, uID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
			return map[uuid.UUID]bool{commentID: true}, nil
		}

		resp, err := f.service.GetThread(context.Background(), domain.ThreadKindQuestion, threadID, &viewerID)

		require.NoError(t, err)
		require.Len(t, resp.Comments, 1)
		assert.Equal(t, int64(5), resp.Comments[0].LikeCount)
		assert.True(t, resp.Comments[0].LikedByCurrentUser)
	})
}

func TestListThreads(t *testing.T) {
	viewerID := uuid.New()
	pinnedID := uuid.New()
	otherID := uuid.New()

	f := newThreadServiceFixture()
	f.threadRepo.FindByKindFunc = func(ctx context.Context, kind domain.ThreadKind) ([]*domain.Thread, error) {
		return []*domain.Thread{
			{BaseModel: domain.BaseModel{ID: pinnedID}, Kind: kind},
			{BaseModel: domain.BaseModel{ID: otherID}, Kind: kind},
		}, nil
	}
	f.pinRepo.FindThreadIDsByUserFunc = func(ctx context.Context, uID uuid.UUID) (map[uuid.UUID]bool, error) {
		return map[uuid.UUID]bool{pinnedID: true}, nil
	}

	resps, err := f.service.ListThreads(context.Background(), domain.ThreadKindQuestion, &viewerID)

	require.NoError(t, err)
	require.Len(t, resps, 2)
	assert.True(t, resps[0].IsPinned)
	assert.False(t, resps[1].IsPinned)
}

func TestUpdateThread(t *testing.T) {
	threadID := uuid.New()

	f := newThreadServiceFixture()
	f.threadRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
		return &domain.Thread{
			BaseModel:   domain.BaseModel{ID: id},
			Kind:        domain.ThreadKindAnnouncement,
			Title:       "old title",
			Description: "old description",
		}, nil
	}
	f.threadRepo.UpdateFunc = func(ctx context.Context, thread *domain.Thread) error { return nil }

	newTitle := "new title"
	resp, err := f.service.UpdateThread(context.Background(), domain.ThreadKindAnnouncement, threadID, &dto.UpdateThreadRequest{
		Title: &newTitle,
	})

	require.NoError(t, err)
	assert.Equal(t, "new title", resp.Title)
	assert.Equal(t, "old description", resp.Description)
}

func TestDeleteThread(t *testing.T) {
	threadID := uuid.New()

	f := newThreadServiceFixture()
	f.threadRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
		return &domain.Thread{BaseModel: domain.BaseModel{ID: id}, Kind: domain.ThreadKindQuestion}, nil
	}
	deleted := false
	f.threadRepo.DeleteFunc = func(ctx context.Context, id uuid.UUID) error {
		deleted = true
		return nil
	}

	err := f.service.DeleteThread(context.Background(), domain.ThreadKindQuestion, threadID)

	require.NoError(t, err)
	assert.True(t, deleted)

	events := f.notifier.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, "thread:deleted", events[0].Event)
}

func TestPinThread(t *testing.T) {
	threadID := uuid.New()
	userID := uuid.New()

	t.Run("first pin is recorded", func(t *testing.T) {
		f := newThreadServiceFixture()
		f.threadRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
			return &domain.Thread{BaseModel: domain.BaseModel{ID: id}}, nil
		}
		f.pinRepo.FindByUserAndThreadFunc = func(ctx context.Context, uID, tID uuid.UUID) (*domain.PinnedThread, error) {
			return nil, nil
		}
		var created *domain.PinnedThread
		f.pinRepo.CreateFunc = func(ctx context.Context, pin *domain.PinnedThread) error {
			created = pin
			return nil
		}

		resp, err := f.service.PinThread(context.Background(), threadID, userID)

		require.NoError(t, err)
		assert.True(t, resp.Pinned)
		require.NotNil(t, created)
		assert.Equal(t, threadID, created.ThreadID)
		assert.Equal(t, userID, created.UserID)
	})

	t.Run("pinning twice is a no-op", func(t *testing.T) {
		f := newThreadServiceFixture()
		f.threadRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
			return &domain.Thread{BaseModel: domain.BaseModel{ID: id}}, nil
		}
		f.pinRepo.FindByUserAndThreadFunc = func(ctx context.Context, uID, tID uuid.UUID) (*domain.PinnedThread, error) {
			return &domain.PinnedThread{UserID: uID, ThreadID: tID}, nil
		}
		f.pinRepo.CreateFunc = func(ctx context.Context, pin *domain.PinnedThread) error {
			t.Fatal("Create must not be called for an existing pin")
			return nil
		}

		resp, err := f.service.PinThread(context.Background(), threadID, userID)

		require.NoError(t, err)
		assert.True(t, resp.Pinned)
	})

	t.Run("pinning a missing thread fails", func(t *testing.T) {
		f := newThreadServiceFixture()
		f.threadRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := f.service.PinThread(context.Background(), threadID, userID)

		appErr := appErrFrom(t, err)
		assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
	})
}

func TestUnpinThread(t *testing.T) {
	threadID := uuid.New()
	userID := uuid.New()

	t.Run("removes an existing pin", func(t *testing.T) {
		f := newThreadServiceFixture()
		f.pinRepo.FindByUserAndThreadFunc = func(ctx context.Context, uID, tID uuid.UUID) (*domain.PinnedThread, error) {
			return &domain.PinnedThread{UserID: uID, ThreadID: tID}, nil
		}
		deleted := false
		f.pinRepo.DeleteFunc = func(ctx context.Context, uID, tID uuid.UUID) error {
			deleted = true
			return nil
		}

		resp, err := f.service.UnpinThread(context.Background(), threadID, userID)

		require.NoError(t, err)
		assert.False(t, resp.Pinned)
		assert.True(t, deleted)
	})

	// Unpinning an absent pin errors, in contrast to unliking which does not.
	t.Run("unpinning an absent pin is an error", func(t *testing.T) {
		f := newThreadServiceFixture()
		f.pinRepo.FindByUserAndThreadFunc = func(ctx context.Context, uID, tID uuid.UUID) (*domain.PinnedThread, error) {
			return nil, nil
		}

		_, err := f.service.UnpinThread(context.Background(), threadID, userID)

		appErr := appErrFrom(t, err)
		assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Pin not found", appErr.Message)
	})
}

func TestTogglePin(t *testing.T) {
	threadID := uuid.New()
	userID := uuid.New()

	f := newThreadServiceFixture()
	f.threadRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
		return &domain.Thread{BaseModel: domain.BaseModel{ID: id}}, nil
	}

	var current *domain.PinnedThread
	f.pinRepo.FindByUserAndThreadFunc = func(ctx context.Context, uID, tID uuid.UUID) (*domain.PinnedThread, error) {
		return current, nil
	}
	f.pinRepo.CreateFunc = func(ctx context.Context, pin *domain.PinnedThread) error {
		current = pin
		return nil
	}
	f.pinRepo.DeleteFunc = func(ctx context.Context, uID, tID uuid.UUID) error {
		current = nil
		return nil
	}

	resp, err := f.service.TogglePin(context.Background(), threadID, userID)
	require.NoError(t, err)
	assert.True(t, resp.Pinned)

	resp, err = f.service.TogglePin(context.Background(), threadID, userID)
	require.NoError(t, err)
	assert.False(t, resp.Pinned)
}
