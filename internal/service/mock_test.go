package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"community-api/internal/domain"
)

// mockThreadRepository is a function-field mock of repository.ThreadRepository
type mockThreadRepository struct {
	CreateFunc                func(ctx context.Context, thread *domain.Thread) error
	FindByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.Thread, error)
	FindByIDWithCommentsFunc  func(ctx context.Context, id uuid.UUID) (*domain.Thread, error)
	FindByKindFunc            func(ctx context.Context, kind domain.ThreadKind) ([]*domain.Thread, error)
	UpdateFunc                func(ctx context.Context, thread *domain.Thread) error
	DeleteFunc                func(ctx context.Context, id uuid.UUID) error
	IncrementViewCountFunc    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockThreadRepository) Create(ctx context.Context, thread *domain.Thread) error {
	return m.CreateFunc(ctx, thread)
}

func (m *mockThreadRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockThreadRepository) FindByIDWithComments(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
	return m.FindByIDWithCommentsFunc(ctx, id)
}

func (m *mockThreadRepository) FindByKind(ctx context.Context, kind domain.ThreadKind) ([]*domain.Thread, error) {
	return m.FindByKindFunc(ctx, kind)
}

func (m *mockThreadRepository) Update(ctx context.Context, thread *domain.Thread) error {
	return m.UpdateFunc(ctx, thread)
}

func (m *mockThreadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockThreadRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return m.IncrementViewCountFunc(ctx, id)
}

// mockCommentRepository is a function-field mock of repository.CommentRepository
type mockCommentRepository struct {
	CreateFunc              func(ctx context.Context, comment *domain.Comment) error
	FindByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindByIDWithRelFunc     func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindByThreadIDFunc      func(ctx context.Context, threadID uuid.UUID) ([]*domain.Comment, error)
	UpdateFunc              func(ctx context.Context, comment *domain.Comment) error
	DeleteSubtreeFunc       func(ctx context.Context, rootID uuid.UUID) ([]uuid.UUID, error)
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return m.CreateFunc(ctx, comment)
}

func (m *mockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockCommentRepository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return m.FindByIDWithRelFunc(ctx, id)
}

func (m *mockCommentRepository) FindByThreadID(ctx context.Context, threadID uuid.UUID) ([]*domain.Comment, error) {
	return m.FindByThreadIDFunc(ctx, threadID)
}

func (m *mockCommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	return m.UpdateFunc(ctx, comment)
}

func (m *mockCommentRepository) DeleteSubtree(ctx context.Context, rootID uuid.UUID) ([]uuid.UUID, error) {
	return m.DeleteSubtreeFunc(ctx, rootID)
}

// mockCommentLikeRepository is a function-field mock of repository.CommentLikeRepository
type mockCommentLikeRepository struct {
	CreateFunc              func(ctx context.Context, like *domain.CommentLike) error
	FindByUserAndCommentFunc func(ctx context.Context, userID, commentID uuid.UUID) (*domain.CommentLike, error)
	DeleteFunc              func(ctx context.Context, userID, commentID uuid.UUID) error
	CountByCommentIDsFunc   func(ctx context.Context, commentIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	FindLikedCommentIDsFunc func(ctx context.Context, userID uuid.UUID, commentIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

func (m *mockCommentLikeRepository) Create(ctx context.Context, like *domain.CommentLike) error {
	return m.CreateFunc(ctx, like)
}

func (m *mockCommentLikeRepository) FindByUserAndComment(ctx context.Context, userID, commentID uuid.UUID) (*domain.CommentLike, error) {
	return m.FindByUserAndCommentFunc(ctx, userID, commentID)
}

func (m *mockCommentLikeRepository) Delete(ctx context.Context, userID, commentID uuid.UUID) error {
	return m.DeleteFunc(ctx, userID, commentID)
}

func (m *mockCommentLikeRepository) CountByCommentIDs(ctx context.Context, commentIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return m.CountByCommentIDsFunc(ctx, commentIDs)
}

func (m *mockCommentLikeRepository) FindLikedCommentIDs(ctx context.Context, userID uuid.UUID, commentIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return m.FindLikedCommentIDsFunc(ctx, userID, commentIDs)
}

// mockPinRepository is a function-field mock of repository.PinRepository
type mockPinRepository struct {
	CreateFunc              func(ctx context.Context, pin *domain.PinnedThread) error
	FindByUserAndThreadFunc func(ctx context.Context, userID, threadID uuid.UUID) (*domain.PinnedThread, error)
	DeleteFunc              func(ctx context.Context, userID, threadID uuid.UUID) error
	FindThreadIDsByUserFunc func(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error)
}

func (m *mockPinRepository) Create(ctx context.Context, pin *domain.PinnedThread) error {
	return m.CreateFunc(ctx, pin)
}

func (m *mockPinRepository) FindByUserAndThread(ctx context.Context, userID, threadID uuid.UUID) (*domain.PinnedThread, error) {
	return m.FindByUserAndThreadFunc(ctx, userID, threadID)
}

func (m *mockPinRepository) Delete(ctx context.Context, userID, threadID uuid.UUID) error {
	return m.DeleteFunc(ctx, userID, threadID)
}

func (m *mockPinRepository) FindThreadIDsByUser(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	return m.FindThreadIDsByUserFunc(ctx, userID)
}

// mockUserRepository is a function-field mock of repository.UserRepository
type mockUserRepository struct {
	CreateFunc                  func(ctx context.Context, user *domain.User) error
	FindByIDFunc                func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmailFunc             func(ctx context.Context, email string) (*domain.User, error)
	FindByUsernameFunc          func(ctx context.Context, username string) (*domain.User, error)
	FindByVerificationTokenFunc func(ctx context.Context, token string) (*domain.User, error)
	FindByResetTokenFunc        func(ctx context.Context, token string) (*domain.User, error)
	FindAllFunc                 func(ctx context.Context) ([]*domain.User, error)
	UpdateFunc                  func(ctx context.Context, user *domain.User) error
	ClearExpiredTokensFunc      func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	return m.CreateFunc(ctx, user)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.FindByEmailFunc(ctx, email)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.FindByUsernameFunc(ctx, username)
}

func (m *mockUserRepository) FindByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	return m.FindByVerificationTokenFunc(ctx, token)
}

func (m *mockUserRepository) FindByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return m.FindByResetTokenFunc(ctx, token)
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	return m.FindAllFunc(ctx)
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	return m.UpdateFunc(ctx, user)
}

func (m *mockUserRepository) ClearExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	return m.ClearExpiredTokensFunc(ctx, now)
}

// recordingNotifier captures published events for assertions
type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	Scope   string
	Event   string
	Payload interface{}
}

func (n *recordingNotifier) Publish(scope string, event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{Scope: scope, Event: event, Payload: payload})
}

func (n *recordingNotifier) recorded() []recordedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]recordedEvent, len(n.events))
	copy(out, n.events)
	return out
}
