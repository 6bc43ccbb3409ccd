package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"community-api/internal/domain"
)

func TestThreadRepository_FindByKind(t *testing.T) {
	db := newTestDB(t)
	repo := NewThreadRepository(db)
	seedThread(t, db, domain.ThreadKindAnnouncement, "release")
	seedThread(t, db, domain.ThreadKindQuestion, "how do I")
	seedThread(t, db, domain.ThreadKindQuestion, "why does")

	questions, err := repo.FindByKind(testCtx(), domain.ThreadKindQuestion)
	require.NoError(t, err)
	assert.Len(t, questions, 2)

	announcements, err := repo.FindByKind(testCtx(), domain.ThreadKindAnnouncement)
	require.NoError(t, err)
	require.Len(t, announcements, 1)
	assert.Equal(t, "release", announcements[0].Title)
}

func TestThreadRepository_FindByIDWithComments(t *testing.T) {
	db := newTestDB(t)
	repo := NewThreadRepository(db)
	user := seedUser(t, db, "alice")
	thread := seedThread(t, db, domain.ThreadKindQuestion, "with comments")
	seedComment(t, db, thread, user, nil, "first")
	seedComment(t, db, thread, user, nil, "second")

	got, err := repo.FindByIDWithComments(testCtx(), thread.ID)

	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "alice", got.Comments[0].User.Username)
}

func TestThreadRepository_IncrementViewCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewThreadRepository(db)
	thread := seedThread(t, db, domain.ThreadKindAnnouncement, "counted")

	require.NoError(t, repo.IncrementViewCount(testCtx(), thread.ID))
	require.NoError(t, repo.IncrementViewCount(testCtx(), thread.ID))

	got, err := repo.FindByID(testCtx(), thread.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ViewCount)
}

func TestThreadRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewThreadRepository(db)
	user := seedUser(t, db, "alice")
	doomed := seedThread(t, db, domain.ThreadKindQuestion, "doomed")
	kept := seedThread(t, db, domain.ThreadKindQuestion, "kept")

	doomedComment := seedComment(t, db, doomed, user, nil, "going away")
	keptComment := seedComment(t, db, kept, user, nil, "staying")
	seedLike(t, db, user, doomedComment)
	seedLike(t, db, user, keptComment)
	require.NoError(t, db.Create(&domain.PinnedThread{UserID: user.ID, ThreadID: doomed.ID}).Error)
	require.NoError(t, db.Create(&domain.PinnedThread{UserID: user.ID, ThreadID: kept.ID}).Error)

	require.NoError(t, repo.Delete(testCtx(), doomed.ID))

	_, err := repo.FindByID(testCtx(), doomed.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.False(t, commentExists(t, db, doomedComment.ID))
	assert.True(t, commentExists(t, db, keptComment.ID))
	assert.Equal(t, int64(1), countRows(t, db, &domain.CommentLike{}))
	assert.Equal(t, int64(1), countRows(t, db, &domain.PinnedThread{}))

	got, err := repo.FindByID(testCtx(), kept.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Title)
}
