package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"community-api/internal/domain"
)

func TestCommentLikeRepository_UniquePerUserAndComment(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentLikeRepository(db)
	user := seedUser(t, db, "fan")
	thread := seedThread(t, db, domain.ThreadKindQuestion, "likes")
	comment := seedComment(t, db, thread, user, nil, "likeable")

	require.NoError(t, repo.Create(testCtx(), &domain.CommentLike{CommentID: comment.ID, UserID: user.ID}))

	err := repo.Create(testCtx(), &domain.CommentLike{CommentID: comment.ID, UserID: user.ID})
	assert.Error(t, err, "second like for the same pair must hit the unique index")
}

func TestCommentLikeRepository_FindByUserAndComment(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentLikeRepository(db)
	user := seedUser(t, db, "fan")
	thread := seedThread(t, db, domain.ThreadKindQuestion, "likes")
	comment := seedComment(t, db, thread, user, nil, "likeable")

	got, err := repo.FindByUserAndComment(testCtx(), user.ID, comment.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "absent like must come back as nil, nil")

	seedLike(t, db, user, comment)

	got, err = repo.FindByUserAndComment(testCtx(), user.ID, comment.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, comment.ID, got.CommentID)
}

func TestCommentLikeRepository_CountByCommentIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentLikeRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")
	thread := seedThread(t, db, domain.ThreadKindQuestion, "counts")

	popular := seedComment(t, db, thread, alice, nil, "popular")
	modest := seedComment(t, db, thread, alice, nil, "modest")
	ignored := seedComment(t, db, thread, alice, nil, "ignored")

	seedLike(t, db, alice, popular)
	seedLike(t, db, bob, popular)
	seedLike(t, db, carol, popular)
	seedLike(t, db, bob, modest)

	counts, err := repo.CountByCommentIDs(testCtx(), []uuid.UUID{popular.ID, modest.ID, ignored.ID})

	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[popular.ID])
	assert.Equal(t, int64(1), counts[modest.ID])
	_, present := counts[ignored.ID]
	assert.False(t, present, "comments without likes are absent from the map")
}

func TestCommentLikeRepository_CountByCommentIDs_Empty(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentLikeRepository(db)

	counts, err := repo.CountByCommentIDs(testCtx(), nil)

	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestCommentLikeRepository_FindLikedCommentIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentLikeRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	thread := seedThread(t, db, domain.ThreadKindQuestion, "viewer likes")

	likedByAlice := seedComment(t, db, thread, alice, nil, "one")
	likedByBob := seedComment(t, db, thread, alice, nil, "two")

	seedLike(t, db, alice, likedByAlice)
	seedLike(t, db, bob, likedByBob)

	liked, err := repo.FindLikedCommentIDs(testCtx(), alice.ID, []uuid.UUID{likedByAlice.ID, likedByBob.ID})

	require.NoError(t, err)
	assert.True(t, liked[likedByAlice.ID])
	assert.False(t, liked[likedByBob.ID])
}

func TestCommentLikeRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentLikeRepository(db)
	user := seedUser(t, db, "fan")
	thread := seedThread(t, db, domain.ThreadKindQuestion, "likes")
	comment := seedComment(t, db, thread, user, nil, "likeable")
	seedLike(t, db, user, comment)

	require.NoError(t, repo.Delete(testCtx(), user.ID, comment.ID))

	got, err := repo.FindByUserAndComment(testCtx(), user.ID, comment.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
