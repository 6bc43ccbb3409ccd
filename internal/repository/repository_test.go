package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"community-api/internal/database"
	"community-api/internal/domain"
)

// newTestDB opens an in-memory sqlite database with the full schema. The pool
// is pinned to a single connection so every query sees the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:  username,
		Firstname: "Test",
		Lastname:  "User",
		Email:     username + "@example.com",
		Password:  "hashed",
		Role:      domain.UserRoleUser,
		Status:    domain.UserStatusActive,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedThread(t *testing.T, db *gorm.DB, kind domain.ThreadKind, title string) *domain.Thread {
	t.Helper()
	thread := &domain.Thread{
		Kind:        kind,
		Title:       title,
		Description: "description of " + title,
	}
	require.NoError(t, db.Create(thread).Error)
	return thread
}

func seedComment(t *testing.T, db *gorm.DB, thread *domain.Thread, user *domain.User, parent *domain.Comment, content string) *domain.Comment {
	t.Helper()
	comment := &domain.Comment{
		ThreadID: thread.ID,
		UserID:   user.ID,
		Content:  content,
	}
	if parent != nil {
		comment.ParentID = &parent.ID
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func seedLike(t *testing.T, db *gorm.DB, user *domain.User, comment *domain.Comment) *domain.CommentLike {
	t.Helper()
	like := &domain.CommentLike{
		CommentID: comment.ID,
		UserID:    user.ID,
	}
	require.NoError(t, db.Create(like).Error)
	return like
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func commentExists(t *testing.T, db *gorm.DB, id uuid.UUID) bool {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&domain.Comment{}).Where("id = ?", id).Count(&n).Error)
	return n > 0
}

// backdate shifts a comment's created_at so ordering assertions are stable
func backdate(t *testing.T, db *gorm.DB, comment *domain.Comment, d time.Duration) {
	t.Helper()
	require.NoError(t, db.Model(comment).
		UpdateColumn("created_at", time.Now().Add(-d)).Error)
}

func testCtx() context.Context {
	return context.Background()
}
