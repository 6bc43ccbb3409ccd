package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"community-api/internal/database"
	"community-api/internal/domain"
)

// newTestRouter builds the full engine over an in-memory sqlite database
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))

	engine := Setup(&Config{
		DB:           db,
		Logger:       zap.NewNop(),
		JWTSecret:    "router-test-secret",
		JWTExpiresIn: time.Hour,
		BasePath:     "/api",
		Mode:         gin.TestMode,
	})
	return engine, db
}

func do(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	require.True(t, body.Success)
	return body.Data
}

// registerUser creates an account through the API and returns its token and id
func registerUser(t *testing.T, r *gin.Engine, username string) (string, uuid.UUID) {
	t.Helper()
	payload := fmt.Sprintf(
		`{"username":%q,"firstname":"Test","lastname":"User","email":%q,"password":"password123"}`,
		username, username+"@example.com")
	w := do(r, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	data := dataOf(t, w)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	user := data["user"].(map[string]interface{})
	id, err := uuid.Parse(user["id"].(string))
	require.NoError(t, err)
	return token, id
}

// loginUser authenticates through the API and returns a fresh token
func loginUser(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	payload := fmt.Sprintf(`{"email":%q,"password":"password123"}`, username+"@example.com")
	w := do(r, http.MethodPost, "/api/auth/login", "", payload)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	token, _ := dataOf(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// makeAdmin registers an account, flips its role in the database and logs in
// again so the returned token carries the admin claim
func makeAdmin(t *testing.T, r *gin.Engine, db *gorm.DB, username string) string {
	t.Helper()
	_, id := registerUser(t, r, username)
	require.NoError(t, db.Model(&domain.User{}).
		Where("id = ?", id).
		Update("role", domain.UserRoleAdmin).Error)
	return loginUser(t, r, username)
}

func TestHealthEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	token, _ := registerUser(t, r, "alice")

	w := do(r, http.MethodGet, "/api/auth/me", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")

	// Duplicate registration conflicts
	w = do(r, http.MethodPost, "/api/auth/register", "",
		`{"username":"alice","firstname":"Test","lastname":"User","email":"alice@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Wrong password
	w = do(r, http.MethodPost, "/api/auth/login", "",
		`{"email":"alice@example.com","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Correct login
	w = do(r, http.MethodPost, "/api/auth/login", "",
		`{"email":"alice@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	// No token
	w = do(r, http.MethodGet, "/api/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestThreadRouteGating(t *testing.T) {
	r, db := newTestRouter(t)

	userToken, _ := registerUser(t, r, "plainuser")
	adminToken := makeAdmin(t, r, db, "adminuser")

	// Anonymous list works
	w := do(r, http.MethodGet, "/api/announcements", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Plain users cannot create threads
	w = do(r, http.MethodPost, "/api/announcements", userToken,
		`{"title":"not allowed","description":"nope"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Anonymous creation is unauthorized
	w = do(r, http.MethodPost, "/api/announcements", "",
		`{"title":"not allowed","description":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Admins can
	w = do(r, http.MethodPost, "/api/announcements", adminToken,
		`{"title":"maintenance","description":"window saturday"}`)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	threadID := dataOf(t, w)["id"].(string)

	// The announcement is invisible through the question routes
	w = do(r, http.MethodGet, "/api/questions/"+threadID, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/announcements/"+threadID, "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// View counter is public
	w = do(r, http.MethodPost, "/api/announcements/"+threadID+"/view", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/announcements/"+threadID, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), dataOf(t, w)["viewCount"])
}

func TestCommentFlow(t *testing.T) {
	r, db := newTestRouter(t)

	aliceToken, _ := registerUser(t, r, "alice")
	bobToken, _ := registerUser(t, r, "bob")
	adminToken := makeAdmin(t, r, db, "admin")

	w := do(r, http.MethodPost, "/api/questions", adminToken,
		`{"title":"how do I","description":"do the thing"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	threadID := dataOf(t, w)["id"].(string)

	// Alice comments, Bob replies
	w = do(r, http.MethodPost, "/api/questions/"+threadID+"/comments", aliceToken,
		`{"content":"top level"}`)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	rootID := dataOf(t, w)["commentId"].(string)

	w = do(r, http.MethodPost, "/api/questions/"+threadID+"/comments", bobToken,
		fmt.Sprintf(`{"content":"a reply","parentCommentId":%q}`, rootID))
	require.Equal(t, http.StatusCreated, w.Code)
	replyID := dataOf(t, w)["commentId"].(string)

	// A parent from another thread is rejected as missing
	w = do(r, http.MethodPost, "/api/questions", adminToken,
		`{"title":"other","description":"other thread"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	otherThreadID := dataOf(t, w)["id"].(string)

	w = do(r, http.MethodPost, "/api/questions/"+otherThreadID+"/comments", aliceToken,
		fmt.Sprintf(`{"content":"cross thread","parentCommentId":%q}`, rootID))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Bob likes alice's comment, twice; count stays at one
	w = do(r, http.MethodPost, "/api/comments/"+rootID+"/like", bobToken, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodPost, "/api/comments/"+rootID+"/like", bobToken, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/questions/"+threadID+"/comments", bobToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	var listBody struct {
		Data []struct {
			CommentID          string `json:"commentId"`
			LikeCount          int64  `json:"likeCount"`
			LikedByCurrentUser bool   `json:"likedByCurrentUser"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listBody))
	require.Len(t, listBody.Data, 2)
	for _, c := range listBody.Data {
		if c.CommentID == rootID {
			assert.Equal(t, int64(1), c.LikeCount)
			assert.True(t, c.LikedByCurrentUser)
		} else {
			assert.Equal(t, int64(0), c.LikeCount)
			assert.False(t, c.LikedByCurrentUser)
		}
	}

	// Bob cannot edit alice's comment; the failure reads like a missing comment
	w = do(r, http.MethodPut, "/api/comments/"+rootID, bobToken, `{"content":"hijacked"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")

	// Alice edits her own
	w = do(r, http.MethodPut, "/api/comments/"+rootID, aliceToken, `{"content":"edited"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	// Unliking without a like is not an error
	w = do(r, http.MethodDelete, "/api/comments/"+rootID+"/like", aliceToken, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"liked":false`)

	// Deleting the root removes the reply too and reports both ids
	w = do(r, http.MethodDelete, "/api/comments/"+rootID, aliceToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	var deleteBody struct {
		Data struct {
			DeletedIDs []string `json:"deletedIds"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deleteBody))
	assert.ElementsMatch(t, []string{rootID, replyID}, deleteBody.Data.DeletedIDs)

	w = do(r, http.MethodGet, "/api/questions/"+threadID+"/comments", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var emptyBody struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &emptyBody))
	assert.Empty(t, emptyBody.Data)
}

func TestPinFlow(t *testing.T) {
	r, db := newTestRouter(t)

	userToken, _ := registerUser(t, r, "pinner")
	adminToken := makeAdmin(t, r, db, "admin")

	w := do(r, http.MethodPost, "/api/announcements", adminToken,
		`{"title":"pinnable","description":"pin me"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	threadID := dataOf(t, w)["id"].(string)

	// Unpinning before pinning is a 404
	w = do(r, http.MethodDelete, "/api/announcements/"+threadID+"/pin", userToken, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Pin, twice; both succeed
	w = do(r, http.MethodPost, "/api/announcements/"+threadID+"/pin", userToken, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodPost, "/api/announcements/"+threadID+"/pin", userToken, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// The thread shows as pinned for this user, not for the admin
	w = do(r, http.MethodGet, "/api/announcements/"+threadID, userToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, dataOf(t, w)["isPinned"])

	w = do(r, http.MethodGet, "/api/announcements/"+threadID, adminToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, dataOf(t, w)["isPinned"])

	// Toggle flips it off
	w = do(r, http.MethodPost, "/api/announcements/"+threadID+"/pin/toggle", userToken, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pinned":false`)

	// And the unpin 404 asymmetry holds again
	w = do(r, http.MethodDelete, "/api/announcements/"+threadID+"/pin", userToken, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserAdministration(t *testing.T) {
	r, db := newTestRouter(t)

	userToken, userID := registerUser(t, r, "regular")
	adminToken := makeAdmin(t, r, db, "admin")

	// Listing users is admin only
	w := do(r, http.MethodGet, "/api/users", userToken, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodGet, "/api/users", adminToken, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Admin promotes the regular user
	w = do(r, http.MethodPut, "/api/users/"+userID.String()+"/role", adminToken,
		`{"role":"Admin"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Admin", dataOf(t, w)["role"])
}
