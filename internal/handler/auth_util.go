package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"community-api/internal/response"
)

// currentUserID extracts the authenticated user id set by the auth
// middleware, sending an unauthorized response when it is missing
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid user ID format")
		return uuid.Nil, false
	}
	return id, true
}

// viewerID returns the authenticated user id when present, or nil on
// anonymous requests. Used on endpoints behind OptionalAuth.
func viewerID(c *gin.Context) *uuid.UUID {
	userID, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	id, ok := userID.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

// pathUUID parses a uuid path parameter, sending a validation error when malformed
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
