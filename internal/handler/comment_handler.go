package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"community-api/internal/dto"
	"community-api/internal/response"
	"community-api/internal/service"
)

// CommentHandler serves comment mutation and like endpoints
type CommentHandler struct {
	commentService service.CommentService
	logger         *zap.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService service.CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{commentService: commentService, logger: logger}
}

// Update replaces a comment's content. Author or admin only; foreign
// comments look like missing ones.
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), commentID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, comment)
}

// Delete removes a comment with its entire reply subtree and reports the
// removed ids
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.commentService.DeleteComment(c.Request.Context(), commentID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// Like records a like; repeat likes are a no-op
func (h *CommentHandler) Like(c *gin.Context) {
	commentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status, err := h.commentService.LikeComment(c.Request.Context(), commentID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, status)
}

// Unlike removes a like; removing an absent like still succeeds
func (h *CommentHandler) Unlike(c *gin.Context) {
	commentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status, err := h.commentService.UnlikeComment(c.Request.Context(), commentID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, status)
}

// ToggleLike flips the like state
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	commentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status, err := h.commentService.ToggleLike(c.Request.Context(), commentID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, status)
}
