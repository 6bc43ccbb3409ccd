package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"community-api/internal/domain"
	"community-api/internal/dto"
	"community-api/internal/response"
	"community-api/internal/service"
)

// ThreadHandler serves one thread kind. The announcement and question routes
// are two instances of this handler over the same services.
type ThreadHandler struct {
	kind           domain.ThreadKind
	threadService  service.ThreadService
	commentService service.CommentService
	logger         *zap.Logger
}

// NewThreadHandler creates a handler bound to a thread kind
func NewThreadHandler(
	kind domain.ThreadKind,
	threadService service.ThreadService,
	commentService service.CommentService,
	logger *zap.Logger,
) *ThreadHandler {
	return &ThreadHandler{
		kind:           kind,
		threadService:  threadService,
		commentService: commentService,
		logger:         logger,
	}
}

// List returns all threads of the handler's kind
func (h *ThreadHandler) List(c *gin.Context) {
	threads, err := h.threadService.ListThreads(c.Request.Context(), h.kind, viewerID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, threads)
}

// Get returns one thread with its enriched comments
func (h *ThreadHandler) Get(c *gin.Context) {
	threadID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	thread, err := h.threadService.GetThread(c.Request.Context(), h.kind, threadID, viewerID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, thread)
}

// Create creates a thread. Admin only, enforced by route middleware.
func (h *ThreadHandler) Create(c *gin.Context) {
	var req dto.CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	thread, err := h.threadService.CreateThread(c.Request.Context(), h.kind, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, thread)
}

// Update applies a partial update to a thread. Admin only.
func (h *ThreadHandler) Update(c *gin.Context) {
	threadID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	thread, err := h.threadService.UpdateThread(c.Request.Context(), h.kind, threadID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, thread)
}

// Delete removes a thread and everything hanging off it. Admin only.
func (h *ThreadHandler) Delete(c *gin.Context) {
	threadID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.threadService.DeleteThread(c.Request.Context(), h.kind, threadID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Thread deleted"})
}

// IncrementView bumps the view counter
func (h *ThreadHandler) IncrementView(c *gin.Context) {
	threadID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.threadService.IncrementViewCount(c.Request.Context(), h.kind, threadID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "View recorded"})
}

// ListComments returns the thread's comments enriched for the viewer
func (h *ThreadHandler) ListComments(c *gin.Context) {
	threadID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	comments, err := h.commentService.ListComments(c.Request.Context(), threadID, viewerID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, comments)
}

// CreateComment adds a comment to the thread
func (h *ThreadHandler) CreateComment(c *gin.Context) {
	threadID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), threadID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, comment)
}

// Pin bookmarks the thread for the current user
func (h *ThreadHandler) Pin(c *gin.Context) {
	threadID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status, err := h.threadService.PinThread(c.Request.Context(), threadID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, status)
}

// Unpin removes the current user's pin; 404 when no pin exists
func (h *ThreadHandler) Unpin(c *gin.Context) {
	threadID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status, err := h.threadService.UnpinThread(c.Request.Context(), threadID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, status)
}

// TogglePin flips the pin state
func (h *ThreadHandler) TogglePin(c *gin.Context) {
	threadID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status, err := h.threadService.TogglePin(c.Request.Context(), threadID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, status)
}
