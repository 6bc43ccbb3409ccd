package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"community-api/internal/dto"
	"community-api/internal/response"
	"community-api/internal/service"
)

// AuthHandler serves account and session endpoints
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// Register creates an account
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}

// Login authenticates and returns a session token
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// Logout revokes the current token
func (h *AuthHandler) Logout(c *gin.Context) {
	token, exists := c.Get("jwtToken")
	if !exists {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "JWT token not found in context")
		return
	}
	tokenStr, ok := token.(string)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid token format")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), tokenStr); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, user)
}

// VerifyEmail consumes a verification token
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Verification token is required")
		return
	}

	if err := h.authService.VerifyEmail(c.Request.Context(), token); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Email verified"})
}

// RequestPasswordReset issues a reset token for the account
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	token, err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"resetToken": token})
}

// ResetPassword consumes a reset token and sets a new password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Password reset"})
}

// ListUsers returns all accounts. Admin only.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, users)
}

// UpdateUserRole changes an account's role. Admin only.
func (h *AuthHandler) UpdateUserRole(c *gin.Context) {
	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	user, err := h.authService.UpdateUserRole(c.Request.Context(), userID, req.Role)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, user)
}
