package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"community-api/internal/auth"
	"community-api/internal/domain"
	"community-api/internal/dto"
	"community-api/internal/repository"
	"community-api/internal/response"
)

const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = 1 * time.Hour
)

// AuthService defines the interface for account and session business logic
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	VerifyEmail(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	UpdateUserRole(ctx context.Context, userID uuid.UUID, role domain.UserRole) (*dto.UserResponse, error)
}

// authServiceImpl is the implementation of AuthService
type authServiceImpl struct {
	userRepo  repository.UserRepository
	tokens    *auth.TokenManager
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	tokens *auth.TokenManager,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:  userRepo,
		tokens:    tokens,
		blacklist: blacklist,
		logger:    logger,
	}
}

// Register creates an account and returns a session token for it
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if existing, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Email already registered", "")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check email", err.Error())
	}

	if existing, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Username already taken", "")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check username", err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to hash password", err.Error())
	}

	verificationToken, err := randomToken()
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to generate verification token", err.Error())
	}
	verificationExpires := time.Now().Add(verificationTokenTTL)

	user := &domain.User{
		Username:                 req.Username,
		Firstname:                req.Firstname,
		Lastname:                 req.Lastname,
		Email:                    req.Email,
		Password:                 string(hashed),
		Role:                     domain.UserRoleUser,
		Status:                   domain.UserStatusActive,
		VerificationToken:        &verificationToken,
		VerificationTokenExpires: &verificationExpires,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.String("email", req.Email), zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create user", err.Error())
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to issue token", err.Error())
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

// Login authenticates by email and password
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid email or password", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to find user", err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid email or password", "")
	}

	if user.Status == domain.UserStatusBanned {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Account is banned", "")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to issue token", err.Error())
	}

	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

// Logout revokes the token for the remainder of its lifetime
func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return response.NewAppError(response.ErrCodeUnauthorized, "Invalid or expired token", "")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.blacklist.Revoke(ctx, token, ttl); err != nil {
		s.logger.Error("Failed to revoke token", zap.Error(err))
		return response.NewAppError(response.ErrCodeInternal, "Failed to revoke token", err.Error())
	}
	return nil
}

// VerifyEmail marks the account verified when the token matches and is fresh
func (s *authServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userRepo.FindByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Verification token not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to find verification token", err.Error())
	}

	if user.VerificationTokenExpires == nil || user.VerificationTokenExpires.Before(time.Now()) {
		return response.NewAppError(response.ErrCodeValidation, "Verification token expired", "")
	}

	user.IsVerified = true
	user.VerificationToken = nil
	user.VerificationTokenExpires = nil

	if err := s.userRepo.Update(ctx, user); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to verify email", err.Error())
	}

	s.logger.Info("Email verified", zap.String("user_id", user.ID.String()))
	return nil
}

// RequestPasswordReset issues a short-lived reset token. The token is
// returned to the caller; delivery is left to an external mail sender.
func (s *authServiceImpl) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		return "", response.NewAppError(response.ErrCodeInternal, "Failed to find user", err.Error())
	}

	token, err := randomToken()
	if err != nil {
		return "", response.NewAppError(response.ErrCodeInternal, "Failed to generate reset token", err.Error())
	}
	expires := time.Now().Add(resetTokenTTL)

	user.ResetToken = &token
	user.ResetTokenExpires = &expires

	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", response.NewAppError(response.ErrCodeInternal, "Failed to store reset token", err.Error())
	}

	return token, nil
}

// ResetPassword replaces the password when the reset token matches and is fresh
func (s *authServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Reset token not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to find reset token", err.Error())
	}

	if user.ResetTokenExpires == nil || user.ResetTokenExpires.Before(time.Now()) {
		return response.NewAppError(response.ErrCodeValidation, "Reset token expired", "")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to hash password", err.Error())
	}

	user.Password = string(hashed)
	user.ResetToken = nil
	user.ResetTokenExpires = nil

	if err := s.userRepo.Update(ctx, user); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to reset password", err.Error())
	}

	s.logger.Info("Password reset", zap.String("user_id", user.ID.String()))
	return nil
}

// GetUser returns the public view of one account
func (s *authServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to find user", err.Error())
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ListUsers returns all accounts, newest first
func (s *authServiceImpl) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list users", err.Error())
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}
	return responses, nil
}

// UpdateUserRole changes an account's role. Restricted to admins at the
// handler layer.
func (s *authServiceImpl) UpdateUserRole(ctx context.Context, userID uuid.UUID, role domain.UserRole) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to find user", err.Error())
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update role", err.Error())
	}

	s.logger.Info("User role updated",
		zap.String("user_id", userID.String()),
		zap.String("role", string(role)))

	resp := toUserResponse(user)
	return &resp, nil
}

// randomToken returns a 32-byte hex token for verification and reset flows
func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// toUserResponse converts a user into its public API shape
func toUserResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Firstname:  user.Firstname,
		Lastname:   user.Lastname,
		Email:      user.Email,
		IsVerified: user.IsVerified,
		Role:       user.Role,
		Status:     user.Status,
		CreatedAt:  user.CreatedAt,
	}
}
