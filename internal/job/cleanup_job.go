package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"community-api/internal/repository"
)

// CleanupJob clears verification and password reset tokens that have passed
// their expiry. Scheduled via cron from main.
type CleanupJob struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(userRepo repository.UserRepository, logger *zap.Logger) *CleanupJob {
	return &CleanupJob{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Run executes one cleanup pass
func (j *CleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	j.logger.Info("Starting expired token cleanup")

	cleared, err := j.userRepo.ClearExpiredTokens(ctx, time.Now())
	if err != nil {
		j.logger.Error("Failed to clear expired tokens", zap.Error(err))
		return
	}

	if cleared == 0 {
		j.logger.Info("No expired tokens found")
		return
	}

	j.logger.Info("Expired token cleanup completed",
		zap.Int64("cleared", cleared),
	)
}
