package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"community-api/internal/domain"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByVerificationToken(ctx context.Context, token string) (*domain.User, error)
	FindByResetToken(ctx context.Context, token string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ClearExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

type userRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepositoryImpl) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepositoryImpl) FindByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("verification_token = ?", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepositoryImpl) FindByResetToken(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("reset_token = ?", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepositoryImpl) FindAll(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// ClearExpiredTokens nulls out verification and password reset tokens whose
// expiry has passed. Returns the number of affected rows for job logging.
func (r *userRepositoryImpl) ClearExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	var total int64

	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("verification_token IS NOT NULL AND verification_token_expires < ?", now).
		Updates(map[string]interface{}{
			"verification_token":         nil,
			"verification_token_expires": nil,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	total += res.RowsAffected

	res = r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("reset_token IS NOT NULL AND reset_token_expires < ?", now).
		Updates(map[string]interface{}{
			"reset_token":         nil,
			"reset_token_expires": nil,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	total += res.RowsAffected

	return total, nil
}
