package domain

import "time"

// UserRole represents the role of a user
type UserRole string

const (
	UserRoleAdmin UserRole = "Admin"
	UserRoleUser  UserRole = "User"
)

// UserStatus represents the account status of a user
type UserStatus string

const (
	UserStatusActive UserStatus = "active"
	UserStatusBanned UserStatus = "banned"
)

// User represents a registered account
type User struct {
	BaseModel
	Username                 string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Firstname                string     `gorm:"type:varchar(100);not null" json:"firstname"`
	Lastname                 string     `gorm:"type:varchar(100);not null" json:"lastname"`
	Email                    string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password                 string     `gorm:"type:varchar(255);not null" json:"-"`
	IsVerified               bool       `gorm:"not null;default:false" json:"is_verified"`
	Role                     UserRole   `gorm:"type:varchar(20);not null;default:'User'" json:"role"`
	Status                   UserStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	VerificationToken        *string    `gorm:"type:varchar(255)" json:"-"`
	VerificationTokenExpires *time.Time `gorm:"type:timestamp" json:"-"`
	ResetToken               *string    `gorm:"type:varchar(255)" json:"-"`
	ResetTokenExpires        *time.Time `gorm:"type:timestamp" json:"-"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
