package models

import "time"

// Role values. An admin may mutate any user's entries.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an application user.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	DisplayName  string `gorm:"size:64"`
	Role         string `gorm:"size:16;not null;default:user"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	FailedLoginAttempts int        `gorm:"default:0"`
	LockedUntil         *time.Time `gorm:"index"`
	LastLoginAt         *time.Time
	LastLoginIP         string `gorm:"size:64"`
}

// IsAdmin reports whether the user holds the admin-equivalent role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
