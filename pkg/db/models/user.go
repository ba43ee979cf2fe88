package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/juvoapp/juvo-backend/pkg/enums"
)

// User represents the canonical identity entity. Drivers, shop owners, and
// admins all live here; role-specific data hangs off profile tables.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string         `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	FirstName    string         `gorm:"column:first_name;not null"`
	LastName     string         `gorm:"column:last_name;not null"`
	Phone        *string        `gorm:"column:phone"`
	Role         enums.UserRole `gorm:"column:role;type:user_role;not null;default:'driver'"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	PushToken    *string        `gorm:"column:push_token"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// HasPushToken reports whether the user can receive push notifications.
func (u User) HasPushToken() bool {
	return u.PushToken != nil && *u.PushToken != ""
}
