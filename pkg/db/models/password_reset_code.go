package models

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetCode is a single-use 5-digit verification code. Codes older
// than the configured TTL are rejected and purged on sight.
type PasswordResetCode struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	Code      string    `gorm:"column:code;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
