package models

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile stores contact details collected at registration, one row per user.
type UserProfile struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	CountryCode string    `gorm:"column:country_code;not null;default:''"`
	PhoneNumber string    `gorm:"column:phone_number;not null;default:''"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
