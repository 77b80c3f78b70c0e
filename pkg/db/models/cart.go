package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart holds a user's in-progress selection. At most one active cart exists
// per user, enforced by a partial unique index on (user_id) WHERE is_active.
type Cart struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null"`
	IsActive  bool       `gorm:"column:is_active;not null;default:true"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TotalItems sums quantities across all lines.
func (c Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}
