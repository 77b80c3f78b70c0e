package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line in a cart. A line is identified by the combination of
// cart, product, size and color; adding the same combination bumps quantity.
type CartItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID    uuid.UUID `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:idx_cart_line,priority:1"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_cart_line,priority:2"`
	Product   *Product  `gorm:"foreignKey:ProductID"`
	Quantity  int       `gorm:"column:quantity;not null;default:1"`
	Size      string    `gorm:"column:size;not null;default:'';uniqueIndex:idx_cart_line,priority:3"`
	Color     string    `gorm:"column:color;not null;default:'';uniqueIndex:idx_cart_line,priority:4"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
