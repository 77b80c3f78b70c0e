package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xypherlux/storefront-backend/pkg/enums"
)

// Order is an immutable record of a completed checkout. Monetary fields are
// snapshots; later price or product changes never alter them.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID         `gorm:"column:user_id;type:uuid;not null"`
	OrderNumber     string            `gorm:"column:order_number;not null;uniqueIndex"`
	Status          enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	Subtotal        decimal.Decimal   `gorm:"column:subtotal;type:numeric(10,2);not null"`
	ShippingCost    decimal.Decimal   `gorm:"column:shipping_cost;type:numeric(10,2);not null"`
	Tax             decimal.Decimal   `gorm:"column:tax;type:numeric(10,2);not null"`
	Total           decimal.Decimal   `gorm:"column:total;type:numeric(10,2);not null"`
	ShippingAddress string            `gorm:"column:shipping_address;not null"`
	City            string            `gorm:"column:city;not null"`
	Country         string            `gorm:"column:country;not null"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
