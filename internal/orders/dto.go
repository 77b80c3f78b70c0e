package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xypherlux/storefront-backend/pkg/db/models"
)

// OrderDTO is the API shape for a placed order.
type OrderDTO struct {
	ID              uuid.UUID       `json:"id"`
	OrderNumber     string          `json:"order_number"`
	Status          string          `json:"status"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress string          `json:"shipping_address"`
	City            string          `json:"city"`
	Country         string          `json:"country"`
	Items           []OrderItemDTO  `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
}

// OrderItemDTO is the API shape for one purchased line.
type OrderItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Size        string          `json:"size,omitempty"`
	Color       string          `json:"color,omitempty"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// ToOrderDTO maps the persistence model to its API shape.
func ToOrderDTO(m models.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, OrderItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Size:        item.Size,
			Color:       item.Color,
			LineTotal:   item.LineTotal(),
		})
	}
	return OrderDTO{
		ID:              m.ID,
		OrderNumber:     m.OrderNumber,
		Status:          m.Status.String(),
		Subtotal:        m.Subtotal,
		ShippingCost:    m.ShippingCost,
		Tax:             m.Tax,
		Total:           m.Total,
		ShippingAddress: m.ShippingAddress,
		City:            m.City,
		Country:         m.Country,
		Items:           items,
		CreatedAt:       m.CreatedAt,
	}
}
