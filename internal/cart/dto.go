package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xypherlux/storefront-backend/internal/catalog"
	"github.com/xypherlux/storefront-backend/pkg/db/models"
)

// CartDTO is the API shape for a cart with its computed totals.
type CartDTO struct {
	ID         uuid.UUID     `json:"id"`
	Items      []CartItemDTO `json:"items"`
	TotalItems int           `json:"total_items"`
	Totals
}

// CartItemDTO is the API shape for one cart line.
type CartItemDTO struct {
	ID          uuid.UUID           `json:"id"`
	ProductID   uuid.UUID           `json:"product_id"`
	ProductName string              `json:"product_name"`
	ProductSlug string              `json:"product_slug"`
	UnitPrice   decimal.Decimal     `json:"unit_price"`
	Quantity    int                 `json:"quantity"`
	Size        string              `json:"size,omitempty"`
	Color       string              `json:"color,omitempty"`
	LineTotal   decimal.Decimal     `json:"line_total"`
	Product     *catalog.ProductDTO `json:"product,omitempty"`
}

// ToCartDTO maps a cart and its computed totals onto the API shape.
func ToCartDTO(record *models.Cart, totals Totals) CartDTO {
	items := make([]CartItemDTO, 0, len(record.Items))
	for _, item := range record.Items {
		items = append(items, toCartItemDTO(item))
	}
	return CartDTO{
		ID:         record.ID,
		Items:      items,
		TotalItems: record.TotalItems(),
		Totals:     totals,
	}
}

func toCartItemDTO(item models.CartItem) CartItemDTO {
	dto := CartItemDTO{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Size:      item.Size,
		Color:     item.Color,
	}
	if item.Product != nil {
		dto.ProductName = item.Product.Name
		dto.ProductSlug = item.Product.Slug
		dto.UnitPrice = item.Product.Price
		dto.LineTotal = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		product := catalog.ToProductDTO(*item.Product)
		dto.Product = &product
	}
	return dto
}
