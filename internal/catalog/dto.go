package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xypherlux/storefront-backend/pkg/db/models"
)

// CategoryDTO is the API shape for a category.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"image_url,omitempty"`
}

// ProductDTO is the API shape for a product listing.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	Stock       int             `json:"stock"`
	InStock     bool            `json:"in_stock"`
	ImageURL    *string         `json:"image_url,omitempty"`
	IsFeatured  bool            `json:"is_featured"`
	Category    *CategoryDTO    `json:"category,omitempty"`
}

// ToCategoryDTO maps the persistence model to its API shape.
func ToCategoryDTO(m models.Category) CategoryDTO {
	return CategoryDTO{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		ImageURL:    m.ImageURL,
	}
}

// ToProductDTO maps the persistence model to its API shape, splitting the
// comma-separated variant labels into slices.
func ToProductDTO(m models.Product) ProductDTO {
	dto := ProductDTO{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Price:       m.Price,
		Sizes:       SplitVariants(m.Sizes),
		Colors:      SplitVariants(m.Colors),
		Stock:       m.Stock,
		InStock:     m.InStock(),
		ImageURL:    m.ImageURL,
		IsFeatured:  m.IsFeatured,
	}
	if m.Category != nil {
		category := ToCategoryDTO(*m.Category)
		dto.Category = &category
	}
	return dto
}

// SplitVariants parses a comma-separated variant string, trimming whitespace
// and dropping empty entries.
func SplitVariants(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// HasVariant reports whether label appears in the comma-separated variant
// string. An empty label means no selection was made and is always accepted.
func HasVariant(raw, label string) bool {
	if label == "" {
		return true
	}
	for _, v := range SplitVariants(raw) {
		if strings.EqualFold(v, label) {
			return true
		}
	}
	return false
}
