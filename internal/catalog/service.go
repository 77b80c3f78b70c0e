package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/xypherlux/storefront-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes read operations over the product catalog.
type Service interface {
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	ListProducts(ctx context.Context, categorySlug string) ([]ProductDTO, error)
	ListFeatured(ctx context.Context) ([]ProductDTO, error)
	GetProduct(ctx context.Context, slug string) (*ProductDTO, error)
}

type service struct {
	repo *Repository
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// ListCategories returns every category in display order.
func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToCategoryDTO(row))
	}
	return out, nil
}

// ListProducts returns active products, filtered by category slug when provided.
// An unknown slug is a not-found error rather than an empty listing.
func (s *service) ListProducts(ctx context.Context, categorySlug string) ([]ProductDTO, error) {
	var categoryID *uuid.UUID
	if slug := strings.TrimSpace(categorySlug); slug != "" {
		category, err := s.repo.FindCategoryBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
		}
		categoryID = &category.ID
	}

	rows, err := s.repo.ListActiveProducts(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToProductDTO(row))
	}
	return out, nil
}

// ListFeatured returns the featured subset of active products.
func (s *service) ListFeatured(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.ListFeaturedProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list featured products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToProductDTO(row))
	}
	return out, nil
}

// GetProduct loads a single product by slug. Inactive products are hidden.
func (s *service) GetProduct(ctx context.Context, slug string) (*ProductDTO, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}
	product, err := s.repo.FindProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	dto := ToProductDTO(*product)
	return &dto, nil
}
