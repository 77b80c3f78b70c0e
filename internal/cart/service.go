package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/xypherlux/storefront-backend/internal/catalog"
	"github.com/xypherlux/storefront-backend/pkg/db/models"
	pkgerrors "github.com/xypherlux/storefront-backend/pkg/errors"
	"gorm.io/gorm"
)

type productLoader interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes cart operations for the authenticated user.
type Service interface {
	View(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*CartDTO, error)
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartDTO, error)
	Clear(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
}

type service struct {
	repo     CartRepository
	products productLoader
	pricer   *Pricer
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, products productLoader, pricer *Pricer) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("pricer required")
	}
	return &service{repo: repo, products: products, pricer: pricer}, nil
}

// AddItemInput captures the payload for adding a line to the cart.
type AddItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Size      string
	Color     string
}

// View returns the user's active cart, creating an empty one on first use.
func (s *service) View(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	record, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.render(record), nil
}

// AddItem appends a line or bumps the quantity of an existing identical line.
// The combined quantity must stay within the product's available stock.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.products.FindProductByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}
	if !catalog.HasVariant(product.Sizes, input.Size) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid size for this product")
	}
	if !catalog.HasVariant(product.Colors, input.Color) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid color for this product")
	}

	record, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindLine(ctx, record.ID, input.ProductID, input.Size, input.Color)
	switch {
	case err == nil:
		combined := existing.Quantity + input.Quantity
		if combined > product.Stock {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "requested quantity exceeds available stock").
				WithDetails(map[string]any{"available": product.Stock})
		}
		if err := s.repo.UpdateItemQuantity(ctx, existing.ID, combined); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart line")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if input.Quantity > product.Stock {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "requested quantity exceeds available stock").
				WithDetails(map[string]any{"available": product.Stock})
		}
		item := &models.CartItem{
			CartID:    record.ID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
			Size:      input.Size,
			Color:     input.Color,
		}
		if _, err := s.repo.CreateItem(ctx, item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart line")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
	}

	return s.reload(ctx, userID)
}

// UpdateItem sets the quantity of a line owned by the user.
func (s *service) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*CartDTO, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	_, item, err := s.findOwnedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if item.Product != nil && quantity > item.Product.Stock {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "requested quantity exceeds available stock").
			WithDetails(map[string]any{"available": item.Product.Stock})
	}

	if err := s.repo.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart line")
	}
	return s.reload(ctx, userID)
}

// RemoveItem deletes a line owned by the user.
func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartDTO, error) {
	_, item, err := s.findOwnedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteItem(ctx, item.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart line")
	}
	return s.reload(ctx, userID)
}

// Clear removes every line from the user's active cart.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	record, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ClearItems(ctx, record.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return s.reload(ctx, userID)
}

func (s *service) getOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	record, err := s.repo.FindActiveByUser(ctx, userID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	record, err = s.repo.Create(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
	}
	return record, nil
}

func (s *service) findOwnedItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Cart, *models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if itemID == uuid.Nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	record, err := s.repo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	item, err := s.repo.FindItemInCart(ctx, itemID, record.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
	}
	return record, item, nil
}

func (s *service) reload(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	record, err := s.repo.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart")
	}
	return s.render(record), nil
}

func (s *service) render(record *models.Cart) *CartDTO {
	dto := ToCartDTO(record, s.pricer.Compute(record.Items))
	return &dto
}
