package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xypherlux/storefront-backend/pkg/config"
	"github.com/xypherlux/storefront-backend/pkg/db/models"
	pkgerrors "github.com/xypherlux/storefront-backend/pkg/errors"
)

type stubCartRepo struct {
	cart    *models.Cart
	findErr error
}

func (s *stubCartRepo) WithTx(tx *gorm.DB) CartRepository { return s }

func (s *stubCartRepo) Create(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	s.cart = &models.Cart{ID: uuid.New(), UserID: userID, IsActive: true}
	return s.cart, nil
}

func (s *stubCartRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.cart == nil || s.cart.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.cart, nil
}

func (s *stubCartRepo) FindLine(ctx context.Context, cartID, productID uuid.UUID, size, color string) (*models.CartItem, error) {
	if s.cart == nil {
		return nil, gorm.ErrRecordNotFound
	}
	for i := range s.cart.Items {
		item := &s.cart.Items[i]
		if item.ProductID == productID && item.Size == size && item.Color == color {
			return item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCartRepo) FindItemInCart(ctx context.Context, itemID, cartID uuid.UUID) (*models.CartItem, error) {
	if s.cart == nil || s.cart.ID != cartID {
		return nil, gorm.ErrRecordNotFound
	}
	for i := range s.cart.Items {
		if s.cart.Items[i].ID == itemID {
			return &s.cart.Items[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCartRepo) CreateItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	s.cart.Items = append(s.cart.Items, *item)
	return item, nil
}

func (s *stubCartRepo) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	for i := range s.cart.Items {
		if s.cart.Items[i].ID == itemID {
			s.cart.Items[i].Quantity = quantity
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *stubCartRepo) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	for i := range s.cart.Items {
		if s.cart.Items[i].ID == itemID {
			s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *stubCartRepo) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	s.cart.Items = nil
	return nil
}

func (s *stubCartRepo) Deactivate(ctx context.Context, cartID uuid.UUID) error {
	s.cart.IsActive = false
	return nil
}

type stubProductLoader struct {
	products map[uuid.UUID]*models.Product
}

func (s *stubProductLoader) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestCartService(t *testing.T, repo *stubCartRepo, products map[uuid.UUID]*models.Product) Service {
	t.Helper()
	pricer, err := NewPricer(config.PricingConfig{FlatShipping: "5.00", TaxRate: "0.08"})
	if err != nil {
		t.Fatalf("NewPricer returned error: %v", err)
	}
	svc, err := NewService(repo, &stubProductLoader{products: products}, pricer)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func testProduct(stock int) *models.Product {
	return &models.Product{
		ID:       uuid.New(),
		Name:     "Monogram Tee",
		Price:    decimal.RequireFromString("20.00"),
		Sizes:    "S,M,L",
		Colors:   "Black,White",
		Stock:    stock,
		IsActive: true,
	}
}

func TestViewCreatesCartOnFirstUse(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{}
	svc := newTestCartService(t, repo, nil)
	userID := uuid.New()

	dto, err := svc.View(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dto.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(dto.Items))
	}
	if repo.cart == nil || repo.cart.UserID != userID {
		t.Fatal("expected cart record to be created for the user")
	}
}

func TestAddItemValidatesVariant(t *testing.T) {
	t.Parallel()

	product := testProduct(10)
	repo := &stubCartRepo{}
	svc := newTestCartService(t, repo, map[uuid.UUID]*models.Product{product.ID: product})

	_, err := svc.AddItem(context.Background(), uuid.New(), AddItemInput{
		ProductID: product.ID,
		Quantity:  1,
		Size:      "XXL",
		Color:     "Black",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddItemWithoutVariantSelection(t *testing.T) {
	t.Parallel()

	product := testProduct(10)
	repo := &stubCartRepo{}
	svc := newTestCartService(t, repo, map[uuid.UUID]*models.Product{product.ID: product})

	dto, err := svc.AddItem(context.Background(), uuid.New(), AddItemInput{
		ProductID: product.ID,
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("add without size/color failed: %v", err)
	}
	if len(dto.Items) != 1 {
		t.Fatalf("expected one line, got %d", len(dto.Items))
	}
	if repo.cart.Items[0].Size != "" || repo.cart.Items[0].Color != "" {
		t.Fatalf("expected empty variant labels, got %q/%q", repo.cart.Items[0].Size, repo.cart.Items[0].Color)
	}
}

func TestAddItemMergesExistingLine(t *testing.T) {
	t.Parallel()

	product := testProduct(10)
	repo := &stubCartRepo{}
	svc := newTestCartService(t, repo, map[uuid.UUID]*models.Product{product.ID: product})
	userID := uuid.New()

	input := AddItemInput{ProductID: product.ID, Quantity: 2, Size: "M", Color: "Black"}
	if _, err := svc.AddItem(context.Background(), userID, input); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := svc.AddItem(context.Background(), userID, input); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if len(repo.cart.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(repo.cart.Items))
	}
	if repo.cart.Items[0].Quantity != 4 {
		t.Fatalf("expected merged quantity 4, got %d", repo.cart.Items[0].Quantity)
	}
}

func TestAddItemRejectsOverStock(t *testing.T) {
	t.Parallel()

	product := testProduct(3)
	repo := &stubCartRepo{}
	svc := newTestCartService(t, repo, map[uuid.UUID]*models.Product{product.ID: product})
	userID := uuid.New()

	input := AddItemInput{ProductID: product.ID, Quantity: 2, Size: "M", Color: "Black"}
	if _, err := svc.AddItem(context.Background(), userID, input); err != nil {
		t.Fatalf("first add failed: %v", err)
	}

	_, err := svc.AddItem(context.Background(), userID, input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok || details["available"] != 3 {
		t.Fatalf("expected available stock in details, got %v", typed.Details())
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{}
	svc := newTestCartService(t, repo, nil)

	_, err := svc.AddItem(context.Background(), uuid.New(), AddItemInput{ProductID: uuid.New(), Quantity: 1})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateItemForeignItemNotFound(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{}
	svc := newTestCartService(t, repo, nil)
	userID := uuid.New()

	if _, err := svc.View(context.Background(), userID); err != nil {
		t.Fatalf("view failed: %v", err)
	}

	_, err := svc.UpdateItem(context.Background(), userID, uuid.New(), 2)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	t.Parallel()

	product := testProduct(10)
	repo := &stubCartRepo{}
	svc := newTestCartService(t, repo, map[uuid.UUID]*models.Product{product.ID: product})
	userID := uuid.New()

	if _, err := svc.AddItem(context.Background(), userID, AddItemInput{ProductID: product.ID, Quantity: 1, Size: "S", Color: "White"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	dto, err := svc.Clear(context.Background(), userID)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if len(dto.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(dto.Items))
	}
	if !dto.Total.IsZero() {
		t.Fatalf("expected zero total, got %s", dto.Total)
	}
}
