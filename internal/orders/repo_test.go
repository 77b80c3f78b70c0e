package orders

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/xypherlux/storefront-backend/pkg/db/models"
	"github.com/xypherlux/storefront-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ordersTable := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  order_number TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL DEFAULT 'pending',
  subtotal NUMERIC NOT NULL,
  shipping_cost NUMERIC NOT NULL,
  tax NUMERIC NOT NULL,
  total NUMERIC NOT NULL,
  shipping_address TEXT NOT NULL,
  city TEXT NOT NULL,
  country TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT,
  product_name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  quantity INTEGER NOT NULL,
  size TEXT NOT NULL DEFAULT '',
  color TEXT NOT NULL DEFAULT '',
  created_at DATETIME
);`
	require.NoError(t, db.Exec(ordersTable).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	return db
}

func seedOrder(t *testing.T, repo *Repository, userID uuid.UUID, created time.Time) *models.Order {
	t.Helper()

	productID := uuid.New()
	order := &models.Order{
		UserID:          userID,
		OrderNumber:     NewOrderNumber(),
		Status:          enums.OrderStatusPending,
		Subtotal:        decimal.RequireFromString("40.00"),
		ShippingCost:    decimal.RequireFromString("5.00"),
		Tax:             decimal.RequireFromString("3.20"),
		Total:           decimal.RequireFromString("48.20"),
		ShippingAddress: "12 Rue de la Paix",
		City:            "Paris",
		Country:         "FR",
		Items: []models.OrderItem{{
			ProductID:   &productID,
			ProductName: "Monogram Tee",
			Price:       decimal.RequireFromString("20.00"),
			Quantity:    2,
			Size:        "M",
			Color:       "Black",
		}},
		CreatedAt: created,
		UpdatedAt: created,
	}
	out, err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	return out
}

func TestRepositoryCreateBackfillsIDs(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	order := seedOrder(t, repo, uuid.New(), time.Now().UTC())

	assert.NotEqual(t, uuid.Nil, order.ID)
	require.Len(t, order.Items, 1)
	assert.NotEqual(t, uuid.Nil, order.Items[0].ID)
	assert.Equal(t, order.ID, order.Items[0].OrderID)
}

func TestRepositoryFindByIDAndUser(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	order := seedOrder(t, repo, userID, time.Now().UTC())

	found, err := repo.FindByIDAndUser(context.Background(), order.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, found.OrderNumber)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Monogram Tee", found.Items[0].ProductName)
	assert.True(t, found.Total.Equal(decimal.RequireFromString("48.20")))

	// Another user cannot read the order even with a valid ID.
	_, err = repo.FindByIDAndUser(context.Background(), order.ID, uuid.New())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepositoryListByUserNewestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	userID := uuid.New()
	now := time.Now().UTC()
	older := seedOrder(t, repo, userID, now.Add(-time.Hour))
	newer := seedOrder(t, repo, userID, now)
	seedOrder(t, repo, uuid.New(), now)

	list, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.OrderNumber, list[0].OrderNumber)
	assert.Equal(t, older.OrderNumber, list[1].OrderNumber)
	require.Len(t, list[0].Items, 1)
}

func TestRepositoryOrderNumberExists(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	order := seedOrder(t, repo, uuid.New(), time.Now().UTC())

	taken, err := repo.OrderNumberExists(context.Background(), order.OrderNumber)
	require.NoError(t, err)
	assert.True(t, taken)

	free, err := repo.OrderNumberExists(context.Background(), "LUX-00000000")
	require.NoError(t, err)
	assert.False(t, free)
}

func TestNewOrderNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^LUX-[0-9A-F]{8}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		number := NewOrderNumber()
		assert.Regexp(t, pattern, number)
		seen[number] = true
	}
	assert.Greater(t, len(seen), 1)
}
