package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/xypherlux/storefront-backend/pkg/db/models"
	pkgerrors "github.com/xypherlux/storefront-backend/pkg/errors"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	categories := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL DEFAULT '',
  image_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL,
  sizes TEXT NOT NULL DEFAULT '',
  colors TEXT NOT NULL DEFAULT '',
  stock INTEGER NOT NULL DEFAULT 0,
  image_url TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  is_featured INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(categories).Error)
	require.NoError(t, db.Exec(products).Error)
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()

	category := &models.Category{ID: uuid.New(), Name: name, Slug: slug}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedCatalogProduct(t *testing.T, db *gorm.DB, category *models.Category, name string, active, featured bool, created time.Time) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:         uuid.New(),
		CategoryID: category.ID,
		Name:       name,
		Slug:       name + "-" + uuid.NewString(),
		Price:      decimal.RequireFromString("120.00"),
		Sizes:      "S,M,L",
		Stock:      10,
		IsActive:   active,
		IsFeatured: featured,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestRepositoryListActiveProductsFiltersByCategory(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	outerwear := seedCategory(t, db, "Outerwear "+uuid.NewString(), "outerwear-"+uuid.NewString())
	knitwear := seedCategory(t, db, "Knitwear "+uuid.NewString(), "knitwear-"+uuid.NewString())

	now := time.Now().UTC()
	coat := seedCatalogProduct(t, db, outerwear, "coat", true, false, now)
	seedCatalogProduct(t, db, outerwear, "retired-coat", false, false, now)
	seedCatalogProduct(t, db, knitwear, "sweater", true, false, now)

	rows, err := repo.ListActiveProducts(context.Background(), &outerwear.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, coat.ID, rows[0].ID)
	require.NotNil(t, rows[0].Category)
	assert.Equal(t, outerwear.Slug, rows[0].Category.Slug)
}

func TestRepositoryListFeaturedProducts(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	category := seedCategory(t, db, "Featured "+uuid.NewString(), "featured-"+uuid.NewString())
	now := time.Now().UTC()
	hero := seedCatalogProduct(t, db, category, "hero", true, true, now)
	seedCatalogProduct(t, db, category, "plain", true, false, now)
	seedCatalogProduct(t, db, category, "hidden-hero", false, true, now)

	rows, err := repo.ListFeaturedProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, hero.ID, rows[0].ID)
}

func TestServiceGetProductHidesInactive(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	category := seedCategory(t, db, "Shoes "+uuid.NewString(), "shoes-"+uuid.NewString())
	now := time.Now().UTC()
	visible := seedCatalogProduct(t, db, category, "loafer", true, false, now)
	hidden := seedCatalogProduct(t, db, category, "discontinued", false, false, now)

	dto, err := svc.GetProduct(context.Background(), visible.Slug)
	require.NoError(t, err)
	assert.Equal(t, visible.Slug, dto.Slug)
	assert.Equal(t, []string{"S", "M", "L"}, dto.Sizes)

	_, err = svc.GetProduct(context.Background(), hidden.Slug)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceListProductsUnknownCategory(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	_, err = svc.ListProducts(context.Background(), "no-such-category")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
