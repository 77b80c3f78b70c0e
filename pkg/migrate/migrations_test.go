package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xypherlux/storefront-backend/pkg/migrate"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestCartsMigrationEnforcesSingleActiveCart(t *testing.T) {
	content := readMigration(t, "*_create_carts.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS carts",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_carts_active_user ON carts (user_id) WHERE is_active",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_line ON cart_items (cart_id, product_id, size, color)",
		"CHECK (quantity > 0)",
		"DROP TABLE IF EXISTS cart_items",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOrdersMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_orders.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_number ON orders (order_number)",
		"FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE SET NULL",
		"CHECK (quantity > 0)",
		"DROP TABLE IF EXISTS order_items",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestProductsMigrationGuardsStock(t *testing.T) {
	content := readMigration(t, "*_create_catalog.sql")

	if !strings.Contains(content, "CHECK (stock >= 0)") {
		t.Error("stock must be guarded against going negative")
	}
	if !strings.Contains(content, "CREATE UNIQUE INDEX IF NOT EXISTS idx_products_slug") {
		t.Error("product slugs must be unique")
	}
}

func TestUsersMigrationIndexesLowercasedEmail(t *testing.T) {
	content := readMigration(t, "*_create_users.sql")

	if !strings.Contains(content, "CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (lower(email))") {
		t.Error("user emails must be unique case-insensitively")
	}
}

func TestEachTableCreatedByExactlyOneMigration(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}

	createdIn := map[string][]string{}
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read migration file: %v", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if !strings.HasPrefix(line, "CREATE TABLE IF NOT EXISTS ") {
				continue
			}
			table := strings.Fields(strings.TrimPrefix(line, "CREATE TABLE IF NOT EXISTS "))[0]
			createdIn[table] = append(createdIn[table], filepath.Base(path))
		}
	}

	if len(createdIn) == 0 {
		t.Fatal("no CREATE TABLE statements found")
	}
	for table, files := range createdIn {
		if len(files) > 1 {
			t.Errorf("table %s is created by multiple migrations: %v", table, files)
		}
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}
