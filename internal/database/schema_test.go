package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const migrationsDir = "../../migrations"

func TestMigrationFilesExist(t *testing.T) {
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		t.Fatal("Migrations directory does not exist")
	}

	expectedMigrations := []string{
		"00001_create_categories_table.sql",
		"00002_create_products_table.sql",
		"00003_create_product_variations_table.sql",
		"00004_create_orders_table.sql",
		"00005_create_order_items_table.sql",
		"00006_create_banners_table.sql",
	}

	for _, migration := range expectedMigrations {
		path := filepath.Join(migrationsDir, migration)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("Migration file %s does not exist", migration)
		}
	}
}

func TestMigrationFilesHaveUpAndDown(t *testing.T) {
	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("Failed to read migrations directory: %v", err)
	}

	sqlFileCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		sqlFileCount++
		content, err := os.ReadFile(filepath.Join(migrationsDir, file.Name()))
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", file.Name(), err)
			continue
		}

		contentStr := string(content)

		for _, directive := range []string{
			"-- +goose Up",
			"-- +goose Down",
			"-- +goose StatementBegin",
			"-- +goose StatementEnd",
		} {
			if !strings.Contains(contentStr, directive) {
				t.Errorf("Migration file %s missing '%s' directive", file.Name(), directive)
			}
		}
	}

	if sqlFileCount == 0 {
		t.Error("No SQL migration files found")
	}
}

func TestMigrationFilesCreateExpectedTables(t *testing.T) {
	expectedTables := map[string]string{
		"categories":         "00001_create_categories_table.sql",
		"products":           "00002_create_products_table.sql",
		"product_variations": "00003_create_product_variations_table.sql",
		"orders":             "00004_create_orders_table.sql",
		"order_items":        "00005_create_order_items_table.sql",
		"banners":            "00006_create_banners_table.sql",
	}

	for tableName, migrationFile := range expectedTables {
		path := filepath.Join(migrationsDir, migrationFile)
		content, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", migrationFile, err)
			continue
		}

		contentStr := string(content)

		createTableStmt := "CREATE TABLE IF NOT EXISTS " + tableName
		if !strings.Contains(contentStr, createTableStmt) {
			t.Errorf("Migration file %s does not create table %s", migrationFile, tableName)
		}

		dropTableStmt := "DROP TABLE IF EXISTS " + tableName
		if !strings.Contains(contentStr, dropTableStmt) {
			t.Errorf("Migration file %s does not drop table %s in down section", migrationFile, tableName)
		}
	}
}

func TestProductsTableHasRequiredColumns(t *testing.T) {
	path := filepath.Join(migrationsDir, "00002_create_products_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read products migration: %v", err)
	}

	contentStr := string(content)
	requiredColumns := []string{
		"id UUID PRIMARY KEY",
		"name VARCHAR",
		"description TEXT",
		"price BIGINT",
		"original_price BIGINT",
		"image_url VARCHAR",
		"category VARCHAR",
		"colors JSONB",
		"stock INTEGER",
		"created_at TIMESTAMP",
		"updated_at TIMESTAMP",
	}

	for _, column := range requiredColumns {
		if !strings.Contains(contentStr, column) {
			t.Errorf("Products table missing required column definition: %s", column)
		}
	}

	// Stock can never go negative, whatever the application does
	if !strings.Contains(contentStr, "CHECK (stock >= 0)") {
		t.Error("Products table missing non-negative stock constraint")
	}
}

func TestVariationsTableIsScopedToProduct(t *testing.T) {
	path := filepath.Join(migrationsDir, "00003_create_product_variations_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read variations migration: %v", err)
	}

	contentStr := string(content)

	if !strings.Contains(contentStr, "REFERENCES products(id) ON DELETE CASCADE") {
		t.Error("Variations must be removed with their product")
	}
	if !strings.Contains(contentStr, "PRIMARY KEY (product_id, name)") {
		t.Error("Variation names must be unique within a product")
	}
	if !strings.Contains(contentStr, "CHECK (stock >= 0)") {
		t.Error("Variations table missing non-negative stock constraint")
	}
}

func TestOrdersTableHasStatusConstraint(t *testing.T) {
	path := filepath.Join(migrationsDir, "00004_create_orders_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read orders migration: %v", err)
	}

	contentStr := string(content)

	requiredStatuses := []string{"new", "in_progress", "delivered", "cancelled"}
	for _, status := range requiredStatuses {
		if !strings.Contains(contentStr, "'"+status+"'") {
			t.Errorf("Orders table status constraint missing value: %s", status)
		}
	}
}

func TestOrderItemsTableSnapshotsTheSale(t *testing.T) {
	path := filepath.Join(migrationsDir, "00005_create_order_items_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read order items migration: %v", err)
	}

	contentStr := string(content)

	// Item rows snapshot name and price; they must survive product deletion,
	// so no foreign key on product_id
	for _, column := range []string{"product_name VARCHAR", "line_index INTEGER", "unit_price BIGINT", "subtotal BIGINT"} {
		if !strings.Contains(contentStr, column) {
			t.Errorf("Order items table missing snapshot column: %s", column)
		}
	}
	if strings.Contains(contentStr, "REFERENCES products") {
		t.Error("Order items must not reference products, snapshots outlive the catalog")
	}
	if !strings.Contains(contentStr, "REFERENCES orders(id) ON DELETE CASCADE") {
		t.Error("Order items must be removed with their order")
	}
}
