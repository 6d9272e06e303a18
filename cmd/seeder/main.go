package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/lapicera/asistente-compras/internal/config"
	"github.com/lapicera/asistente-compras/internal/database"
	"github.com/lapicera/asistente-compras/internal/models"
	"github.com/lapicera/asistente-compras/internal/services"
)

func main() {
	// Command line flags
	dryRun := flag.Bool("dry-run", false, "Preview changes without writing to database")
	flag.Parse()

	// Load .env
	godotenv.Load()

	// Load config
	cfg := config.Load()

	products := services.SeedProducts()
	log.Printf("Catalog seed contains %d products", len(products))

	if *dryRun {
		log.Println("DRY RUN - No changes will be made")
		printPreview(products)
		return
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations so the seeder works on a fresh database
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	created, skipped, err := seedProducts(db, products)
	if err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}

	log.Printf("Seed complete: %d new products, %d already present", created, skipped)
}

// seedProducts inserts the catalog in a single transaction, skipping
// products that already exist by exact name and brand. Reruns are no-ops.
func seedProducts(db *database.DB, products []models.CreateProductRequest) (created, skipped int, err error) {
	ctx := context.Background()

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range products {
		var existingID int
		err := tx.QueryRow(ctx, `
			SELECT id FROM products WHERE name = $1 AND brand = $2
		`, p.Name, p.Brand).Scan(&existingID)

		if err == pgx.ErrNoRows {
			_, err = tx.Exec(ctx, `
				INSERT INTO products (name, description, brand, price, quality_category, stock)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, p.Name, p.Description, p.Brand, p.Price, p.QualityCategory, p.Stock)
			if err != nil {
				return created, skipped, fmt.Errorf("failed to insert %q: %w", p.Name, err)
			}
			created++
		} else if err != nil {
			return created, skipped, fmt.Errorf("failed to check existing %q: %w", p.Name, err)
		} else {
			skipped++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return created, skipped, nil
}

// printPreview shows the products the seed would insert
func printPreview(products []models.CreateProductRequest) {
	fmt.Println("\n=== Catalog seed preview ===")
	for _, p := range products {
		fmt.Printf("  [%s] %s (%s) - $%s, stock %d\n",
			p.QualityCategory, p.Name, p.Brand, p.Price.StringFixed(2), p.Stock)
	}
}
