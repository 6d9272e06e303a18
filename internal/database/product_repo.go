package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/lapicera/asistente-compras/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ListProducts returns a paginated list of products with optional filtering
func (db *DB) ListProducts(ctx context.Context, params *models.ProductListParams) ([]*models.Product, int, error) {
	var whereClauses []string
	var args []interface{}
	argIndex := 1

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(LOWER(name) LIKE LOWER($%d) OR LOWER(brand) LIKE LOWER($%d) OR LOWER(description) LIKE LOWER($%d))",
			argIndex, argIndex, argIndex,
		))
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}

	if params.Quality != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("quality_category = $%d", argIndex))
		args = append(args, string(params.Quality))
		argIndex++
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	// Get total count
	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", whereClause)
	err := db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, brand, price, quality_category, stock, created_at, updated_at
		FROM products
		%s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)

	args = append(args, params.Limit, params.Offset)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p := &models.Product{}
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Brand, &p.Price,
			&p.QualityCategory, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}

	return products, total, nil
}

// GetProductByID retrieves a product by its id
func (db *DB) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	p := &models.Product{}
	err := db.Pool.QueryRow(ctx, `
		SELECT id, name, description, brand, price, quality_category, stock, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Brand, &p.Price,
		&p.QualityCategory, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return p, nil
}

// FindProductByNameContains returns the first product whose name contains the
// fragment case-insensitively, in name order, or (nil, nil) when there is
// none. An empty catalog hit is normal here, not an error.
func (db *DB) FindProductByNameContains(ctx context.Context, fragment string) (*models.Product, error) {
	p := &models.Product{}
	err := db.Pool.QueryRow(ctx, `
		SELECT id, name, description, brand, price, quality_category, stock, created_at, updated_at
		FROM products
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name ASC
		LIMIT 1
	`, fragment).Scan(
		&p.ID, &p.Name, &p.Description, &p.Brand, &p.Price,
		&p.QualityCategory, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return p, nil
}

// CreateProduct creates a new catalog product
func (db *DB) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	p := &models.Product{}
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO products (name, description, brand, price, quality_category, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, name, description, brand, price, quality_category, stock, created_at, updated_at
	`, req.Name, req.Description, req.Brand, req.Price, string(req.QualityCategory), req.Stock).Scan(
		&p.ID, &p.Name, &p.Description, &p.Brand, &p.Price,
		&p.QualityCategory, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return p, nil
}

// UpdateProduct updates a product
func (db *DB) UpdateProduct(ctx context.Context, id int, req *models.UpdateProductRequest) (*models.Product, error) {
	p := &models.Product{}
	err := db.Pool.QueryRow(ctx, `
		UPDATE products
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    brand = COALESCE($4, brand),
		    price = COALESCE($5, price),
		    quality_category = COALESCE($6, quality_category),
		    stock = COALESCE($7, stock),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, description, brand, price, quality_category, stock, created_at, updated_at
	`, id, req.Name, req.Description, req.Brand, req.Price, req.QualityCategory, req.Stock).Scan(
		&p.ID, &p.Name, &p.Description, &p.Brand, &p.Price,
		&p.QualityCategory, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return p, nil
}

// DeleteProduct deletes a product. Lines referencing it are unbound by the
// ON DELETE SET NULL constraint, never deleted.
func (db *DB) DeleteProduct(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}
