package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/lapicera/asistente-compras/internal/models"
)

var (
	ErrListNotFound  = errors.New("shopping list not found")
	ErrLineNotFound  = errors.New("list line not found")
	ErrShareNotFound = errors.New("share link not found")
)

// ListShoppingLists returns shopping lists with line counts and estimated totals
func (db *DB) ListShoppingLists(ctx context.Context, params *models.ListListParams) ([]*models.ShoppingListSummary, int, error) {
	var total int
	err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM shopping_lists`).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT
			sl.id, sl.name, sl.quality_preference, sl.created_at, sl.updated_at,
			COALESCE((SELECT COUNT(*) FROM shopping_list_lines WHERE list_id = sl.id), 0) as total_items,
			COALESCE((
				SELECT SUM(p.price * l.quantity_requested)
				FROM shopping_list_lines l
				JOIN products p ON l.product_id = p.id
				WHERE l.list_id = sl.id
			), 0) as total_estimated_cost
		FROM shopping_lists sl
		ORDER BY sl.updated_at DESC
		LIMIT $1 OFFSET $2
	`, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var lists []*models.ShoppingListSummary
	for rows.Next() {
		l := &models.ShoppingListSummary{}
		err := rows.Scan(
			&l.ID, &l.Name, &l.QualityPreference, &l.CreatedAt, &l.UpdatedAt,
			&l.TotalItems, &l.TotalEstimatedCost,
		)
		if err != nil {
			return nil, 0, err
		}
		lists = append(lists, l)
	}

	return lists, total, nil
}

// GetShoppingListByID retrieves a shopping list with all its lines and costs
func (db *DB) GetShoppingListByID(ctx context.Context, id int) (*models.ShoppingListWithLines, error) {
	list := &models.ShoppingListWithLines{}
	err := db.Pool.QueryRow(ctx, `
		SELECT id, owner_label, name, quality_preference, created_at, updated_at
		FROM shopping_lists
		WHERE id = $1
	`, id).Scan(
		&list.ID, &list.OwnerLabel, &list.Name, &list.QualityPreference, &list.CreatedAt, &list.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrListNotFound
		}
		return nil, err
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT
			l.id, l.list_id, l.item_name_raw, l.quantity_requested, l.product_id,
			l.suggestions, l.status, l.created_at, l.updated_at,
			p.name, p.brand, p.quality_category, p.price
		FROM shopping_list_lines l
		LEFT JOIN products p ON l.product_id = p.id
		WHERE l.list_id = $1
		ORDER BY l.created_at ASC, l.id ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list.Lines = []models.ShoppingListLineWithProduct{}
	total := decimal.Zero

	for rows.Next() {
		line := models.ShoppingListLineWithProduct{}
		err := rows.Scan(
			&line.ID, &line.ListID, &line.ItemNameRaw, &line.QuantityRequested, &line.ProductID,
			&line.Suggestions, &line.Status, &line.CreatedAt, &line.UpdatedAt,
			&line.ProductName, &line.ProductBrand, &line.ProductQuality, &line.UnitPrice,
		)
		if err != nil {
			return nil, err
		}
		if line.ProductID != nil && line.UnitPrice != nil {
			line.EstimatedCost = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.QuantityRequested)))
		}
		total = total.Add(line.EstimatedCost)
		list.Lines = append(list.Lines, line)
	}

	list.TotalItems = len(list.Lines)
	list.TotalEstimatedCost = total

	return list, nil
}

// CreateShoppingList creates a new shopping list
func (db *DB) CreateShoppingList(ctx context.Context, name string, ownerLabel *string, pref models.QualityPreference) (*models.ShoppingList, error) {
	list := &models.ShoppingList{}

	err := db.Pool.QueryRow(ctx, `
		INSERT INTO shopping_lists (owner_label, name, quality_preference, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, owner_label, name, quality_preference, created_at, updated_at
	`, ownerLabel, name, string(pref)).Scan(
		&list.ID, &list.OwnerLabel, &list.Name, &list.QualityPreference, &list.CreatedAt, &list.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return list, nil
}

// UpdateShoppingList updates a shopping list's name or quality preference
func (db *DB) UpdateShoppingList(ctx context.Context, id int, req *models.UpdateListRequest) (*models.ShoppingList, error) {
	list := &models.ShoppingList{}

	err := db.Pool.QueryRow(ctx, `
		UPDATE shopping_lists
		SET name = COALESCE($2, name),
		    quality_preference = COALESCE($3, quality_preference),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, owner_label, name, quality_preference, created_at, updated_at
	`, id, req.Name, req.QualityPreference).Scan(
		&list.ID, &list.OwnerLabel, &list.Name, &list.QualityPreference, &list.CreatedAt, &list.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrListNotFound
		}
		return nil, err
	}

	return list, nil
}

// DeleteShoppingList deletes a shopping list; its lines cascade
func (db *DB) DeleteShoppingList(ctx context.Context, id int) error {
	result, err := db.Pool.Exec(ctx, `DELETE FROM shopping_lists WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrListNotFound
	}

	return nil
}

// CreateLine adds a raw, not-yet-matched line to a list
func (db *DB) CreateLine(ctx context.Context, listID int, itemNameRaw string, quantity int) (*models.ShoppingListLine, error) {
	// Verify the list exists
	var exists bool
	err := db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM shopping_lists WHERE id = $1)`, listID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrListNotFound
	}

	line := &models.ShoppingListLine{}
	err = db.Pool.QueryRow(ctx, `
		INSERT INTO shopping_list_lines (list_id, item_name_raw, quantity_requested, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, list_id, item_name_raw, quantity_requested, product_id, suggestions, status, created_at, updated_at
	`, listID, itemNameRaw, quantity, string(models.LineStatusUnresolved)).Scan(
		&line.ID, &line.ListID, &line.ItemNameRaw, &line.QuantityRequested, &line.ProductID,
		&line.Suggestions, &line.Status, &line.CreatedAt, &line.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	db.touchList(ctx, listID)

	return line, nil
}

// GetLineByID retrieves a single line of a list
func (db *DB) GetLineByID(ctx context.Context, listID, lineID int) (*models.ShoppingListLine, error) {
	line := &models.ShoppingListLine{}
	err := db.Pool.QueryRow(ctx, `
		SELECT id, list_id, item_name_raw, quantity_requested, product_id, suggestions, status, created_at, updated_at
		FROM shopping_list_lines
		WHERE id = $1 AND list_id = $2
	`, lineID, listID).Scan(
		&line.ID, &line.ListID, &line.ItemNameRaw, &line.QuantityRequested, &line.ProductID,
		&line.Suggestions, &line.Status, &line.CreatedAt, &line.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLineNotFound
		}
		return nil, err
	}

	return line, nil
}

// SetLineSuggestions stores a freshly computed suggestion set and binds the
// resolved product, if any. Passing a nil productID leaves the line unbound,
// which is the defined intermediate state when resolution fails.
func (db *DB) SetLineSuggestions(ctx context.Context, lineID int, set *models.SuggestionSet, productID *int, status models.LineStatus) (*models.ShoppingListLine, error) {
	line := &models.ShoppingListLine{}
	err := db.Pool.QueryRow(ctx, `
		UPDATE shopping_list_lines
		SET suggestions = $2, product_id = $3, status = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, list_id, item_name_raw, quantity_requested, product_id, suggestions, status, created_at, updated_at
	`, lineID, set, productID, string(status)).Scan(
		&line.ID, &line.ListID, &line.ItemNameRaw, &line.QuantityRequested, &line.ProductID,
		&line.Suggestions, &line.Status, &line.CreatedAt, &line.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLineNotFound
		}
		return nil, err
	}

	db.touchList(ctx, line.ListID)

	return line, nil
}

// BindLineProduct rebinds a line to a different resolved product
func (db *DB) BindLineProduct(ctx context.Context, lineID int, productID int, status models.LineStatus) (*models.ShoppingListLine, error) {
	line := &models.ShoppingListLine{}
	err := db.Pool.QueryRow(ctx, `
		UPDATE shopping_list_lines
		SET product_id = $2, status = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, list_id, item_name_raw, quantity_requested, product_id, suggestions, status, created_at, updated_at
	`, lineID, productID, string(status)).Scan(
		&line.ID, &line.ListID, &line.ItemNameRaw, &line.QuantityRequested, &line.ProductID,
		&line.Suggestions, &line.Status, &line.CreatedAt, &line.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLineNotFound
		}
		return nil, err
	}

	db.touchList(ctx, line.ListID)

	return line, nil
}

// ResetLine rewrites a line's raw text and quantity and clears its binding
// and suggestions, returning it to the unresolved state
func (db *DB) ResetLine(ctx context.Context, listID, lineID int, itemNameRaw string, quantity int) (*models.ShoppingListLine, error) {
	line := &models.ShoppingListLine{}
	err := db.Pool.QueryRow(ctx, `
		UPDATE shopping_list_lines
		SET item_name_raw = $3, quantity_requested = $4,
		    product_id = NULL, suggestions = NULL, status = $5, updated_at = NOW()
		WHERE id = $2 AND list_id = $1
		RETURNING id, list_id, item_name_raw, quantity_requested, product_id, suggestions, status, created_at, updated_at
	`, listID, lineID, itemNameRaw, quantity, string(models.LineStatusUnresolved)).Scan(
		&line.ID, &line.ListID, &line.ItemNameRaw, &line.QuantityRequested, &line.ProductID,
		&line.Suggestions, &line.Status, &line.CreatedAt, &line.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLineNotFound
		}
		return nil, err
	}

	db.touchList(ctx, listID)

	return line, nil
}

// DeleteLine removes a line from a list; the list itself survives
func (db *DB) DeleteLine(ctx context.Context, listID, lineID int) error {
	result, err := db.Pool.Exec(ctx, `
		DELETE FROM shopping_list_lines WHERE id = $1 AND list_id = $2
	`, lineID, listID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrLineNotFound
	}

	db.touchList(ctx, listID)

	return nil
}

// CreateListShare creates a read-only share token for a list
func (db *DB) CreateListShare(ctx context.Context, listID int) (*models.ListShare, error) {
	var exists bool
	err := db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM shopping_lists WHERE id = $1)`, listID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrListNotFound
	}

	share := &models.ListShare{}
	err = db.Pool.QueryRow(ctx, `
		INSERT INTO list_shares (token, list_id, created_at)
		VALUES ($1, $2, NOW())
		RETURNING token, list_id, created_at
	`, uuid.NewString(), listID).Scan(&share.Token, &share.ListID, &share.CreatedAt)

	if err != nil {
		return nil, err
	}

	return share, nil
}

// GetListIDByShareToken resolves a share token to its list id
func (db *DB) GetListIDByShareToken(ctx context.Context, token string) (int, error) {
	var listID int
	// Cast so a malformed token is a miss, not a type error
	err := db.Pool.QueryRow(ctx, `SELECT list_id FROM list_shares WHERE token::text = $1`, token).Scan(&listID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrShareNotFound
		}
		return 0, err
	}
	return listID, nil
}

// touchList bumps a list's updated_at after one of its lines changes
func (db *DB) touchList(ctx context.Context, listID int) {
	_, _ = db.Pool.Exec(ctx, `UPDATE shopping_lists SET updated_at = NOW() WHERE id = $1`, listID)
}
