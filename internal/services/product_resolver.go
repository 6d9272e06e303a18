package services

import (
	"context"
	"fmt"

	"github.com/lapicera/asistente-compras/internal/models"
)

// resolverPrefixRunes bounds the name fragment used for the containment
// search, tolerating very long generated names.
const resolverPrefixRunes = 50

// CatalogStore is the catalog persistence boundary used by the resolver
type CatalogStore interface {
	// FindProductByNameContains returns the first product whose name contains
	// the fragment case-insensitively, or (nil, nil) when there is none.
	FindProductByNameContains(ctx context.Context, fragment string) (*models.Product, error)
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
}

// ProductResolver turns a chosen candidate suggestion into a concrete catalog
// product id, creating the product when no match exists. This is the only
// piece of the suggestion pipeline that writes to the catalog.
type ProductResolver struct {
	catalog CatalogStore
}

// NewProductResolver creates a new product resolver
func NewProductResolver(catalog CatalogStore) *ProductResolver {
	return &ProductResolver{catalog: catalog}
}

// Resolve looks up a product whose name contains the candidate's name
// (truncated to a bounded prefix) and returns its id, or creates one from the
// candidate's fields. Repeated calls with the same candidate resolve to the
// same product after the first creation. The containment match is a
// heuristic: near-duplicate names with different prefixes can still create
// distinct products.
func (r *ProductResolver) Resolve(ctx context.Context, candidate models.CandidateSuggestion) (int, error) {
	fragment := truncateRunes(candidate.ProductName, resolverPrefixRunes)

	existing, err := r.catalog.FindProductByNameContains(ctx, fragment)
	if err != nil {
		return 0, fmt.Errorf("failed to search catalog: %w", err)
	}
	if existing != nil {
		return existing.ID, nil
	}

	created, err := r.catalog.CreateProduct(ctx, &models.CreateProductRequest{
		Name:            candidate.ProductName,
		Description:     candidate.Description,
		Brand:           candidate.Brand,
		Price:           candidate.Price,
		QualityCategory: candidate.Quality,
		Stock:           candidate.Stock,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}

	return created.ID, nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
