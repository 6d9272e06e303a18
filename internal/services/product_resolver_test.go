package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lapicera/asistente-compras/internal/models"
)

// fakeCatalog is an in-memory CatalogStore for resolver tests
type fakeCatalog struct {
	products []models.Product
	nextID   int
	creates  int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{nextID: 1}
}

func (f *fakeCatalog) FindProductByNameContains(_ context.Context, fragment string) (*models.Product, error) {
	lower := strings.ToLower(fragment)
	for i := range f.products {
		if strings.Contains(strings.ToLower(f.products[i].Name), lower) {
			return &f.products[i], nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) CreateProduct(_ context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	p := models.Product{
		ID:              f.nextID,
		Name:            req.Name,
		Description:     req.Description,
		Brand:           req.Brand,
		Price:           req.Price,
		QualityCategory: req.QualityCategory,
		Stock:           req.Stock,
	}
	f.nextID++
	f.creates++
	f.products = append(f.products, p)
	return &p, nil
}

func TestResolverCreatesWhenNoMatch(t *testing.T) {
	catalog := newFakeCatalog()
	resolver := NewProductResolver(catalog)

	candidate := models.CandidateSuggestion{
		ProductName: "Cuaderno A4 Espiral 100 hojas",
		Brand:       "Rivadavia",
		Price:       price("450.00"),
		Quality:     models.QualityEconomico,
		Stock:       50,
	}

	id, err := resolver.Resolve(context.Background(), candidate)
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.Equal(t, 1, catalog.creates)

	created := catalog.products[0]
	assert.Equal(t, candidate.ProductName, created.Name)
	assert.Equal(t, candidate.Brand, created.Brand)
	assert.True(t, created.Price.Equal(candidate.Price))
	assert.Equal(t, candidate.Quality, created.QualityCategory)
}

func TestResolverIsIdempotentForSameCandidate(t *testing.T) {
	catalog := newFakeCatalog()
	resolver := NewProductResolver(catalog)

	candidate := models.CandidateSuggestion{
		ProductName: "Goma de Borrar Básica",
		Brand:       "Genérica",
		Price:       price("50.00"),
		Quality:     models.QualityEconomico,
	}

	first, err := resolver.Resolve(context.Background(), candidate)
	require.NoError(t, err)
	second, err := resolver.Resolve(context.Background(), candidate)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, catalog.creates)
}

func TestResolverReusesExistingProduct(t *testing.T) {
	catalog := newFakeCatalog()
	_, err := catalog.CreateProduct(context.Background(), &models.CreateProductRequest{
		Name:  "Calculadora Científica Casio fx-82",
		Brand: "Casio",
		Price: price("2500.00"),
	})
	require.NoError(t, err)

	resolver := NewProductResolver(catalog)
	id, err := resolver.Resolve(context.Background(), models.CandidateSuggestion{
		ProductName: "Calculadora Científica",
		Brand:       "Casio",
		Price:       price("2500.00"),
		Quality:     models.QualityIntermedio,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, id)
	assert.Equal(t, 1, catalog.creates)
}

func TestResolverTruncatesLongNames(t *testing.T) {
	catalog := newFakeCatalog()
	resolver := NewProductResolver(catalog)

	long := strings.Repeat("á", 80)
	id, err := resolver.Resolve(context.Background(), models.CandidateSuggestion{
		ProductName: long,
		Brand:       "Genérica",
		Price:       price("250.00"),
		Quality:     models.QualityEconomico,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	// Same truncated prefix finds the product created with the full name
	again, err := resolver.Resolve(context.Background(), models.CandidateSuggestion{
		ProductName: long,
		Brand:       "Genérica",
		Price:       price("250.00"),
		Quality:     models.QualityEconomico,
	})
	require.NoError(t, err)
	assert.Equal(t, id, again)
	assert.Equal(t, 1, catalog.creates)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 50))
	assert.Equal(t, "ááá", truncateRunes("ááááá", 3))
	assert.Equal(t, "", truncateRunes("", 10))
}
