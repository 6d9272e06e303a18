package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lapicera/asistente-compras/internal/models"
)

func TestCatalogMatcherMatchKnownCategory(t *testing.T) {
	matcher := NewCatalogMatcher()

	set := matcher.Match("cuaderno azul", 3)

	assert.Equal(t, "cuaderno azul", set.ItemAnalyzed)
	assert.Equal(t, 3, set.Quantity)
	assert.Equal(t, MatchedConfidence, set.ConfidenceScore)
	require.Len(t, set.Suggestions, 3)

	require.NotNil(t, set.PrimarySuggestion)
	assert.Equal(t, "Cuaderno A4 Espiral 100 hojas", set.PrimarySuggestion.ProductName)
	assert.Equal(t, "Rivadavia", set.PrimarySuggestion.Brand)
	assert.True(t, set.PrimarySuggestion.Price.Equal(price("450.00")))
	assert.Equal(t, models.QualityEconomico, set.PrimarySuggestion.Quality)
}

func TestCatalogMatcherMatchIsCaseInsensitive(t *testing.T) {
	matcher := NewCatalogMatcher()

	set := matcher.Match("CUADERNO Tapa Dura", 1)

	assert.Equal(t, MatchedConfidence, set.ConfidenceScore)
	require.NotNil(t, set.PrimarySuggestion)
	assert.Equal(t, "Cuaderno A4 Espiral 100 hojas", set.PrimarySuggestion.ProductName)
}

func TestCatalogMatcherAccentVariants(t *testing.T) {
	matcher := NewCatalogMatcher()

	accented := matcher.Match("lápiz HB", 1)
	plain := matcher.Match("lapiz HB", 1)

	require.NotNil(t, accented.PrimarySuggestion)
	require.NotNil(t, plain.PrimarySuggestion)
	assert.Equal(t, accented.PrimarySuggestion.ProductName, plain.PrimarySuggestion.ProductName)
	assert.Equal(t, MatchedConfidence, accented.ConfidenceScore)
	assert.Equal(t, MatchedConfidence, plain.ConfidenceScore)
}

func TestCatalogMatcherFallback(t *testing.T) {
	matcher := NewCatalogMatcher()

	set := matcher.Match("xyz-unknown", 1)

	assert.Equal(t, FallbackConfidence, set.ConfidenceScore)
	require.Len(t, set.Suggestions, 3)

	tiers := []models.QualityTier{models.QualityEconomico, models.QualityIntermedio, models.QualityCalidad}
	for i, s := range set.Suggestions {
		assert.Equal(t, "xyz-unknown", s.ProductName)
		assert.Equal(t, tiers[i], s.Quality)
	}

	require.NotNil(t, set.PrimarySuggestion)
	assert.Equal(t, models.QualityEconomico, set.PrimarySuggestion.Quality)
}

func TestCatalogMatcherEveryCategorySpansAllTiers(t *testing.T) {
	for _, cat := range categories {
		require.Len(t, cat.Candidates, 3, "category %s", cat.Tag)
		seen := map[models.QualityTier]bool{}
		for _, c := range cat.Candidates {
			seen[c.Quality] = true
			assert.True(t, c.Price.IsPositive(), "category %s candidate %s", cat.Tag, c.ProductName)
		}
		assert.Len(t, seen, 3, "category %s", cat.Tag)
	}
}

func TestCatalogMatcherIsDeterministic(t *testing.T) {
	matcher := NewCatalogMatcher()

	first := matcher.Match("goma de borrar", 2)
	second := matcher.Match("goma de borrar", 2)

	assert.Equal(t, first, second)
}

func TestSeedProducts(t *testing.T) {
	products := SeedProducts()

	require.Len(t, products, len(categories)*3)
	for _, p := range products {
		assert.NotEmpty(t, p.Name)
		assert.True(t, p.QualityCategory.Valid())
		assert.False(t, p.Price.IsNegative())
	}
}
