package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lapicera/asistente-compras/internal/models"
)

// Confidence constants for the rule-based matcher. These are static lookup
// values, not learned signals.
const (
	MatchedConfidence  = 0.85
	FallbackConfidence = 0.60
)

// category maps keyword matchers to a static ordered candidate table.
// Categories are checked in declaration order; the first keyword hit wins.
type category struct {
	Tag        string
	Keywords   []string
	Candidates []models.CandidateSuggestion
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// categories is the full suggestion table for the stationery catalog. Each
// table is ordered cheapest first and spans the three quality tiers.
var categories = []category{
	{
		Tag:      "cuaderno",
		Keywords: []string{"cuaderno"},
		Candidates: []models.CandidateSuggestion{
			{ProductName: "Cuaderno A4 Espiral 100 hojas", Brand: "Rivadavia", Price: price("450.00"), Quality: models.QualityEconomico, Stock: 50, Description: "Cuaderno económico ideal para uso escolar"},
			{ProductName: "Cuaderno A4 Tapa Dura 200 hojas", Brand: "Faber-Castell", Price: price("1200.00"), Quality: models.QualityIntermedio, Stock: 30, Description: "Cuaderno de calidad intermedia con tapa dura"},
			{ProductName: "Cuaderno A4 Premium 300 hojas", Brand: "Oxford", Price: price("2500.00"), Quality: models.QualityCalidad, Stock: 15, Description: "Cuaderno premium con papel de alta calidad"},
		},
	},
	{
		Tag:      "lapiz",
		Keywords: []string{"lápiz", "lapiz"},
		Candidates: []models.CandidateSuggestion{
			{ProductName: "Lápiz HB N°2 Caja x12", Brand: "Faber-Castell", Price: price("350.00"), Quality: models.QualityEconomico, Stock: 100, Description: "Lápices escolares básicos"},
			{ProductName: "Lápiz HB Ecológico x10", Brand: "Staedtler", Price: price("800.00"), Quality: models.QualityIntermedio, Stock: 60, Description: "Lápices ecológicos de calidad media"},
			{ProductName: "Lápiz HB Premium x6", Brand: "Caran d'Ache", Price: price("1500.00"), Quality: models.QualityCalidad, Stock: 25, Description: "Lápices premium de alta calidad, caja de 6 unidades"},
		},
	},
	{
		Tag:      "mochila",
		Keywords: []string{"mochila"},
		Candidates: []models.CandidateSuggestion{
			{ProductName: "Mochila Escolar Básica", Brand: "Genérica", Price: price("2500.00"), Quality: models.QualityEconomico, Stock: 25, Description: "Mochila escolar básica con múltiples compartimentos"},
			{ProductName: "Mochila Escolar Intermedia", Brand: "Samsonite", Price: price("4500.00"), Quality: models.QualityIntermedio, Stock: 20, Description: "Mochila escolar de calidad media con refuerzos y diseño ergonómico"},
			{ProductName: "Mochila Escolar con Ruedas", Brand: "Samsonite", Price: price("8500.00"), Quality: models.QualityCalidad, Stock: 10, Description: "Mochila de alta calidad con sistema de ruedas"},
		},
	},
	{
		Tag:      "goma",
		Keywords: []string{"goma"},
		Candidates: []models.CandidateSuggestion{
			{ProductName: "Goma de Borrar Básica", Brand: "Genérica", Price: price("50.00"), Quality: models.QualityEconomico, Stock: 200, Description: "Goma de borrar blanca básica para lápiz"},
			{ProductName: "Goma de Borrar Premium", Brand: "Faber-Castell", Price: price("200.00"), Quality: models.QualityIntermedio, Stock: 80, Description: "Goma de borrar premium que no mancha el papel"},
			{ProductName: "Goma de Borrar Artística", Brand: "Milan", Price: price("350.00"), Quality: models.QualityCalidad, Stock: 40, Description: "Goma moldeable para dibujo artístico"},
		},
	},
	{
		Tag:      "carpeta",
		Keywords: []string{"carpeta"},
		Candidates: []models.CandidateSuggestion{
			{ProductName: "Carpeta A4 Básica", Brand: "Genérica", Price: price("200.00"), Quality: models.QualityEconomico, Stock: 80, Description: "Carpeta básica A4 con anillos y funda plástica"},
			{ProductName: "Carpeta A4 con Anillos", Brand: "Faber-Castell", Price: price("450.00"), Quality: models.QualityIntermedio, Stock: 40, Description: "Carpeta A4 con anillos metálicos y funda resistente"},
			{ProductName: "Carpeta A4 Premium", Brand: "Oxford", Price: price("1200.00"), Quality: models.QualityCalidad, Stock: 20, Description: "Carpeta premium con anillos de alta calidad y diseño profesional"},
		},
	},
	{
		Tag:      "calculadora",
		Keywords: []string{"calculadora"},
		Candidates: []models.CandidateSuggestion{
			{ProductName: "Calculadora Básica", Brand: "Casio", Price: price("800.00"), Quality: models.QualityEconomico, Stock: 35, Description: "Calculadora básica con funciones matemáticas simples"},
			{ProductName: "Calculadora Científica", Brand: "Casio", Price: price("2500.00"), Quality: models.QualityIntermedio, Stock: 25, Description: "Calculadora científica con funciones avanzadas para secundaria"},
			{ProductName: "Calculadora Gráfica", Brand: "Texas Instruments", Price: price("15000.00"), Quality: models.QualityCalidad, Stock: 8, Description: "Calculadora gráfica avanzada para estudios superiores"},
		},
	},
}

// genericCandidates synthesizes one candidate per tier for item names that
// match no category, using the literal item name as the product name.
func genericCandidates(itemName string) []models.CandidateSuggestion {
	return []models.CandidateSuggestion{
		{ProductName: itemName, Brand: "Genérica", Price: price("250.00"), Quality: models.QualityEconomico, Stock: 30, Description: "Alternativa económica sugerida por el asistente"},
		{ProductName: itemName, Brand: "Genérica", Price: price("500.00"), Quality: models.QualityIntermedio, Stock: 20, Description: "Producto de calidad media sugerido por el asistente"},
		{ProductName: itemName, Brand: "Genérica", Price: price("900.00"), Quality: models.QualityCalidad, Stock: 10, Description: "Alternativa premium sugerida por el asistente"},
	}
}

// SeedProducts returns every candidate of the static category tables as a
// product creation request, in table order. Used by the seeder to preload
// the catalog so suggestions resolve against existing rows.
func SeedProducts() []models.CreateProductRequest {
	var reqs []models.CreateProductRequest
	for _, cat := range categories {
		for _, c := range cat.Candidates {
			reqs = append(reqs, models.CreateProductRequest{
				Name:            c.ProductName,
				Description:     c.Description,
				Brand:           c.Brand,
				Price:           c.Price,
				QualityCategory: c.Quality,
				Stock:           c.Stock,
			})
		}
	}
	return reqs
}

// CatalogMatcher classifies free-text item names into categories and returns
// ranked candidate products. It is deterministic and touches nothing outside
// its static tables.
type CatalogMatcher struct{}

// NewCatalogMatcher creates a new catalog matcher
func NewCatalogMatcher() *CatalogMatcher {
	return &CatalogMatcher{}
}

// Match returns the unfiltered suggestion set for an item name. The primary
// suggestion is the first candidate of the category table.
func (m *CatalogMatcher) Match(itemName string, quantity int) models.SuggestionSet {
	set := models.SuggestionSet{
		ItemAnalyzed:    itemName,
		Quantity:        quantity,
		ConfidenceScore: MatchedConfidence,
	}

	lower := strings.ToLower(itemName)
	for _, cat := range categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(lower, kw) {
				set.Suggestions = append([]models.CandidateSuggestion(nil), cat.Candidates...)
				set.PrimarySuggestion = &set.Suggestions[0]
				return set
			}
		}
	}

	set.Suggestions = genericCandidates(itemName)
	set.PrimarySuggestion = &set.Suggestions[0]
	set.ConfidenceScore = FallbackConfidence
	return set
}
