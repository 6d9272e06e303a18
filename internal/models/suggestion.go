package models

import (
	"github.com/shopspring/decimal"
)

// CandidateSuggestion is a proposed product projection returned by the
// matcher. It is not a catalog product until it is resolved.
type CandidateSuggestion struct {
	ProductName string          `json:"product_name"`
	Brand       string          `json:"brand"`
	Price       decimal.Decimal `json:"price"`
	Quality     QualityTier     `json:"quality"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
}

// SuggestionSet is the derived suggestion data attached to a shopping list
// line. It is recomputed whenever matching is rerun, never edited in place.
type SuggestionSet struct {
	ItemAnalyzed      string                `json:"item_analyzed"`
	Quantity          int                   `json:"quantity"`
	Suggestions       []CandidateSuggestion `json:"suggestions"`
	PrimarySuggestion *CandidateSuggestion  `json:"primary_suggestion"`
	ConfidenceScore   float64               `json:"confidence_score"`
}

// ParsedLine is a single parsed line from free-text shopping list input
type ParsedLine struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	RawText    string `json:"raw_text"`
	LineNumber int    `json:"line_number"`
}
