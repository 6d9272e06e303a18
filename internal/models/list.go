package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// QualityPreference selects which tiers of suggestions a list surfaces.
// "cualquiera" disables filtering.
type QualityPreference string

const (
	PreferenceCualquiera QualityPreference = "cualquiera"
	PreferenceEconomico  QualityPreference = "economico"
	PreferenceIntermedio QualityPreference = "intermedio"
	PreferenceCalidad    QualityPreference = "calidad"
)

// Valid reports whether the preference is one of the known values
func (p QualityPreference) Valid() bool {
	switch p {
	case PreferenceCualquiera, PreferenceEconomico, PreferenceIntermedio, PreferenceCalidad:
		return true
	}
	return false
}

// LineStatus tracks how far a line has progressed through resolution.
// Transitions only move forward, except that editing the raw text or
// quantity returns the line to unresolved.
type LineStatus string

const (
	LineStatusUnresolved LineStatus = "unresolved"
	LineStatusSuggested  LineStatus = "suggested"
	LineStatusChosen     LineStatus = "resolved-by-choice"
)

// ShoppingList represents a shopping list, optionally owned by a named user
type ShoppingList struct {
	ID                int               `json:"id"`
	OwnerLabel        *string           `json:"owner_label,omitempty"`
	Name              string            `json:"name"`
	QualityPreference QualityPreference `json:"quality_preference"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// ShoppingListLine represents a single requested item on a list
type ShoppingListLine struct {
	ID                int            `json:"id"`
	ListID            int            `json:"list_id"`
	ItemNameRaw       string         `json:"item_name_raw"`
	QuantityRequested int            `json:"quantity_requested"`
	ProductID         *int           `json:"product_id,omitempty"`
	Suggestions       *SuggestionSet `json:"suggestions,omitempty"`
	Status            LineStatus     `json:"status"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// ShoppingListLineWithProduct includes the resolved product fields
type ShoppingListLineWithProduct struct {
	ShoppingListLine
	ProductName    *string          `json:"product_name,omitempty"`
	ProductBrand   *string          `json:"product_brand,omitempty"`
	ProductQuality *QualityTier     `json:"product_quality,omitempty"`
	UnitPrice      *decimal.Decimal `json:"unit_price,omitempty"`
	EstimatedCost  decimal.Decimal  `json:"estimated_cost"`
}

// ShoppingListWithLines includes the list and all its lines
type ShoppingListWithLines struct {
	ShoppingList
	Lines              []ShoppingListLineWithProduct `json:"lines"`
	TotalItems         int                           `json:"total_items"`
	TotalEstimatedCost decimal.Decimal               `json:"total_estimated_cost"`
}

// ShoppingListSummary is a compact representation for list views
type ShoppingListSummary struct {
	ID                 int               `json:"id"`
	Name               string            `json:"name"`
	QualityPreference  QualityPreference `json:"quality_preference"`
	TotalItems         int               `json:"total_items"`
	TotalEstimatedCost decimal.Decimal   `json:"total_estimated_cost"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// ListShare maps an opaque share token to a list
type ListShare struct {
	Token     string    `json:"token"`
	ListID    int       `json:"list_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ListExportLine is one priced row of the export projection
type ListExportLine struct {
	ItemNameRaw string           `json:"item_name_raw"`
	ProductName *string          `json:"product_name,omitempty"`
	Brand       *string          `json:"brand,omitempty"`
	Quality     *QualityTier     `json:"quality,omitempty"`
	Quantity    int              `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
}

// ListExport is the structured projection handed to the reporting layer.
// Rendering (PDF or otherwise) is the consumer's concern.
type ListExport struct {
	ListName          string            `json:"list_name"`
	OwnerLabel        string            `json:"owner_label"`
	QualityPreference QualityPreference `json:"quality_preference"`
	CreatedAt         time.Time         `json:"created_at"`
	Lines             []ListExportLine  `json:"lines"`
	GrandTotal        decimal.Decimal   `json:"grand_total"`
}

// Request types

// CreateListRequest is the request body for creating a shopping list.
// ItemsText is the raw multi-line block entered by the user.
type CreateListRequest struct {
	Name              string            `json:"name"`
	ItemsText         string            `json:"items_text"`
	OwnerLabel        *string           `json:"owner_label,omitempty"`
	QualityPreference QualityPreference `json:"quality_preference"`
}

// UpdateListRequest is the request body for updating a shopping list
type UpdateListRequest struct {
	Name              *string            `json:"name,omitempty"`
	QualityPreference *QualityPreference `json:"quality_preference,omitempty"`
}

// AddLineRequest is the request body for adding a line to a list.
// ItemText is parsed like a single input line, so "3 cuadernos" works;
// an explicit Quantity overrides the parsed one.
type AddLineRequest struct {
	ItemText string `json:"item_text"`
	Quantity int    `json:"quantity,omitempty"`
}

// UpdateLineRequest is the request body for editing a line
type UpdateLineRequest struct {
	ItemText *string `json:"item_text,omitempty"`
	Quantity *int    `json:"quantity,omitempty"`
}

// SelectSuggestionRequest carries the 0-based index into the line's stored
// suggestion sequence. Kept raw so a non-numeric value can be reported as an
// index error instead of a generic decode failure.
type SelectSuggestionRequest struct {
	SuggestionIndex json.RawMessage `json:"suggestion_index"`
}

// ListListParams contains parameters for listing shopping lists
type ListListParams struct {
	Limit  int
	Offset int
}
