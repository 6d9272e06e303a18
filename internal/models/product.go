package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QualityTier is the coarse price/quality classification of a catalog product
type QualityTier string

const (
	QualityEconomico  QualityTier = "economico"
	QualityIntermedio QualityTier = "intermedio"
	QualityCalidad    QualityTier = "calidad"
)

// Valid reports whether the tier is one of the known values
func (q QualityTier) Valid() bool {
	switch q {
	case QualityEconomico, QualityIntermedio, QualityCalidad:
		return true
	}
	return false
}

// Product represents a catalog product that can be suggested and priced
type Product struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Brand           string          `json:"brand"`
	Price           decimal.Decimal `json:"price"`
	QualityCategory QualityTier     `json:"quality_category"`
	Stock           int             `json:"stock"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateProductRequest is the request body for creating a product
type CreateProductRequest struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Brand           string          `json:"brand"`
	Price           decimal.Decimal `json:"price"`
	QualityCategory QualityTier     `json:"quality_category"`
	Stock           int             `json:"stock"`
}

// UpdateProductRequest is the request body for updating a product
type UpdateProductRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Brand           *string          `json:"brand,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	QualityCategory *QualityTier     `json:"quality_category,omitempty"`
	Stock           *int             `json:"stock,omitempty"`
}

// ProductListParams contains parameters for listing products
type ProductListParams struct {
	Limit   int
	Offset  int
	Search  string
	Quality QualityTier
}
