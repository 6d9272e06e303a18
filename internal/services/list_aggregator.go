package services

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/lapicera/asistente-compras/internal/models"
)

// ErrSuggestionIndex is returned when a reselection index is out of bounds of
// the line's stored suggestion sequence, or not a number at all.
var ErrSuggestionIndex = errors.New("suggestion index out of range")

// LineCost returns the estimated cost of a single line: resolved product
// price times requested quantity, or zero while the line is unresolved.
func LineCost(line *models.ShoppingListLineWithProduct) decimal.Decimal {
	if line.ProductID == nil || line.UnitPrice == nil {
		return decimal.Zero
	}
	return line.UnitPrice.Mul(decimal.NewFromInt(int64(line.QuantityRequested)))
}

// ListTotalCost returns the estimated cost of a whole list. Unresolved lines
// contribute zero. Recomputed on demand, never cached.
func ListTotalCost(lines []models.ShoppingListLineWithProduct) decimal.Decimal {
	total := decimal.Zero
	for i := range lines {
		total = total.Add(LineCost(&lines[i]))
	}
	return total
}

// ListItemCount returns the number of lines regardless of resolution state
func ListItemCount(lines []models.ShoppingListLineWithProduct) int {
	return len(lines)
}

// SelectCandidate validates a 0-based index against a line's stored
// suggestion sequence and returns the chosen candidate. Out-of-range indexes
// are an error, never clamped.
func SelectCandidate(set *models.SuggestionSet, index int) (models.CandidateSuggestion, error) {
	if set == nil || len(set.Suggestions) == 0 {
		return models.CandidateSuggestion{}, ErrSuggestionIndex
	}
	if index < 0 || index >= len(set.Suggestions) {
		return models.CandidateSuggestion{}, ErrSuggestionIndex
	}
	return set.Suggestions[index], nil
}

// BuildListExport assembles the structured projection handed to the reporting
// layer. Costing follows the same rules as LineCost and ListTotalCost.
func BuildListExport(list *models.ShoppingListWithLines) models.ListExport {
	export := models.ListExport{
		ListName:          list.Name,
		OwnerLabel:        "Invitado",
		QualityPreference: list.QualityPreference,
		CreatedAt:         list.CreatedAt,
		Lines:             make([]models.ListExportLine, 0, len(list.Lines)),
	}
	if list.OwnerLabel != nil && *list.OwnerLabel != "" {
		export.OwnerLabel = *list.OwnerLabel
	}

	for i := range list.Lines {
		line := &list.Lines[i]
		export.Lines = append(export.Lines, models.ListExportLine{
			ItemNameRaw: line.ItemNameRaw,
			ProductName: line.ProductName,
			Brand:       line.ProductBrand,
			Quality:     line.ProductQuality,
			Quantity:    line.QuantityRequested,
			UnitPrice:   line.UnitPrice,
			Subtotal:    LineCost(line),
		})
		export.GrandTotal = export.GrandTotal.Add(LineCost(line))
	}

	return export
}
