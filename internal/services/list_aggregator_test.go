package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lapicera/asistente-compras/internal/models"
)

func pricedLine(name string, qty int, unitPrice string) models.ShoppingListLineWithProduct {
	productID := 1
	p := decimal.RequireFromString(unitPrice)
	return models.ShoppingListLineWithProduct{
		ShoppingListLine: models.ShoppingListLine{
			ItemNameRaw:       name,
			QuantityRequested: qty,
			ProductID:         &productID,
			Status:            models.LineStatusSuggested,
		},
		UnitPrice: &p,
	}
}

func unresolvedLine(name string, qty int) models.ShoppingListLineWithProduct {
	return models.ShoppingListLineWithProduct{
		ShoppingListLine: models.ShoppingListLine{
			ItemNameRaw:       name,
			QuantityRequested: qty,
			Status:            models.LineStatusUnresolved,
		},
	}
}

func TestLineCost(t *testing.T) {
	line := pricedLine("cuaderno", 3, "450.00")
	assert.True(t, LineCost(&line).Equal(decimal.RequireFromString("1350.00")))

	unbound := unresolvedLine("algo raro", 5)
	assert.True(t, LineCost(&unbound).IsZero())
}

func TestListTotalCost(t *testing.T) {
	lines := []models.ShoppingListLineWithProduct{
		pricedLine("cuaderno", 3, "450.00"),
		unresolvedLine("algo raro", 5),
		pricedLine("goma", 2, "50.00"),
	}

	total := ListTotalCost(lines)
	assert.True(t, total.Equal(decimal.RequireFromString("1450.00")))
	assert.Equal(t, 3, ListItemCount(lines))

	assert.True(t, ListTotalCost(nil).IsZero())
	assert.Equal(t, 0, ListItemCount(nil))
}

func TestSelectCandidate(t *testing.T) {
	set := &models.SuggestionSet{
		ItemAnalyzed: "cuaderno",
		Suggestions: []models.CandidateSuggestion{
			{ProductName: "barato", Quality: models.QualityEconomico},
			{ProductName: "medio", Quality: models.QualityIntermedio},
			{ProductName: "caro", Quality: models.QualityCalidad},
		},
	}

	chosen, err := SelectCandidate(set, 1)
	require.NoError(t, err)
	assert.Equal(t, "medio", chosen.ProductName)

	_, err = SelectCandidate(set, 5)
	assert.ErrorIs(t, err, ErrSuggestionIndex)

	_, err = SelectCandidate(set, -1)
	assert.ErrorIs(t, err, ErrSuggestionIndex)

	_, err = SelectCandidate(nil, 0)
	assert.ErrorIs(t, err, ErrSuggestionIndex)

	_, err = SelectCandidate(&models.SuggestionSet{}, 0)
	assert.ErrorIs(t, err, ErrSuggestionIndex)

	// Failed selection leaves the stored sequence untouched
	require.Len(t, set.Suggestions, 3)
	assert.Equal(t, "barato", set.Suggestions[0].ProductName)
}

func TestBuildListExport(t *testing.T) {
	owner := "Carla"
	list := &models.ShoppingListWithLines{
		ShoppingList: models.ShoppingList{
			Name:              "Vuelta al cole",
			OwnerLabel:        &owner,
			QualityPreference: models.PreferenceEconomico,
		},
		Lines: []models.ShoppingListLineWithProduct{
			pricedLine("3 cuadernos", 3, "450.00"),
			unresolvedLine("algo raro", 1),
		},
	}

	export := BuildListExport(list)

	assert.Equal(t, "Vuelta al cole", export.ListName)
	assert.Equal(t, "Carla", export.OwnerLabel)
	assert.Equal(t, models.PreferenceEconomico, export.QualityPreference)
	require.Len(t, export.Lines, 2)

	assert.True(t, export.Lines[0].Subtotal.Equal(decimal.RequireFromString("1350.00")))
	assert.True(t, export.Lines[1].Subtotal.IsZero())
	assert.Nil(t, export.Lines[1].UnitPrice)
	assert.True(t, export.GrandTotal.Equal(decimal.RequireFromString("1350.00")))
}

func TestBuildListExportAnonymousOwner(t *testing.T) {
	list := &models.ShoppingListWithLines{
		ShoppingList: models.ShoppingList{Name: "Sin dueño", QualityPreference: models.PreferenceCualquiera},
	}

	export := BuildListExport(list)

	assert.Equal(t, "Invitado", export.OwnerLabel)
	assert.Empty(t, export.Lines)
	assert.True(t, export.GrandTotal.IsZero())
}

func TestExportTotalMatchesListTotal(t *testing.T) {
	lines := []models.ShoppingListLineWithProduct{
		pricedLine("cuaderno", 2, "1200.00"),
		pricedLine("lápiz", 5, "350.00"),
		unresolvedLine("misterio", 9),
	}
	list := &models.ShoppingListWithLines{
		ShoppingList: models.ShoppingList{Name: "Consistencia"},
		Lines:        lines,
	}

	export := BuildListExport(list)
	assert.True(t, export.GrandTotal.Equal(ListTotalCost(lines)))
}
