package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lapicera/asistente-compras/internal/models"
)

func tierCandidates() []models.CandidateSuggestion {
	return []models.CandidateSuggestion{
		{ProductName: "barato", Quality: models.QualityEconomico, Price: price("100.00")},
		{ProductName: "medio", Quality: models.QualityIntermedio, Price: price("500.00")},
		{ProductName: "caro", Quality: models.QualityCalidad, Price: price("900.00")},
	}
}

func TestFilterByQuality(t *testing.T) {
	tests := []struct {
		name      string
		input     []models.CandidateSuggestion
		pref      models.QualityPreference
		wantNames []string
	}{
		{
			name:      "cualquiera passes through",
			input:     tierCandidates(),
			pref:      models.PreferenceCualquiera,
			wantNames: []string{"barato", "medio", "caro"},
		},
		{
			name:      "empty preference passes through",
			input:     tierCandidates(),
			pref:      "",
			wantNames: []string{"barato", "medio", "caro"},
		},
		{
			name:      "matching tier only",
			input:     tierCandidates(),
			pref:      models.PreferenceIntermedio,
			wantNames: []string{"medio"},
		},
		{
			name: "fallback to first candidate when filter would empty",
			input: []models.CandidateSuggestion{
				{ProductName: "barato", Quality: models.QualityEconomico},
				{ProductName: "medio", Quality: models.QualityIntermedio},
			},
			pref:      models.PreferenceCalidad,
			wantNames: []string{"barato"},
		},
		{
			name:      "empty input stays empty",
			input:     nil,
			pref:      models.PreferenceCalidad,
			wantNames: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByQuality(tt.input, tt.pref)

			var names []string
			for _, c := range got {
				names = append(names, c.ProductName)
			}
			assert.Equal(t, tt.wantNames, names)

			if len(tt.input) > 0 {
				assert.NotEmpty(t, got, "non-empty input must never filter to nothing")
			}
		})
	}
}

func TestSuggesterPrimaryFollowsFilter(t *testing.T) {
	s := NewSuggester()

	set := s.Suggest("cuaderno universitario", 2, models.PreferenceCalidad)

	require.Len(t, set.Suggestions, 1)
	require.NotNil(t, set.PrimarySuggestion)
	assert.Equal(t, "Cuaderno A4 Premium 300 hojas", set.PrimarySuggestion.ProductName)
	assert.Equal(t, models.QualityCalidad, set.PrimarySuggestion.Quality)
	assert.Equal(t, MatchedConfidence, set.ConfidenceScore)
}

func TestSuggesterUnfilteredKeepsCheapestPrimary(t *testing.T) {
	s := NewSuggester()

	set := s.Suggest("mochila", 1, models.PreferenceCualquiera)

	require.Len(t, set.Suggestions, 3)
	require.NotNil(t, set.PrimarySuggestion)
	assert.Equal(t, models.QualityEconomico, set.PrimarySuggestion.Quality)
}

func TestSuggesterFallbackItemFilteredByTier(t *testing.T) {
	s := NewSuggester()

	set := s.Suggest("producto desconocido", 4, models.PreferenceIntermedio)

	assert.Equal(t, FallbackConfidence, set.ConfidenceScore)
	require.Len(t, set.Suggestions, 1)
	assert.Equal(t, "producto desconocido", set.Suggestions[0].ProductName)
	assert.Equal(t, models.QualityIntermedio, set.Suggestions[0].Quality)
}
