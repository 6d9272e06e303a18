package services

import (
	"github.com/lapicera/asistente-compras/internal/models"
)

// FilterByQuality narrows candidates to the declared quality preference.
// "cualquiera" passes the sequence through unchanged. If filtering would
// empty a non-empty sequence, the first unfiltered candidate is kept so a
// line always has at least one actionable suggestion.
func FilterByQuality(candidates []models.CandidateSuggestion, pref models.QualityPreference) []models.CandidateSuggestion {
	if pref == "" || pref == models.PreferenceCualquiera {
		return candidates
	}

	var filtered []models.CandidateSuggestion
	for _, c := range candidates {
		if c.Quality == models.QualityTier(pref) {
			filtered = append(filtered, c)
		}
	}

	if len(filtered) == 0 && len(candidates) > 0 {
		return candidates[:1]
	}
	return filtered
}

// Suggester runs the full matching pipeline: category match, quality filter,
// primary selection.
type Suggester struct {
	matcher *CatalogMatcher
}

// NewSuggester creates a new suggester
func NewSuggester() *Suggester {
	return &Suggester{matcher: NewCatalogMatcher()}
}

// Suggest returns the suggestion set for an item, filtered by the caller's
// quality preference. The first filtered candidate becomes the primary
// suggestion. The confidence score is unaffected by filtering.
func (s *Suggester) Suggest(itemName string, quantity int, pref models.QualityPreference) models.SuggestionSet {
	set := s.matcher.Match(itemName, quantity)
	set.Suggestions = FilterByQuality(set.Suggestions, pref)
	if len(set.Suggestions) > 0 {
		set.PrimarySuggestion = &set.Suggestions[0]
	} else {
		set.PrimarySuggestion = nil
	}
	return set
}
