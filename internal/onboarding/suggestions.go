package onboarding

import "horoscopus-web/internal/types"

// MaxVisibleSuggestions caps the rendered list regardless of how many
// results the search returned.
const MaxVisibleSuggestions = 5

// SuggestionView is one rendered list item
type SuggestionView struct {
	ID       int64
	Name     string
	Subtitle string
}

// VisibleSuggestions returns the items that are actually shown
func VisibleSuggestions(all []types.LocationSuggestion) []types.LocationSuggestion {
	if len(all) > MaxVisibleSuggestions {
		all = all[:MaxVisibleSuggestions]
	}
	out := make([]types.LocationSuggestion, len(all))
	copy(out, all)
	return out
}

func suggestionViews(items []types.LocationSuggestion) []SuggestionView {
	views := make([]SuggestionView, 0, len(items))
	for _, s := range items {
		views = append(views, SuggestionView{ID: s.ID, Name: s.Name, Subtitle: s.Subtitle()})
	}
	return views
}
