package types

import "fmt"

// LocationSuggestion is a place returned by the location search service.
// Values are immutable once returned; the form keeps only the ID.
type LocationSuggestion struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Score     float64 `json:"score"`
}

// Coords returns the suggestion's coordinates
func (s LocationSuggestion) Coords() Coords {
	return NewCoords(s.Latitude, s.Longitude)
}

// Subtitle renders the "city, country" line shown under the name.
// The city part is dropped when unknown.
func (s LocationSuggestion) Subtitle() string {
	if s.City == "" {
		return s.Country
	}
	if s.Country == "" {
		return s.City
	}
	return fmt.Sprintf("%s, %s", s.City, s.Country)
}
