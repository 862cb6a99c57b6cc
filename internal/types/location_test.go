package types

import "testing"

func TestLocationSuggestion_Subtitle(t *testing.T) {
	tests := []struct {
		name       string
		suggestion LocationSuggestion
		want       string
	}{
		{"city and country", LocationSuggestion{City: "Moscow", Country: "Russia"}, "Moscow, Russia"},
		{"country only", LocationSuggestion{Country: "Russia"}, "Russia"},
		{"city only", LocationSuggestion{City: "Moscow"}, "Moscow"},
		{"empty", LocationSuggestion{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.suggestion.Subtitle(); got != tt.want {
				t.Errorf("Subtitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCoords_Valid(t *testing.T) {
	tests := []struct {
		name   string
		coords Coords
		want   bool
	}{
		{"Moscow", NewCoords(55.7558, 37.6173), true},
		{"poles and antimeridian", NewCoords(-90, 180), true},
		{"latitude out of range", NewCoords(91, 0), false},
		{"longitude out of range", NewCoords(0, -181), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.coords.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
