package location

import (
	"context"
	"errors"
	"fmt"
	"horoscopus-web/internal/apperr"
	"horoscopus-web/internal/providers/openstreetmap"
	"horoscopus-web/internal/timezone"
	"horoscopus-web/internal/types"
	"log/slog"
	"strconv"
)

// Searcher returns location suggestions for a free-text query, ordered by
// relevance as the provider ranks them.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]types.LocationSuggestion, error)
}

// ForwardGeocodeProvider defines the interface for OpenStreetMap-style search providers
type ForwardGeocodeProvider interface {
	Search(ctx context.Context, query string, limit int) ([]openstreetmap.SearchResult, error)
}

// Provider is a named Searcher in a Chain
type Provider struct {
	Name     string
	Searcher Searcher
}

// Chain tries providers in order and returns the first non-empty result.
// A provider failure is logged and the next one is tried; only when every
// provider fails is an error returned.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

func NewChain(logger *slog.Logger, providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
		logger:    logger.With("component", "location-chain"),
	}
}

func (c *Chain) Search(ctx context.Context, query string, limit int) ([]types.LocationSuggestion, error) {
	var errs []error
	for _, p := range c.providers {
		results, err := p.Searcher.Search(ctx, query, limit)
		if err != nil {
			if ctx.Err() != nil {
				return nil, apperr.Network("location search cancelled", ctx.Err())
			}
			c.logger.Warn("location provider failed",
				"provider", p.Name,
				"query", query,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name, err))
			continue
		}
		if len(results) > 0 {
			return results, nil
		}
	}

	if len(errs) == len(c.providers) && len(errs) > 0 {
		return nil, apperr.Network("all location providers failed", errors.Join(errs...))
	}
	return []types.LocationSuggestion{}, nil
}

// nominatimSearcher implements Searcher on top of OpenStreetMap
type nominatimSearcher struct {
	provider ForwardGeocodeProvider
	timezone timezone.Resolver
	logger   *slog.Logger
}

// NewNominatimSearcher creates a Searcher backed by a forward geocoder.
// Timezones come from the result's extratags, then from the polygon resolver.
func NewNominatimSearcher(provider ForwardGeocodeProvider, resolver timezone.Resolver, logger *slog.Logger) Searcher {
	return &nominatimSearcher{
		provider: provider,
		timezone: resolver,
		logger:   logger.With("component", "nominatim-searcher"),
	}
}

func (s *nominatimSearcher) Search(ctx context.Context, query string, limit int) ([]types.LocationSuggestion, error) {
	results, err := s.provider.Search(ctx, query, limit)
	if err != nil {
		return nil, apperr.Network("nominatim search failed", err)
	}

	suggestions := make([]types.LocationSuggestion, 0, len(results))
	for _, r := range results {
		suggestion, err := s.translateSearchResult(r)
		if err != nil {
			s.logger.Warn("skipping search result",
				"place_id", r.PlaceId,
				"reason", err,
			)
			continue
		}
		suggestions = append(suggestions, suggestion)
	}

	return suggestions, nil
}

// translateSearchResult converts a Nominatim search hit to a domain suggestion
func (s *nominatimSearcher) translateSearchResult(r openstreetmap.SearchResult) (types.LocationSuggestion, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return types.LocationSuggestion{}, fmt.Errorf("invalid latitude %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return types.LocationSuggestion{}, fmt.Errorf("invalid longitude %q: %w", r.Lon, err)
	}
	coords := types.NewCoords(lat, lon)

	// OSM tags are free text, only trust names the runtime can load
	tz := r.ExtraTags.Timezone
	if tz != "" && !timezone.IsValidName(tz) {
		s.logger.Debug("ignoring unknown timezone tag", "place_id", r.PlaceId, "timezone", tz)
		tz = ""
	}
	if tz == "" && s.timezone != nil {
		tz, err = s.timezone.Resolve(coords)
		if err != nil {
			return types.LocationSuggestion{}, fmt.Errorf("timezone not provided: %w", err)
		}
	}
	if tz == "" {
		return types.LocationSuggestion{}, errors.New("timezone not provided")
	}

	city := r.Address.Locality()
	name := r.DisplayName
	if name == "" {
		name = r.Name
	}
	if name == "" {
		name = city
	}
	if name == "" {
		name = r.Address.Country
	}

	return types.LocationSuggestion{
		ID:        r.PlaceId,
		Name:      name,
		City:      city,
		State:     r.Address.Area(),
		Country:   r.Address.Country,
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
		Timezone:  tz,
		Score:     r.Importance,
	}, nil
}
