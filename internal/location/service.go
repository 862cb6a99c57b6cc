package location

import (
	"fmt"
	"horoscopus-web/internal/config"
	"horoscopus-web/internal/providers/openstreetmap"
	"horoscopus-web/internal/timezone"
	"log/slog"
)

// NewLocationService builds the provider chain named in the search config.
// api is the Horoscopus backend searcher used for the "api" provider.
func NewLocationService(cfg config.SearchConfig, api Searcher, logger *slog.Logger) (Searcher, error) {
	providers := make([]Provider, 0, len(cfg.Providers))
	for _, name := range cfg.Providers {
		switch name {
		case "api":
			if api == nil {
				return nil, fmt.Errorf("search provider %q requires an API client", name)
			}
			providers = append(providers, Provider{Name: name, Searcher: api})
		case "nominatim":
			resolver, err := timezone.NewService()
			if err != nil {
				return nil, fmt.Errorf("failed to create timezone service: %w", err)
			}
			osm := openstreetmap.NewClient(cfg.UserAgent, logger,
				openstreetmap.WithBaseURL(cfg.NominatimURL),
				openstreetmap.WithRate(cfg.NominatimRate),
			)
			providers = append(providers, Provider{Name: name, Searcher: NewNominatimSearcher(osm, resolver, logger)})
		default:
			return nil, fmt.Errorf("unknown search provider %q", name)
		}
	}

	if len(providers) == 1 {
		return providers[0].Searcher, nil
	}
	return NewChain(logger, providers...), nil
}
