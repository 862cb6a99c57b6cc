package timezone

import (
	"fmt"
	"horoscopus-web/internal/types"
	"sync"
	"time"
	_ "time/tzdata" // zone names must load on hosts without a zoneinfo database

	"github.com/ringsaturn/tzf"
)

// Resolver maps coordinates to an IANA zone name
type Resolver interface {
	Resolve(coords types.Coords) (string, error)
}

type service struct {
	finder tzf.F
}

var (
	instance *service
	initErr  error
	once     sync.Once
)

// NewService returns the process-wide resolver. The tzf finder keeps the
// timezone polygons in memory, so it is built once and shared.
func NewService() (Resolver, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &service{finder: finder}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// Resolve returns names like "Europe/Moscow" for the given coordinates
func (s *service) Resolve(coords types.Coords) (string, error) {
	if !coords.Valid() {
		return "", fmt.Errorf("coordinates out of range lat=%f, lon=%f", coords.Latitude, coords.Longitude)
	}

	name := s.finder.GetTimezoneName(coords.Longitude, coords.Latitude)
	if name == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates lat=%f, lon=%f", coords.Latitude, coords.Longitude)
	}

	return name, nil
}

// IsValidName reports whether name is a zone the Go runtime can load
func IsValidName(name string) bool {
	if name == "" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}
