package ports

import (
	"context"

	"healthycity-service/internal/domain"
)

// Contract for resolving a free-form city name to geographic coordinates.
type Geocoder interface {
	// Resolve a city name. Returns domain.ErrCityNotFound when the service
	// has no match and domain.ErrGeocodingUnavailable when the call fails.
	Geocode(ctx context.Context, city string) (domain.Coordinates, error)
}

// Optional cache in front of the live geocoder. Implementations must be safe
// for concurrent use; a nil cache disables caching entirely.
type GeocodeCache interface {
	// Fetch cached coordinates for a normalized city key.
	Get(ctx context.Context, city string) (domain.Coordinates, bool, error)
	// Store a city -> coordinate mapping.
	Put(ctx context.Context, city string, c domain.Coordinates) error
}
