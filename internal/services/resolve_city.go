package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"healthycity-service/internal/domain"
	"healthycity-service/internal/platform/obs"
	"healthycity-service/internal/ports"
)

// Coordinates for common cities, looked up before any network call.
// Keys are lowercase.
var knownCities = map[string]domain.Coordinates{
	"shimoga":    {Lat: 13.9299, Lon: 75.5681},
	"challakere": {Lat: 14.3135, Lon: 76.6534},
	"mumbai":     {Lat: 19.0760, Lon: 72.8777},
	"tokyo":      {Lat: 35.6762, Lon: 139.6503},
	"london":     {Lat: 51.5072, Lon: -0.1276},
	"new york":   {Lat: 40.7128, Lon: -74.0060},
}

// CityResolver turns city names into coordinates: static table first, then an
// optional cache, then the live geocoding API. A single fallback, no retries.
//
// Geocoder and Cache may both be nil. With a nil Geocoder any city outside the
// static table resolves to ErrGeocodingUnavailable (unconfigured API key).
type CityResolver struct {
	Geocoder ports.Geocoder
	Cache    ports.GeocodeCache
}

func (r *CityResolver) Resolve(ctx context.Context, city string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "resolver.Resolve")(&err)

	key := strings.ToLower(strings.TrimSpace(city))
	if key == "" {
		return domain.Coordinates{}, fmt.Errorf("resolve city: empty name: %w", domain.ErrCityNotFound)
	}

	if c, ok := knownCities[key]; ok {
		return c, nil
	}

	if r.Cache != nil {
		c, ok, err := r.Cache.Get(ctx, key)
		if err != nil {
			// A broken cache must not fail the request.
			log.Printf("geocode cache read failed city=%q err=%v", key, err)
		} else if ok {
			return c, nil
		}
	}

	if r.Geocoder == nil {
		return domain.Coordinates{}, fmt.Errorf("resolve city %q: geocoder not configured: %w", key, domain.ErrGeocodingUnavailable)
	}

	c, err := r.Geocoder.Geocode(ctx, key)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("resolve city %q: %w", key, err)
	}

	if r.Cache != nil {
		if err := r.Cache.Put(ctx, key, c); err != nil {
			log.Printf("geocode cache write failed city=%q err=%v", key, err)
		}
	}

	return c, nil
}
