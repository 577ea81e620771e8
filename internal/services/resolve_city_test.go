package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"healthycity-service/internal/domain"
)

type stubGeocoder struct {
	coords domain.Coordinates
	err    error
	calls  int
}

func (g *stubGeocoder) Geocode(ctx context.Context, city string) (domain.Coordinates, error) {
	g.calls++
	if g.err != nil {
		return domain.Coordinates{}, g.err
	}
	return g.coords, nil
}

type stubCache struct {
	entries map[string]domain.Coordinates
	getErr  error
	puts    int
}

func (c *stubCache) Get(ctx context.Context, city string) (domain.Coordinates, bool, error) {
	if c.getErr != nil {
		return domain.Coordinates{}, false, c.getErr
	}
	v, ok := c.entries[city]
	return v, ok, nil
}

func (c *stubCache) Put(ctx context.Context, city string, v domain.Coordinates) error {
	c.puts++
	if c.entries == nil {
		c.entries = map[string]domain.Coordinates{}
	}
	c.entries[city] = v
	return nil
}

func TestResolveKnownCityHitsStaticTable(t *testing.T) {
	// Any network call for a table city is a bug.
	g := &stubGeocoder{err: errors.New("must not be called")}
	r := &CityResolver{Geocoder: g}

	for _, name := range []string{"Tokyo", "tokyo", "  TOKYO  "} {
		got, err := r.Resolve(context.Background(), name)
		if err != nil {
			t.Fatalf("Resolve(%q): unexpected error: %v", name, err)
		}
		if got.Lat != 35.6762 || got.Lon != 139.6503 {
			t.Fatalf("Resolve(%q) = %+v, want (35.6762, 139.6503)", name, got)
		}
	}

	if g.calls != 0 {
		t.Fatalf("geocoder was called %d times for a static-table city", g.calls)
	}
}

func TestResolveEveryStaticCityIsStable(t *testing.T) {
	r := &CityResolver{}

	for name, want := range knownCities {
		for i := 0; i < 2; i++ {
			got, err := r.Resolve(context.Background(), name)
			if err != nil {
				t.Fatalf("Resolve(%q): unexpected error: %v", name, err)
			}
			if got != want {
				t.Fatalf("Resolve(%q) = %+v, want %+v", name, got, want)
			}
		}
	}
}

func TestResolveUnknownCityWithoutGeocoder(t *testing.T) {
	r := &CityResolver{}

	_, err := r.Resolve(context.Background(), "atlantis")
	if !errors.Is(err, domain.ErrGeocodingUnavailable) {
		t.Fatalf("error = %v, want ErrGeocodingUnavailable", err)
	}
}

func TestResolveUnknownCityGeocoderError(t *testing.T) {
	g := &stubGeocoder{err: fmt.Errorf("boom: %w", domain.ErrGeocodingUnavailable)}
	r := &CityResolver{Geocoder: g}

	_, err := r.Resolve(context.Background(), "atlantis")
	if !errors.Is(err, domain.ErrGeocodingUnavailable) {
		t.Fatalf("error = %v, want ErrGeocodingUnavailable", err)
	}
}

func TestResolveUnknownCityNoResults(t *testing.T) {
	g := &stubGeocoder{err: fmt.Errorf("no results: %w", domain.ErrCityNotFound)}
	r := &CityResolver{Geocoder: g}

	_, err := r.Resolve(context.Background(), "xxxxxx")
	if !errors.Is(err, domain.ErrCityNotFound) {
		t.Fatalf("error = %v, want ErrCityNotFound", err)
	}
}

func TestResolveEmptyName(t *testing.T) {
	r := &CityResolver{}

	_, err := r.Resolve(context.Background(), "   ")
	if !errors.Is(err, domain.ErrCityNotFound) {
		t.Fatalf("error = %v, want ErrCityNotFound", err)
	}
}

func TestResolveUsesCacheBeforeGeocoder(t *testing.T) {
	g := &stubGeocoder{err: errors.New("must not be called")}
	c := &stubCache{entries: map[string]domain.Coordinates{
		"springfield": {Lat: 39.8, Lon: -89.65},
	}}
	r := &CityResolver{Geocoder: g, Cache: c}

	got, err := r.Resolve(context.Background(), "Springfield")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Lat != 39.8 || got.Lon != -89.65 {
		t.Fatalf("got %+v from cache, want (39.8, -89.65)", got)
	}
	if g.calls != 0 {
		t.Fatalf("geocoder called despite cache hit")
	}
}

func TestResolveWritesBackToCache(t *testing.T) {
	g := &stubGeocoder{coords: domain.Coordinates{Lat: 1, Lon: 2}}
	c := &stubCache{}
	r := &CityResolver{Geocoder: g, Cache: c}

	if _, err := r.Resolve(context.Background(), "somewhere"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.puts != 1 {
		t.Fatalf("cache puts = %d, want 1", c.puts)
	}
}

func TestResolveSurvivesBrokenCache(t *testing.T) {
	g := &stubGeocoder{coords: domain.Coordinates{Lat: 1, Lon: 2}}
	c := &stubCache{getErr: errors.New("cache down")}
	r := &CityResolver{Geocoder: g, Cache: c}

	got, err := r.Resolve(context.Background(), "somewhere")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Lat != 1 || got.Lon != 2 {
		t.Fatalf("got %+v, want geocoder result", got)
	}
}
