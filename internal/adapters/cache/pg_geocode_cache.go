package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"healthycity-service/internal/domain"
	"healthycity-service/internal/platform/obs"
)

// PGGeocodeCache is a Postgres-backed cache mapping normalized city names to
// coordinates. City keys are expected to be lowercased and trimmed by the
// caller.
type PGGeocodeCache struct {
	DB *sql.DB
}

func NewPGGeocodeCache(db *sql.DB) *PGGeocodeCache {
	return &PGGeocodeCache{DB: db}
}

// EnsureSchema creates the cache table when it does not exist yet.
func (s *PGGeocodeCache) EnsureSchema(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		city TEXT PRIMARY KEY,
		lat  DOUBLE PRECISION NOT NULL,
		lon  DOUBLE PRECISION NOT NULL
	);
	`

	if _, err := s.DB.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("geocode cache: create table: %w", err)
	}

	return nil
}

// Fetch cached coordinates for one city key.
func (s *PGGeocodeCache) Get(ctx context.Context, city string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	q := `
	SELECT lat, lon
	FROM geocode_cache
	WHERE city = $1;
	`

	var lat, lon float64
	err = s.DB.QueryRowContext(ctx, q, city).Scan(&lat, &lon)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query city=%q: %w", city, err)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, true, nil
}

// Store a city -> coordinate mapping.
func (s *PGGeocodeCache) Put(ctx context.Context, city string, c domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}
	if city == "" {
		return errors.New("insert geocode cache: empty city key")
	}

	q := `
	INSERT INTO geocode_cache (city, lat, lon)
	VALUES ($1, $2, $3)
	ON CONFLICT (city) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`

	if _, err := s.DB.ExecContext(ctx, q, city, c.Lat, c.Lon); err != nil {
		return fmt.Errorf("insert geocode cache city=%q: %w", city, err)
	}

	return nil
}
