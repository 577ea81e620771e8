package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"healthycity-service/internal/domain"
)

const geocodeKeyPrefix = "geocode:"

// RedisGeocodeCache is a Redis-backed alternative to the Postgres cache.
// Entries expire after a day so stale third-party data ages out.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client) *RedisGeocodeCache {
	return &RedisGeocodeCache{
		Client: client,
		TTL:    24 * time.Hour,
	}
}

type cachedCoords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (s *RedisGeocodeCache) Get(ctx context.Context, city string) (domain.Coordinates, bool, error) {
	if s.Client == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: redis client is nil")
	}

	raw, err := s.Client.Get(ctx, geocodeKeyPrefix+city).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache city=%q: %w", city, err)
	}

	var c cachedCoords
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache city=%q: decode: %w", city, err)
	}

	return domain.Coordinates{Lat: c.Lat, Lon: c.Lon}, true, nil
}

func (s *RedisGeocodeCache) Put(ctx context.Context, city string, c domain.Coordinates) error {
	if s.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}
	if city == "" {
		return errors.New("insert geocode cache: empty city key")
	}

	raw, err := json.Marshal(cachedCoords{Lat: c.Lat, Lon: c.Lon})
	if err != nil {
		return fmt.Errorf("insert geocode cache city=%q: encode: %w", city, err)
	}

	if err := s.Client.Set(ctx, geocodeKeyPrefix+city, raw, s.TTL).Err(); err != nil {
		return fmt.Errorf("insert geocode cache city=%q: %w", city, err)
	}

	return nil
}
