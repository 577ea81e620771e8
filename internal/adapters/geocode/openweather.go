package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"healthycity-service/internal/domain"
	"healthycity-service/internal/platform/metrics"
	"healthycity-service/internal/platform/obs"
)

// OpenWeatherGeocoder resolves city names through the OpenWeatherMap direct
// geocoding API. One attempt per lookup; a transport or server failure maps
// straight to domain.ErrGeocodingUnavailable, an empty result set to
// domain.ErrCityNotFound.
//
// The limiter keeps us inside the free-tier courtesy rate.
type OpenWeatherGeocoder struct {
	session *http.Client
	apiKey  string
	baseURL string
	limiter *rate.Limiter
}

func NewOpenWeatherGeocoder(apiKey string) (*OpenWeatherGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("openweathermap api key is empty")
	}

	return &OpenWeatherGeocoder{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "http://api.openweathermap.org",
		limiter: rate.NewLimiter(rate.Limit(1), 3),
	}, nil
}

// WithBaseURL points the geocoder at a different endpoint. Used by tests.
func (g *OpenWeatherGeocoder) WithBaseURL(u string) *OpenWeatherGeocoder {
	g.baseURL = u
	return g
}

type geocodeResult struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

func (g *OpenWeatherGeocoder) Geocode(ctx context.Context, city string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "owm.Geocode")(&err)
	defer func() { metrics.ObserveGeocodeCall(err) }()

	if err := g.limiter.Wait(ctx); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: rate limiter: %w: %w", city, domain.ErrGeocodingUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/geo/1.0/direct", nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: create request: %w", city, err)
	}
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("q", city)
	q.Set("limit", "1")
	q.Set("appid", g.apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := g.session.Do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w: %w", city, domain.ErrGeocodingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: unexpected status %d: %w", city, resp.StatusCode, domain.ErrGeocodingUnavailable)
	}

	var decoded []geocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: decode response: %w: %w", city, domain.ErrGeocodingUnavailable, err)
	}

	if len(decoded) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocoding results for %q: %w", city, domain.ErrCityNotFound)
	}

	return domain.Coordinates{Lat: decoded[0].Lat, Lon: decoded[0].Lon}, nil
}
