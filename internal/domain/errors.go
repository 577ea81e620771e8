package domain

import "errors"

// Failure taxonomy shared across the resolver, the imagery pipelines and the
// HTTP layer. Handlers translate these with errors.Is; everything else wraps.
var (
	// ErrCityNotFound: the city name could not be resolved to coordinates.
	ErrCityNotFound = errors.New("city not found")

	// ErrNoData: the query window contained no qualifying imagery, or the
	// reduction over the region produced no value.
	ErrNoData = errors.New("no data for region")

	// ErrGeocodingUnavailable: the geocoding call failed or is unconfigured.
	ErrGeocodingUnavailable = errors.New("geocoding service unavailable")

	// ErrPlatformNotReady: the analytics platform was never initialized.
	ErrPlatformNotReady = errors.New("analytics platform not initialized")
)
