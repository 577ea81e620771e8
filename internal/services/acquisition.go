package services

import "time"

// Acquisition parameters shared by both real-data pipelines. Temperature and
// vegetation must originate from the same collection filter window, so the
// window is defined exactly once.
var (
	windowStart = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)
)

const (
	regionRadiusMeters = 5000
	maxCloudPercent    = 20
	reduceScaleMeters  = 30
	reduceMaxPixels    = int64(1e9)
)
