package domain

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) LonLat() []float64 { return []float64{c.Lon, c.Lat} }

// Region is a circular area of interest around a center point.
// Regions are only ever passed as query parameters, never stored.
type Region struct {
	Center       Coordinates
	RadiusMeters float64
}
