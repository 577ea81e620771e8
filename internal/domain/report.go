package domain

// Represents the vegetation measurement for one city request.
// Reports are request-scoped results: constructed, rendered once, discarded.
type GreenCoverReport struct {
	City            string
	Location        Coordinates
	NDVI            float64
	CoveragePercent float64
	DataSource      string
}

// Represents the land-surface temperature measurement for one city request.
type HeatReport struct {
	City           string
	Location       Coordinates
	AvgTempCelsius float64
	DataSource     string
}

// Simulated flood vulnerability figures for dashboard layout.
type FloodRiskReport struct {
	City          string
	Location      Coordinates
	RiskScore     int
	HighRiskZones int
	AvgElevationM int
}

// Simulated air quality figures for dashboard layout.
type AirQualityReport struct {
	City             string
	Location         Coordinates
	AvgAQI           int
	UnhealthySensors int
	MainPollutant    string
}

// Simulated city snapshot shown on the search page.
type CityOverview struct {
	City         string
	Country      string
	TemperatureC float64
	GreenCover   int
	FloodRisk    int
	AQI          int
	RiskLevel    string
}

// Simulated comprehensive scoring for one city.
type ReportCard struct {
	City         string
	Location     Coordinates
	OverallScore int
	Summary      string
	Grades       map[string]string
}

// Simulated projection of an urban planning intervention.
type SimulationOutcome struct {
	Intervention string
	Scale        string
	TempCurrent  string
	TempChange   string
	AQICurrent   int
	AQIChange    int
	CO2Absorbed  string
	Investment   string
}
