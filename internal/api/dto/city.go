package dto

// Location echoes the resolved coordinates back to the caller.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type GreenCoverResponse struct {
	City        string   `json:"city"`
	Location    Location `json:"location"`
	AvgCoverage string   `json:"avg_coverage"`
	AvgNDVI     string   `json:"avg_ndvi"`
	DataSource  string   `json:"data_source"`
}

type HeatMapResponse struct {
	City       string   `json:"city"`
	Location   Location `json:"location"`
	AvgTemp    string   `json:"avg_temp"`
	DataSource string   `json:"data_source"`
}

type FloodRiskResponse struct {
	City          string   `json:"city"`
	Location      Location `json:"location"`
	RiskScore     string   `json:"risk_score"`
	HighRiskZones int      `json:"high_risk_zones"`
	AvgElevation  string   `json:"avg_elevation"`
}

type AirQualityResponse struct {
	City             string   `json:"city"`
	Location         Location `json:"location"`
	AvgAQI           int      `json:"avg_aqi"`
	UnhealthySensors int      `json:"unhealthy_sensors"`
	MainPollutant    string   `json:"main_pollutant"`
}

type OverviewResponse struct {
	City        string `json:"city"`
	Country     string `json:"country"`
	Temperature string `json:"temperature"`
	GreenCover  string `json:"green_cover"`
	FloodRisk   string `json:"flood_risk"`
	AQI         int    `json:"aqi"`
	RiskLevel   string `json:"risk_level"`
}

type Grade struct {
	Grade string `json:"grade"`
}

type ReportCardResponse struct {
	City         string           `json:"city"`
	Location     Location         `json:"location"`
	OverallScore int              `json:"overall_score"`
	Summary      string           `json:"summary"`
	Grades       map[string]Grade `json:"grades"`
}

type MetricImpact struct {
	Current string `json:"current"`
	Change  string `json:"change"`
}

type AQIImpact struct {
	Current int `json:"current"`
	Change  int `json:"change"`
}

type SimulationImpact struct {
	Temperature MetricImpact `json:"temperature"`
	AQI         AQIImpact    `json:"aqi"`
}

type SimulationBenefits struct {
	CO2Absorbed string `json:"co2_absorbed"`
	Investment  string `json:"investment"`
}

type SimulationResponse struct {
	Impact   SimulationImpact   `json:"impact"`
	Benefits SimulationBenefits `json:"benefits"`
}

// Error body for every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

type HealthResponse struct {
	Status       string `json:"status"`
	Platform     string `json:"platform"`
	GeocodeCache string `json:"geocode_cache"`
}
