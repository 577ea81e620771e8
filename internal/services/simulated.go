package services

import (
	"healthycity-service/internal/domain"
	"healthycity-service/internal/ports"
)

// SimulatedMetricsService fabricates plausible-looking figures for the
// dashboard pages that have no real data pipeline behind them. Values are
// bounded per field but carry no invariants across calls.
type SimulatedMetricsService struct {
	Values ports.ValueSource
}

func (s *SimulatedMetricsService) Overview(city string) domain.CityOverview {
	return domain.CityOverview{
		City:         city,
		Country:      "Global",
		TemperatureC: s.Values.FloatBetween(25.0, 32.0),
		GreenCover:   s.Values.IntBetween(40, 65),
		FloodRisk:    s.Values.IntBetween(5, 25),
		AQI:          s.Values.IntBetween(40, 90),
		RiskLevel:    s.Values.Pick("Low Risk", "Medium Risk"),
	}
}

func (s *SimulatedMetricsService) FloodRisk(city string, loc domain.Coordinates) domain.FloodRiskReport {
	return domain.FloodRiskReport{
		City:          city,
		Location:      loc,
		RiskScore:     s.Values.IntBetween(10, 40),
		HighRiskZones: s.Values.IntBetween(1, 10),
		AvgElevationM: s.Values.IntBetween(40, 60),
	}
}

func (s *SimulatedMetricsService) AirQuality(city string, loc domain.Coordinates) domain.AirQualityReport {
	return domain.AirQualityReport{
		City:             city,
		Location:         loc,
		AvgAQI:           s.Values.IntBetween(30, 150),
		UnhealthySensors: s.Values.IntBetween(0, 5),
		MainPollutant:    s.Values.Pick("PM2.5", "O3", "NO2"),
	}
}

func (s *SimulatedMetricsService) ReportCard(city string, loc domain.Coordinates) domain.ReportCard {
	return domain.ReportCard{
		City:         city,
		Location:     loc,
		OverallScore: s.Values.IntBetween(60, 85),
		Summary:      "This is a simulated summary.",
		Grades: map[string]string{
			"Air Quality": "C+",
			"Green Cover": "A-",
		},
	}
}

func (s *SimulatedMetricsService) Simulate(intervention, scale string) domain.SimulationOutcome {
	return domain.SimulationOutcome{
		Intervention: intervention,
		Scale:        scale,
		TempCurrent:  "25.1°C",
		TempChange:   "-2.5°C",
		AQICurrent:   83,
		AQIChange:    -20,
		CO2Absorbed:  "150 Tons/year",
		Investment:   "$500K",
	}
}
