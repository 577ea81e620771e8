package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"healthycity-service/internal/api/dto"
	"healthycity-service/internal/domain"
	"healthycity-service/internal/services"
)

// CityHandler serves every /city/{city}/... endpoint. Real-data endpoints go
// through the imagery pipelines; the rest are populated by the simulated
// metrics provider.
type CityHandler struct {
	Resolver   *services.CityResolver
	GreenCover *services.GreenCoverService
	Heat       *services.HeatService
	Sim        *services.SimulatedMetricsService
}

func cityParam(r *http.Request) string {
	return strings.TrimSpace(mux.Vars(r)["city"])
}

func location(c domain.Coordinates) dto.Location {
	return dto.Location{Lat: c.Lat, Lon: c.Lon}
}

// GET /city/{city}/greencover
func (h *CityHandler) GetGreenCover(w http.ResponseWriter, r *http.Request) {
	city := cityParam(r)

	loc, err := h.Resolver.Resolve(r.Context(), city)
	if err != nil {
		writeResolveError(w, r, city, err)
		return
	}

	report, err := h.GreenCover.Measure(r.Context(), titleCaser.String(city), loc)
	if err != nil {
		writePipelineError(w, r, err, "Could not calculate NDVI for this area.")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.GreenCoverResponse{
		City:        report.City,
		Location:    location(report.Location),
		AvgCoverage: fmt.Sprintf("%.2f%%", report.CoveragePercent),
		AvgNDVI:     fmt.Sprintf("%.4f", report.NDVI),
		DataSource:  report.DataSource,
	})
}

// GET /city/{city}/heatmap
func (h *CityHandler) GetHeatMap(w http.ResponseWriter, r *http.Request) {
	city := cityParam(r)

	loc, err := h.Resolver.Resolve(r.Context(), city)
	if err != nil {
		writeResolveError(w, r, city, err)
		return
	}

	report, err := h.Heat.Measure(r.Context(), titleCaser.String(city), loc)
	if err != nil {
		writePipelineError(w, r, err, "No valid satellite imagery found for the date range.")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.HeatMapResponse{
		City:       report.City,
		Location:   location(report.Location),
		AvgTemp:    fmt.Sprintf("%.2f°C", report.AvgTempCelsius),
		DataSource: report.DataSource,
	})
}

// GET /city/{city}/floodrisk
func (h *CityHandler) GetFloodRisk(w http.ResponseWriter, r *http.Request) {
	city := cityParam(r)

	loc, err := h.Resolver.Resolve(r.Context(), city)
	if err != nil {
		writeResolveError(w, r, city, err)
		return
	}

	report := h.Sim.FloodRisk(titleCaser.String(city), loc)

	writeJSON(w, r, http.StatusOK, dto.FloodRiskResponse{
		City:          report.City,
		Location:      location(report.Location),
		RiskScore:     fmt.Sprintf("%d/100", report.RiskScore),
		HighRiskZones: report.HighRiskZones,
		AvgElevation:  fmt.Sprintf("%dm", report.AvgElevationM),
	})
}

// GET /city/{city}/airquality
func (h *CityHandler) GetAirQuality(w http.ResponseWriter, r *http.Request) {
	city := cityParam(r)

	loc, err := h.Resolver.Resolve(r.Context(), city)
	if err != nil {
		writeResolveError(w, r, city, err)
		return
	}

	report := h.Sim.AirQuality(titleCaser.String(city), loc)

	writeJSON(w, r, http.StatusOK, dto.AirQualityResponse{
		City:             report.City,
		Location:         location(report.Location),
		AvgAQI:           report.AvgAQI,
		UnhealthySensors: report.UnhealthySensors,
		MainPollutant:    report.MainPollutant,
	})
}

// GET /city/{city}/overview
// Resolution still runs so an unknown city fails the same way everywhere,
// even though the payload omits coordinates.
func (h *CityHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	city := cityParam(r)

	if _, err := h.Resolver.Resolve(r.Context(), city); err != nil {
		writeResolveError(w, r, city, err)
		return
	}

	ov := h.Sim.Overview(titleCaser.String(city))

	writeJSON(w, r, http.StatusOK, dto.OverviewResponse{
		City:        ov.City,
		Country:     ov.Country,
		Temperature: fmt.Sprintf("%.1f°C", ov.TemperatureC),
		GreenCover:  fmt.Sprintf("%d%%", ov.GreenCover),
		FloodRisk:   fmt.Sprintf("%d/100", ov.FloodRisk),
		AQI:         ov.AQI,
		RiskLevel:   ov.RiskLevel,
	})
}

// GET /city/{city}/reportcard
func (h *CityHandler) GetReportCard(w http.ResponseWriter, r *http.Request) {
	city := cityParam(r)

	loc, err := h.Resolver.Resolve(r.Context(), city)
	if err != nil {
		writeResolveError(w, r, city, err)
		return
	}

	card := h.Sim.ReportCard(titleCaser.String(city), loc)

	grades := make(map[string]dto.Grade, len(card.Grades))
	for k, v := range card.Grades {
		grades[k] = dto.Grade{Grade: v}
	}

	writeJSON(w, r, http.StatusOK, dto.ReportCardResponse{
		City:         card.City,
		Location:     location(card.Location),
		OverallScore: card.OverallScore,
		Summary:      card.Summary,
		Grades:       grades,
	})
}

// GET /city/{city}/simulate?intervention=...&scale=...
func (h *CityHandler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	intervention := strings.TrimSpace(r.URL.Query().Get("intervention"))
	scale := strings.TrimSpace(r.URL.Query().Get("scale"))
	if intervention == "" || scale == "" {
		writeError(w, r, http.StatusBadRequest, "intervention and scale query parameters are required")
		return
	}

	out := h.Sim.Simulate(intervention, scale)

	writeJSON(w, r, http.StatusOK, dto.SimulationResponse{
		Impact: dto.SimulationImpact{
			Temperature: dto.MetricImpact{Current: out.TempCurrent, Change: out.TempChange},
			AQI:         dto.AQIImpact{Current: out.AQICurrent, Change: out.AQIChange},
		},
		Benefits: dto.SimulationBenefits{
			CO2Absorbed: out.CO2Absorbed,
			Investment:  out.Investment,
		},
	})
}
