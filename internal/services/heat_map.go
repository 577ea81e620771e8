package services

import (
	"context"
	"fmt"

	"healthycity-service/internal/domain"
	"healthycity-service/internal/platform/obs"
	"healthycity-service/internal/ports"
)

const (
	landsatDataset    = "LANDSAT/LC09/C02/T1_L2"
	landsatCloudProp  = "CLOUD_COVER"
	landsatDataSource = "Landsat 9 Satellite"

	thermalBand = "ST_B10"

	// Landsat Collection 2 Level-2 surface temperature scaling.
	thermalScale  = 0.00341802
	thermalOffset = 149.0
	kelvinZeroC   = 273.15
)

// HeatService measures average land-surface temperature around a point.
//
// Pipeline: buffer the point into a region, select the Landsat 9 thermal
// collection filtered by region, cloud cover and the shared date window, take
// the single most recent image, convert the thermal band to Celsius and
// average it over the region.
type HeatService struct {
	Imagery ports.ImageryProvider
}

func (s *HeatService) Measure(ctx context.Context, city string, center domain.Coordinates) (_ domain.HeatReport, err error) {
	defer obs.Time(ctx, "heatmap.Measure")(&err)

	if !s.Imagery.Ready() {
		return domain.HeatReport{}, fmt.Errorf("measure heat: %w", domain.ErrPlatformNotReady)
	}

	region := s.Imagery.ResolveRegion(center, regionRadiusMeters)

	col := s.Imagery.SelectCollection(ports.CollectionFilter{
		Dataset:     landsatDataset,
		Region:      region,
		CloudProp:   landsatCloudProp,
		MaxCloudPct: maxCloudPercent,
		Start:       windowStart,
		End:         windowEnd,
		Composite:   ports.CompositeLatest,
	})

	avgTemp, err := s.Imagery.ReduceRegionMean(ctx, col, ports.Derivation{
		Kind:   ports.DeriveLinearScale,
		Band:   thermalBand,
		Scale:  thermalScale,
		Offset: thermalOffset - kelvinZeroC,
		As:     "LST_Celsius",
	}, ports.ReduceSpec{ScaleMeters: reduceScaleMeters, MaxPixels: reduceMaxPixels})
	if err != nil {
		return domain.HeatReport{}, fmt.Errorf("measure heat: %w", err)
	}

	return domain.HeatReport{
		City:           city,
		Location:       center,
		AvgTempCelsius: avgTemp,
		DataSource:     landsatDataSource,
	}, nil
}

// RawToCelsius converts a raw ST_B10 digital number to degrees Celsius using
// the fixed radiance-to-Kelvin scaling above.
func RawToCelsius(raw float64) float64 {
	return raw*thermalScale + thermalOffset - kelvinZeroC
}
