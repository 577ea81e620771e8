package services

import (
	"context"
	"fmt"

	"healthycity-service/internal/domain"
	"healthycity-service/internal/platform/obs"
	"healthycity-service/internal/ports"
)

const (
	sentinelDataset    = "COPERNICUS/S2_SR_HARMONIZED"
	sentinelCloudProp  = "CLOUDY_PIXEL_PERCENTAGE"
	sentinelDataSource = "Sentinel-2 Satellite"

	nirBand = "B8"
	redBand = "B4"
)

// GreenCoverService measures average vegetation density around a point.
//
// Pipeline: buffer the point into a region, select the Sentinel-2 surface
// reflectance collection filtered by region, cloud cover and the shared date
// window, median-composite it, compute NDVI from the near-infrared and red
// bands and average it over the region.
type GreenCoverService struct {
	Imagery ports.ImageryProvider
}

func (s *GreenCoverService) Measure(ctx context.Context, city string, center domain.Coordinates) (_ domain.GreenCoverReport, err error) {
	defer obs.Time(ctx, "greencover.Measure")(&err)

	if !s.Imagery.Ready() {
		return domain.GreenCoverReport{}, fmt.Errorf("measure green cover: %w", domain.ErrPlatformNotReady)
	}

	region := s.Imagery.ResolveRegion(center, regionRadiusMeters)

	col := s.Imagery.SelectCollection(ports.CollectionFilter{
		Dataset:     sentinelDataset,
		Region:      region,
		CloudProp:   sentinelCloudProp,
		MaxCloudPct: maxCloudPercent,
		Start:       windowStart,
		End:         windowEnd,
		Composite:   ports.CompositeMedian,
	})

	ndvi, err := s.Imagery.ReduceRegionMean(ctx, col, ports.Derivation{
		Kind:  ports.DeriveNormalizedDifference,
		BandA: nirBand,
		BandB: redBand,
		As:    "NDVI",
	}, ports.ReduceSpec{ScaleMeters: reduceScaleMeters, MaxPixels: reduceMaxPixels})
	if err != nil {
		return domain.GreenCoverReport{}, fmt.Errorf("measure green cover: %w", err)
	}

	return domain.GreenCoverReport{
		City:            city,
		Location:        center,
		NDVI:            ndvi,
		CoveragePercent: CoverageFromNDVI(ndvi),
		DataSource:      sentinelDataSource,
	}, nil
}

// CoverageFromNDVI rescales an NDVI in [-1, 1] to a 0-100 percentage.
func CoverageFromNDVI(ndvi float64) float64 {
	return (ndvi + 1) * 50
}
