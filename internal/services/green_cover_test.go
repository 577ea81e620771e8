package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"healthycity-service/internal/adapters/earthengine"
	"healthycity-service/internal/domain"
	"healthycity-service/internal/ports"
)

func TestCoverageFromNDVI(t *testing.T) {
	cases := []struct {
		ndvi float64
		want float64
	}{
		{-1, 0},
		{0, 50},
		{1, 100},
		{0.42, 71},
	}

	for _, tc := range cases {
		got := CoverageFromNDVI(tc.ndvi)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("CoverageFromNDVI(%v) = %v, want %v", tc.ndvi, got, tc.want)
		}
	}
}

func TestGreenCoverMeasure(t *testing.T) {
	fake := &earthengine.FakeProvider{
		Scalars: map[string]float64{"COPERNICUS/S2_SR_HARMONIZED": 0.3},
	}
	svc := &GreenCoverService{Imagery: fake}

	center := domain.Coordinates{Lat: 35.6762, Lon: 139.6503}
	report, err := svc.Measure(context.Background(), "Tokyo", center)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.NDVI != 0.3 {
		t.Fatalf("NDVI = %v, want 0.3", report.NDVI)
	}
	if math.Abs(report.CoveragePercent-65) > 1e-9 {
		t.Fatalf("CoveragePercent = %v, want 65", report.CoveragePercent)
	}
	if report.DataSource != "Sentinel-2 Satellite" {
		t.Fatalf("DataSource = %q", report.DataSource)
	}

	// The acquisition query must carry the shared filter parameters.
	f := fake.LastFilter
	if f.CloudProp != "CLOUDY_PIXEL_PERCENTAGE" || f.MaxCloudPct != 20 {
		t.Fatalf("cloud filter = %q < %v, want CLOUDY_PIXEL_PERCENTAGE < 20", f.CloudProp, f.MaxCloudPct)
	}
	if f.Composite != ports.CompositeMedian {
		t.Fatalf("composite = %v, want median", f.Composite)
	}
	if f.Region.RadiusMeters != 5000 {
		t.Fatalf("region radius = %v, want 5000", f.Region.RadiusMeters)
	}
	if !f.Start.Equal(windowStart) || !f.End.Equal(windowEnd) {
		t.Fatalf("window = %v..%v, want shared acquisition window", f.Start, f.End)
	}

	d := fake.LastDerive
	if d.Kind != ports.DeriveNormalizedDifference || d.BandA != "B8" || d.BandB != "B4" {
		t.Fatalf("derivation = %+v, want normalized difference of B8/B4", d)
	}
	if fake.LastReduce.ScaleMeters != 30 {
		t.Fatalf("reduce scale = %d, want 30", fake.LastReduce.ScaleMeters)
	}
}

func TestGreenCoverMeasureNoImagery(t *testing.T) {
	fake := &earthengine.FakeProvider{Scalars: map[string]float64{}}
	svc := &GreenCoverService{Imagery: fake}

	_, err := svc.Measure(context.Background(), "Tokyo", domain.Coordinates{})
	if !errors.Is(err, domain.ErrNoData) {
		t.Fatalf("error = %v, want ErrNoData", err)
	}
}

func TestGreenCoverMeasurePlatformNotReady(t *testing.T) {
	fake := &earthengine.FakeProvider{NotReady: true}
	svc := &GreenCoverService{Imagery: fake}

	_, err := svc.Measure(context.Background(), "Tokyo", domain.Coordinates{})
	if !errors.Is(err, domain.ErrPlatformNotReady) {
		t.Fatalf("error = %v, want ErrPlatformNotReady", err)
	}
	if fake.Calls != 0 {
		t.Fatalf("reduce called %d times on a not-ready platform", fake.Calls)
	}
}
