package ports

import (
	"context"
	"time"

	"healthycity-service/internal/domain"
)

// Composite selects how a filtered collection collapses to one image.
type Composite int

const (
	// Per-pixel median across every image that passed the filters.
	CompositeMedian Composite = iota
	// The single most recent image that passed the filters.
	CompositeLatest
)

// CollectionFilter constrains an image collection by region, cloud cover and
// acquisition date. It mirrors the platform's filter chain but stays inert
// until reduced.
type CollectionFilter struct {
	Dataset     string
	Region      domain.Region
	CloudProp   string
	MaxCloudPct float64
	Start       time.Time
	End         time.Time
	Composite   Composite
}

// Collection is a lazy descriptor of a filtered image collection.
// Selecting one performs no platform I/O.
type Collection struct {
	Filter CollectionFilter
}

type DerivationKind int

const (
	// (A - B) / (A + B) over two spectral bands.
	DeriveNormalizedDifference DerivationKind = iota
	// Band*Scale + Offset over a single band.
	DeriveLinearScale
)

// Derivation describes the per-pixel band math applied before reduction.
type Derivation struct {
	Kind DerivationKind

	// Normalized-difference inputs.
	BandA string
	BandB string

	// Linear-scale inputs.
	Band   string
	Scale  float64
	Offset float64

	// Band name the reduction result is keyed by.
	As string
}

// ReduceSpec fixes the spatial sampling of a region reduction.
type ReduceSpec struct {
	ScaleMeters int
	MaxPixels   int64
}

// ImageryProvider is the narrow surface of the geospatial analytics platform:
// resolve a region, select a filtered collection, reduce a derived band to a
// scalar. Pipelines are written against this so they can run on a fake.
type ImageryProvider interface {
	// Reports whether platform initialization succeeded. Callers must treat
	// a false value as a precondition failure, not retry.
	Ready() bool

	// Build the circular area of interest around a center point. Pure.
	ResolveRegion(center domain.Coordinates, radiusMeters float64) domain.Region

	// Describe a filtered collection. Lazy; no platform I/O.
	SelectCollection(f CollectionFilter) Collection

	// Composite the collection, apply the derivation and spatially average
	// the derived band over the collection's region. Returns
	// domain.ErrNoData when the reduction yields no value.
	ReduceRegionMean(ctx context.Context, col Collection, d Derivation, r ReduceSpec) (float64, error)
}
