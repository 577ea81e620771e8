package earthengine

import (
	"context"

	"healthycity-service/internal/domain"
	"healthycity-service/internal/ports"
)

// FakeProvider substitutes the real platform in tests: it returns a fixed
// scalar per dataset and records the last query it saw.
type FakeProvider struct {
	// Scalar returned per dataset id. A missing entry fails with Err.
	Scalars map[string]float64
	// Error returned for datasets absent from Scalars. Defaults to
	// domain.ErrNoData, matching an empty reduction.
	Err error

	NotReady bool

	LastFilter ports.CollectionFilter
	LastDerive ports.Derivation
	LastReduce ports.ReduceSpec
	Calls      int
}

func (f *FakeProvider) Ready() bool { return !f.NotReady }

func (f *FakeProvider) ResolveRegion(center domain.Coordinates, radiusMeters float64) domain.Region {
	return domain.Region{Center: center, RadiusMeters: radiusMeters}
}

func (f *FakeProvider) SelectCollection(filter ports.CollectionFilter) ports.Collection {
	return ports.Collection{Filter: filter}
}

func (f *FakeProvider) ReduceRegionMean(
	ctx context.Context,
	col ports.Collection,
	d ports.Derivation,
	r ports.ReduceSpec,
) (float64, error) {
	f.Calls++
	f.LastFilter = col.Filter
	f.LastDerive = d
	f.LastReduce = r

	v, ok := f.Scalars[col.Filter.Dataset]
	if !ok {
		if f.Err != nil {
			return 0, f.Err
		}
		return 0, domain.ErrNoData
	}

	return v, nil
}
