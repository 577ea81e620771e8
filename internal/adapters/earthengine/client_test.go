package earthengine

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"healthycity-service/internal/domain"
	"healthycity-service/internal/ports"
)

func testFilter() ports.CollectionFilter {
	return ports.CollectionFilter{
		Dataset:     "COPERNICUS/S2_SR_HARMONIZED",
		Region:      domain.Region{Center: domain.Coordinates{Lat: 35.6762, Lon: 139.6503}, RadiusMeters: 5000},
		CloudProp:   "CLOUDY_PIXEL_PERCENTAGE",
		MaxCloudPct: 20,
		Start:       time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		Composite:   ports.CompositeMedian,
	}
}

func ndviDerivation() ports.Derivation {
	return ports.Derivation{
		Kind:  ports.DeriveNormalizedDifference,
		BandA: "B8",
		BandB: "B4",
		As:    "NDVI",
	}
}

func newReadyClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(Config{
		Project: "test-project",
		Token:   "test-token",
		BaseURL: srv.URL,
	})
	c.ready.Store(true)
	return c
}

func TestInitializeFlipsReadyFlag(t *testing.T) {
	c := newReadyClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/projects/test-project/algorithms" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("auth header = %q", got)
		}
		w.Write([]byte(`{}`))
	})
	c.ready.Store(false)

	if c.Ready() {
		t.Fatal("client ready before Initialize")
	}
	if err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if !c.Ready() {
		t.Fatal("client not ready after Initialize")
	}
}

func TestInitializeFailsWithoutProject(t *testing.T) {
	c := NewClient(Config{Token: "t"})
	if err := c.Initialize(context.Background()); err == nil {
		t.Fatal("expected error for missing project")
	}
	if c.Ready() {
		t.Fatal("client must stay not ready")
	}
}

func TestReduceRegionMeanNotReady(t *testing.T) {
	c := NewClient(Config{Project: "p", Token: "t"})

	_, err := c.ReduceRegionMean(context.Background(),
		ports.Collection{Filter: testFilter()}, ndviDerivation(),
		ports.ReduceSpec{ScaleMeters: 30, MaxPixels: 1e9})
	if !errors.Is(err, domain.ErrPlatformNotReady) {
		t.Fatalf("error = %v, want ErrPlatformNotReady", err)
	}
}

func TestReduceRegionMeanEncodesPipeline(t *testing.T) {
	var body string
	c := newReadyClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/projects/test-project/value:compute" {
			t.Errorf("path = %q", r.URL.Path)
		}
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.Write([]byte(`{"result":{"NDVI":0.37}}`))
	})

	got, err := c.ReduceRegionMean(context.Background(),
		ports.Collection{Filter: testFilter()}, ndviDerivation(),
		ports.ReduceSpec{ScaleMeters: 30, MaxPixels: 1e9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0.37 {
		t.Fatalf("got %v, want 0.37", got)
	}

	if !json.Valid([]byte(body)) {
		t.Fatalf("request body is not valid JSON: %s", body)
	}

	// The serialized graph must carry the dataset, every filter and the
	// reduction parameters.
	for _, want := range []string{
		"COPERNICUS/S2_SR_HARMONIZED",
		"CLOUDY_PIXEL_PERCENTAGE",
		"Filter.lessThan",
		"Filter.intersects",
		"Filter.dateRangeContains",
		"2023-01-01",
		"2023-12-31",
		"reduce.median",
		"Image.normalizedDifference",
		"Image.reduceRegion",
		"Reducer.mean",
		"Geometry.buffer",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("request body missing %q", want)
		}
	}
}

func TestReduceRegionMeanLatestComposite(t *testing.T) {
	var body string
	c := newReadyClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.Write([]byte(`{"result":{"LST_Celsius":28.5}}`))
	})

	f := testFilter()
	f.Dataset = "LANDSAT/LC09/C02/T1_L2"
	f.CloudProp = "CLOUD_COVER"
	f.Composite = ports.CompositeLatest

	got, err := c.ReduceRegionMean(context.Background(),
		ports.Collection{Filter: f},
		ports.Derivation{Kind: ports.DeriveLinearScale, Band: "ST_B10", Scale: 0.00341802, Offset: 149.0 - 273.15, As: "LST_Celsius"},
		ports.ReduceSpec{ScaleMeters: 30, MaxPixels: 1e9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 28.5 {
		t.Fatalf("got %v, want 28.5", got)
	}

	for _, want := range []string{"Collection.limit", "Collection.first", "system:time_start", "Image.multiply", "Image.add"} {
		if !strings.Contains(body, want) {
			t.Errorf("request body missing %q", want)
		}
	}
	if strings.Contains(body, "reduce.median") {
		t.Error("latest composite must not median-reduce the collection")
	}
}

func TestReduceRegionMeanNullResultIsNoData(t *testing.T) {
	c := newReadyClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"NDVI":null}}`))
	})

	_, err := c.ReduceRegionMean(context.Background(),
		ports.Collection{Filter: testFilter()}, ndviDerivation(),
		ports.ReduceSpec{ScaleMeters: 30, MaxPixels: 1e9})
	if !errors.Is(err, domain.ErrNoData) {
		t.Fatalf("error = %v, want ErrNoData", err)
	}
}

func TestReduceRegionMeanEmptyResultIsNoData(t *testing.T) {
	c := newReadyClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":null}`))
	})

	_, err := c.ReduceRegionMean(context.Background(),
		ports.Collection{Filter: testFilter()}, ndviDerivation(),
		ports.ReduceSpec{ScaleMeters: 30, MaxPixels: 1e9})
	if !errors.Is(err, domain.ErrNoData) {
		t.Fatalf("error = %v, want ErrNoData", err)
	}
}

func TestReduceRegionMeanPlatformError(t *testing.T) {
	c := newReadyClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	})

	_, err := c.ReduceRegionMean(context.Background(),
		ports.Collection{Filter: testFilter()}, ndviDerivation(),
		ports.ReduceSpec{ScaleMeters: 30, MaxPixels: 1e9})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, domain.ErrNoData) {
		t.Fatalf("platform error misclassified as no-data: %v", err)
	}

	var he *httpStatusError
	if !errors.As(err, &he) || he.Code != http.StatusTooManyRequests {
		t.Fatalf("error = %v, want httpStatusError 429", err)
	}
}
