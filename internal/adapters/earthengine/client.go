package earthengine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"healthycity-service/internal/domain"
	"healthycity-service/internal/platform/metrics"
	"healthycity-service/internal/platform/obs"
	"healthycity-service/internal/ports"
)

// Client implements ports.ImageryProvider against the Earth Engine REST API.
//
// Queries are assembled as lazy expression graphs and evaluated in a single
// value:compute call per request. Initialization is explicit: until
// Initialize succeeds, Ready reports false and every compute call fails with
// domain.ErrPlatformNotReady.
type Client struct {
	session *http.Client
	baseURL string
	project string
	token   string
	ready   atomic.Bool
}

type Config struct {
	Project string
	Token   string
	BaseURL string
	Timeout time.Duration
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://earthengine.googleapis.com"
	}
	if cfg.Timeout == 0 {
		// Compute calls can take minutes on cold collections.
		cfg.Timeout = 120 * time.Second
	}

	return &Client{
		session: &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		project: cfg.Project,
		token:   cfg.Token,
	}
}

// Initialize verifies configuration and platform reachability, then flips
// the ready flag. Run once at startup.
func (c *Client) Initialize(ctx context.Context) (err error) {
	defer obs.Time(ctx, "ee.Initialize")(&err)

	if strings.TrimSpace(c.project) == "" {
		return errors.New("initialize earth engine: project is not set")
	}
	if strings.TrimSpace(c.token) == "" {
		return errors.New("initialize earth engine: access token is not set")
	}

	url := fmt.Sprintf("%s/v1/projects/%s/algorithms?pageSize=1", c.baseURL, c.project)
	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("initialize earth engine: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("initialize earth engine: %w", err)
	}
	resp.Body.Close()

	c.ready.Store(true)
	return nil
}

func (c *Client) Ready() bool { return c.ready.Load() }

func (c *Client) ResolveRegion(center domain.Coordinates, radiusMeters float64) domain.Region {
	return domain.Region{Center: center, RadiusMeters: radiusMeters}
}

func (c *Client) SelectCollection(f ports.CollectionFilter) ports.Collection {
	return ports.Collection{Filter: f}
}

// ReduceRegionMean evaluates the full pipeline graph in one compute call and
// extracts the scalar keyed by the derivation's output band.
func (c *Client) ReduceRegionMean(
	ctx context.Context,
	col ports.Collection,
	d ports.Derivation,
	r ports.ReduceSpec,
) (_ float64, err error) {
	defer obs.Time(ctx, "ee.ReduceRegionMean")(&err)
	defer func() { metrics.ObservePlatformCall("value.compute", err) }()

	if !c.Ready() {
		return 0, domain.ErrPlatformNotReady
	}

	expr := buildReduceExpression(col, d, r)
	body, err := json.Marshal(map[string]any{"expression": expr})
	if err != nil {
		return 0, fmt.Errorf("compute value: encode expression: %w", err)
	}

	url := fmt.Sprintf("%s/v1/projects/%s/value:compute", c.baseURL, c.project)
	req, err := c.newRequest(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("compute value: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return 0, fmt.Errorf("compute value: %w", err)
	}
	defer resp.Body.Close()

	var decoded struct {
		Result map[string]*float64 `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("compute value: decode response: %w", err)
	}

	// A null result means the filters left nothing to reduce (e.g. no
	// cloud-free imagery in the window).
	v, ok := decoded.Result[d.As]
	if !ok || v == nil {
		return 0, fmt.Errorf("reduction for band %q yielded no value: %w", d.As, domain.ErrNoData)
	}

	return *v, nil
}
