package trends

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/valyala/fasthttp"

	"trends-desk/pkg/logger"
)

// HTTPClientConfig configures the gateway adapter.
type HTTPClientConfig struct {
	Endpoint   string
	APIKey     string
	Language   string
	Timeout    time.Duration
	Connection ConnectionConfig
}

// HTTPClient talks to a JSON trends gateway over fasthttp. It performs exactly
// one request per call; retry policy belongs to the caller.
type HTTPClient struct {
	endpoint string
	apiKey   string
	language string
	timeout  time.Duration
	client   *fasthttp.Client
	log      *logger.Logger

	totalRequests  uint64
	failedRequests uint64
}

var _ Client = (*HTTPClient)(nil)

// ClientStats are cumulative request counters.
type ClientStats struct {
	TotalRequests  uint64 `json:"total_requests"`
	FailedRequests uint64 `json:"failed_requests"`
}

// NewHTTPClient creates a new gateway client
func NewHTTPClient(config HTTPClientConfig) *HTTPClient {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		endpoint: strings.TrimRight(config.Endpoint, "/"),
		apiKey:   config.APIKey,
		language: config.Language,
		timeout:  timeout,
		client:   newFastHTTPClient(config.Connection),
		log:      logger.GetLogger().WithField("component", "trends_client"),
	}
}

// InterestOverTime fetches weekly interest for every keyword of p.
func (c *HTTPClient) InterestOverTime(ctx context.Context, p Payload) (*TimeSeries, error) {
	body, err := c.get(ctx, "/interest_over_time", p.Params())
	if err != nil {
		return nil, err
	}
	rs, err := ParseTable(body)
	if err != nil {
		return nil, err
	}
	return NewTimeSeries(rs)
}

// InterestByRegion fetches interest per region at opts.Resolution.
func (c *HTTPClient) InterestByRegion(ctx context.Context, p Payload, opts RegionOptions) (*ResultSet, error) {
	params := p.Params()
	resolution := opts.Resolution
	if resolution == "" {
		resolution = ResolutionCountry
	}
	params.Set("resolution", resolution)
	params.Set("inc_low_vol", strconv.FormatBool(opts.IncludeLowVolume))
	params.Set("inc_geo_code", strconv.FormatBool(opts.IncludeGeoCode))

	body, err := c.get(ctx, "/interest_by_region", params)
	if err != nil {
		return nil, err
	}
	return ParseTable(body)
}

// RelatedTopics fetches top and rising related topics per keyword.
func (c *HTTPClient) RelatedTopics(ctx context.Context, p Payload) (map[string]RelatedResult, error) {
	body, err := c.get(ctx, "/related_topics", p.Params())
	if err != nil {
		return nil, err
	}
	return ParseRelated(body)
}

// RelatedQueries fetches top and rising related queries per keyword.
func (c *HTTPClient) RelatedQueries(ctx context.Context, p Payload) (map[string]RelatedResult, error) {
	body, err := c.get(ctx, "/related_queries", p.Params())
	if err != nil {
		return nil, err
	}
	return ParseRelated(body)
}

// Suggestions fetches autocomplete suggestions for keyword.
func (c *HTTPClient) Suggestions(ctx context.Context, keyword string) (*ResultSet, error) {
	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("hl", c.language)
	body, err := c.get(ctx, "/suggestions", params)
	if err != nil {
		return nil, err
	}
	return ParseRecords(body)
}

// TrendingSearches fetches today's trending searches for region.
func (c *HTTPClient) TrendingSearches(ctx context.Context, region string) (*ResultSet, error) {
	return c.regionTable(ctx, "/trending_searches", region)
}

// RealtimeTrendingSearches fetches real-time trending stories for region.
func (c *HTTPClient) RealtimeTrendingSearches(ctx context.Context, region string) (*ResultSet, error) {
	return c.regionTable(ctx, "/realtime_trending_searches", region)
}

// Stats returns request counters since the client was created.
func (c *HTTPClient) Stats() ClientStats {
	return ClientStats{
		TotalRequests:  atomic.LoadUint64(&c.totalRequests),
		FailedRequests: atomic.LoadUint64(&c.failedRequests),
	}
}

// Close drops idle gateway connections.
func (c *HTTPClient) Close() {
	c.client.CloseIdleConnections()
}

func (c *HTTPClient) regionTable(ctx context.Context, path, region string) (*ResultSet, error) {
	params := url.Values{}
	params.Set("pn", region)
	params.Set("hl", c.language)
	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	return ParseTable(body)
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	atomic.AddUint64(&c.totalRequests, 1)
	start := time.Now()
	log := c.log.WithField("path", path)

	body, err := c.doGet(ctx, path, params)
	if err != nil {
		atomic.AddUint64(&c.failedRequests, 1)
		log.WithError(err).WithField("duration_ms", time.Since(start).Milliseconds()).Debug("Trends request failed")
		return nil, err
	}

	log.WithField("duration_ms", time.Since(start).Milliseconds()).Debug("Trends request completed")
	return body, nil
}

func (c *HTTPClient) doGet(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.endpoint == "" {
		return nil, fmt.Errorf("no trends endpoint configured")
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.endpoint + path + "?" + params.Encode())
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	if err := c.client.DoTimeout(req, resp, timeout); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode(), Body: string(resp.Body())}
	}

	// resp is released on return, so the body must be copied out.
	return append([]byte(nil), resp.Body()...), nil
}
