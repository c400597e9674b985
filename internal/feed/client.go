package feed

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/amar-sharma/gundiwalla-bullion-server/internal/config"
)

// RawTicker is a single record as returned by the upstream provider.
// Numeric fields arrive as strings; their units are provider-defined.
type RawTicker struct {
	Symbol string `json:"symb"`
	Buy    string `json:"buy"`
	Sell   string `json:"sell"`
	Change string `json:"chg"`
	Rate   string `json:"rate"`
}

// HTTPError is returned when the upstream responds with a non-2xx status.
type HTTPError struct {
	Status int
	URL    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("feed %s returned status %d", e.URL, e.Status)
}

// ClientInterface defines the interface for the upstream rate-feed client.
type ClientInterface interface {
	Fetch(ctx context.Context, url string) ([]RawTicker, error)
}

// Client fetches ticker arrays from the upstream rate providers.
// It implements ClientInterface.
type Client struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
}

// ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)

// The upstream only answers requests that look like they come from its
// own web frontend. These headers are part of the de-facto contract and
// carry no meaning beyond that.
var browserHeaders = map[string]string{
	"accept":             "application/json, text/plain, */*",
	"accept-language":    "en-US,en;q=0.9",
	"cache-control":      "no-cache",
	"pragma":             "no-cache",
	"sec-fetch-dest":     "empty",
	"sec-fetch-mode":     "cors",
	"sec-fetch-site":     "cross-site",
	"sec-ch-ua-mobile":   "?0",
	"sec-ch-ua-platform": `"macOS"`,
	"Referer":            "https://mcxlive.in/",
}

// NewClient creates a new feed client.
func NewClient(cfg *config.Feed, logger *zap.Logger) *Client {
	client := resty.New()

	// rate.Limit is requests per second.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &Client{
		client:  client,
		logger:  logger,
		limiter: limiter,
	}
}

// Fetch issues a single GET against url and decodes the ticker array.
// It never retries; the caller's polling cadence is the retry mechanism.
func (c *Client) Fetch(ctx context.Context, url string) ([]RawTicker, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	var tickers []RawTicker
	req := c.client.R().
		SetContext(ctx).
		SetHeaders(browserHeaders).
		SetResult(&tickers)

	c.logger.Debug("Fetching rates", zap.String("url", url))
	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("feed request to %s failed: %w", url, err)
	}
	if resp.IsError() {
		return nil, &HTTPError{Status: resp.StatusCode(), URL: url}
	}

	return tickers, nil
}
