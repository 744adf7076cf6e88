// Package fx looks up the USD→KRW exchange rate used to value USD holdings.
package fx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

const cacheKey = "rate-USD-KRW"

var ErrNoRate = errors.New("response has no KRW rate")

type frankfurterResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

type Client struct {
	httpClient *http.Client
	url        string
	fallback   decimal.Decimal
	cache      *cache.Cache
}

// NewClient returns a client that caches a fetched rate for ttl and answers
// with fallback whenever the endpoint cannot be used.
func NewClient(url string, fallback decimal.Decimal, ttl time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		url:        url,
		fallback:   fallback,
		cache:      cache.New(ttl, 2*ttl),
	}
}

// Fallback is the constant rate used when no live rate is available.
func (c *Client) Fallback() decimal.Decimal {
	return c.fallback
}

// USDKRW returns the cached or freshly fetched rate, or the fallback rate.
// It never fails.
func (c *Client) USDKRW(ctx context.Context) decimal.Decimal {
	if v, found := c.cache.Get(cacheKey); found {
		return v.(decimal.Decimal)
	}

	rate, err := c.Fetch(ctx)
	if err != nil {
		slog.Warn("using fallback exchange rate", "rate", c.fallback.String(), "error", err)
		return c.fallback
	}

	c.cache.Set(cacheKey, rate, cache.DefaultExpiration)

	return rate
}

// Fetch queries the rate endpoint without consulting the cache.
func (c *Client) Fetch(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("building rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("requesting rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate endpoint returned %s", resp.Status)
	}

	var body frankfurterResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("decoding rate response: %w", err)
	}

	rate, ok := body.Rates["KRW"]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, ErrNoRate
	}

	return rate, nil
}
