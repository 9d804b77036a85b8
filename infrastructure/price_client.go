package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// priceCacheTTL is how long a fetched quote stays servable after the
// upstream becomes unreachable.
const priceCacheTTL = 15 * time.Minute

// Quote is one price lookup result.
type Quote struct {
	Name      string
	Price     float64
	Currency  string
	FetchedAt time.Time
	Cached    bool
}

// PriceClient looks up item quotes from an external price API and serves the
// last good quote when the upstream is down. An empty base URL disables
// lookups entirely.
type PriceClient struct {
	http    *http.Client
	baseURL string

	mu    sync.Mutex
	cache map[string]Quote
}

// NewPriceClient creates a price client; baseURL may be empty.
func NewPriceClient(baseURL string) *PriceClient {
	return &PriceClient{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		cache:   make(map[string]Quote),
	}
}

// Enabled reports whether a price API is configured.
func (c *PriceClient) Enabled() bool {
	return c.baseURL != ""
}

type priceResponse struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

// Lookup fetches the current quote for an item name. On upstream failure it
// returns the cached quote if one is fresh enough, marked Cached.
func (c *PriceClient) Lookup(ctx context.Context, name string) (*Quote, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("price lookups are not configured")
	}
	key := strings.ToLower(strings.TrimSpace(name))

	quote, err := c.fetch(ctx, key)
	if err == nil {
		c.mu.Lock()
		c.cache[key] = *quote
		c.mu.Unlock()
		return quote, nil
	}

	c.mu.Lock()
	cached, ok := c.cache[key]
	c.mu.Unlock()
	if ok && time.Since(cached.FetchedAt) < priceCacheTTL {
		log.WithFields(log.Fields{
			"item":  name,
			"error": err,
		}).Warn("Price API unreachable, serving cached quote")
		cached.Cached = true
		return &cached, nil
	}
	return nil, err
}

func (c *PriceClient) fetch(ctx context.Context, key string) (*Quote, error) {
	u := fmt.Sprintf("%s/v1/price?item=%s", c.baseURL, url.QueryEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("price request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price API returned status %d", resp.StatusCode)
	}
	var body priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode price response: %w", err)
	}
	return &Quote{
		Name:      body.Name,
		Price:     body.Price,
		Currency:  body.Currency,
		FetchedAt: time.Now(),
	}, nil
}
