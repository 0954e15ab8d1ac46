// Package currency converts amounts between currencies using a public
// exchange rate API, with cached rates and offline fallbacks so that
// conversion always yields a usable number.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"

	"travella-service/pkg/logger"
)

const cacheSize = 128

// Approximate rates used when the rate API is unreachable. Reverse
// pairs are derived by inversion.
var fallbackRates = map[string]float64{
	"EUR_USD": 1.10,
	"GBP_USD": 1.25,
	"JPY_USD": 0.0067,
	"AUD_USD": 0.65,
	"CAD_USD": 0.75,
	"CHF_USD": 1.05,
	"CNY_USD": 0.14,
	"INR_USD": 0.012,
	"KRW_USD": 0.00076,
	"SGD_USD": 0.74,
}

var supportedCurrencies = []string{
	"USD", "EUR", "GBP", "JPY", "AUD", "CAD",
	"CHF", "CNY", "INR", "KRW", "SGD", "HKD",
	"NZD", "SEK", "NOK", "DKK", "PLN", "CZK",
	"HUF", "RUB", "BRL", "MXN", "ZAR", "TRY",
}

type cachedRate struct {
	rate      float64
	fetchedAt time.Time
}

// Converter fetches and caches exchange rates. Conversion never fails;
// a stale or approximate rate is returned when the API is unavailable.
type Converter struct {
	baseURL   string
	ttl       time.Duration
	client    *http.Client
	cache     *lru.Cache[string, cachedRate]
	logger    logger.Logger
	fallbacks prometheus.Counter
	now       func() time.Time
}

// NewConverter creates a converter backed by the given rate API.
// fallbacks may be nil when fallback counting is not wanted.
func NewConverter(baseURL string, ttl time.Duration, log logger.Logger, fallbacks prometheus.Counter) *Converter {
	cache, _ := lru.New[string, cachedRate](cacheSize)
	return &Converter{
		baseURL:   strings.TrimRight(baseURL, "/"),
		ttl:       ttl,
		client:    &http.Client{Timeout: 10 * time.Second},
		cache:     cache,
		logger:    log,
		fallbacks: fallbacks,
		now:       time.Now,
	}
}

// GetRate returns the exchange rate from one currency to another
func (c *Converter) GetRate(ctx context.Context, from, to string) float64 {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == to || from == "" || to == "" {
		return 1.0
	}

	key := from + "_" + to
	if entry, ok := c.cache.Get(key); ok {
		if c.now().Sub(entry.fetchedAt) < c.ttl {
			return entry.rate
		}
	}

	rate, err := c.fetchRate(ctx, from, to)
	if err != nil {
		c.logger.Warn("Rate fetch failed, using offline rate",
			"from", from,
			"to", to,
			"error", err)
		if c.fallbacks != nil {
			c.fallbacks.Inc()
		}
		return c.fallbackRate(from, to)
	}

	c.cache.Add(key, cachedRate{rate: rate, fetchedAt: c.now()})
	return rate
}

// Convert converts an amount between currencies
func (c *Converter) Convert(ctx context.Context, amount float64, from, to string) float64 {
	return amount * c.GetRate(ctx, from, to)
}

// SupportedCurrencies returns the currency codes the offline table covers
func (c *Converter) SupportedCurrencies() []string {
	out := make([]string, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

func (c *Converter) fetchRate(ctx context.Context, from, to string) (float64, error) {
	url := fmt.Sprintf("%s/latest?amount=1&from=%s&to=%s", c.baseURL, from, to)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, err
	}

	rate, ok := payload.Rates[to]
	if !ok {
		return 0, fmt.Errorf("rate API response missing %s", to)
	}
	return rate, nil
}

func (c *Converter) fallbackRate(from, to string) float64 {
	if rate, ok := fallbackRates[from+"_"+to]; ok {
		return rate
	}
	if rate, ok := fallbackRates[to+"_"+from]; ok && rate != 0 {
		return 1 / rate
	}
	return 1.0
}
