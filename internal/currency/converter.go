package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jobdeck/jobdeck/internal/apperr"
	"github.com/shopspring/decimal"
)

const cacheTTL = time.Hour

// Conversion is the result of a currency conversion. Rate is the applied
// from->to rate.
type Conversion struct {
	Converted float64 `json:"converted"`
	Rate      float64 `json:"rate"`
}

type cachedRates struct {
	rates     map[string]float64
	fetchedAt time.Time
}

// Converter converts amounts between currencies using live FX rates.
// Rates are cached per base currency for one hour; concurrent callers within
// the TTL window reuse the cached map.
type Converter struct {
	primaryURL  string
	fallbackURL string
	client      *http.Client

	mu    sync.Mutex
	cache map[string]cachedRates
	now   func() time.Time
}

func NewConverter(primaryURL, fallbackURL string) *Converter {
	return &Converter{
		primaryURL:  primaryURL,
		fallbackURL: fallbackURL,
		client:      &http.Client{Timeout: 10 * time.Second},
		cache:       make(map[string]cachedRates),
		now:         time.Now,
	}
}

// Convert returns nil when neither FX provider could supply a rate. Callers
// must treat a nil result as "conversion unavailable", not as an error.
func (c *Converter) Convert(ctx context.Context, amount float64, from, to string) *Conversion {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	if from == to {
		return &Conversion{Converted: amount, Rate: 1}
	}

	rates, err := c.ratesFor(ctx, from)
	if err != nil {
		log.Printf("💱 Conversion unavailable %s->%s: %v", from, to, err)
		return nil
	}

	rate, ok := rates[to]
	if !ok || rate <= 0 {
		log.Printf("💱 No %s rate in %s table", to, from)
		return nil
	}

	converted, _ := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(rate)).
		Round(decimalsFor(to)).
		Float64()

	return &Conversion{Converted: converted, Rate: rate}
}

// ratesFor returns the cached rates map for base, fetching on miss or expiry.
func (c *Converter) ratesFor(ctx context.Context, base string) (map[string]float64, error) {
	c.mu.Lock()
	if entry, ok := c.cache[base]; ok && c.now().Sub(entry.fetchedAt) < cacheTTL {
		c.mu.Unlock()
		return entry.rates, nil
	}
	c.mu.Unlock()

	rates, err := c.fetch(ctx, fmt.Sprintf("%s/%s", c.primaryURL, base))
	if err != nil {
		log.Printf("💱 Primary FX provider failed for %s: %v. Trying fallback...", base, err)
		rates, err = c.fetch(ctx, fmt.Sprintf("%s?from=%s", c.fallbackURL, base))
		if err != nil {
			return nil, &apperr.UpstreamError{Provider: "fx", Err: err}
		}
	}

	c.mu.Lock()
	c.cache[base] = cachedRates{rates: rates, fetchedAt: c.now()}
	c.mu.Unlock()
	return rates, nil
}

func (c *Converter) fetch(ctx context.Context, url string) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fx provider returned %d", resp.StatusCode)
	}

	var body struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("malformed fx response: %w", err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("fx response carried no rates")
	}
	return body.Rates, nil
}

// ClearCache drops all cached rate tables.
func (c *Converter) ClearCache() {
	c.mu.Lock()
	c.cache = make(map[string]cachedRates)
	c.mu.Unlock()
}

// zeroDecimal lists currencies that are not subdivided in practice.
var zeroDecimal = map[string]bool{
	"JPY": true,
	"KRW": true,
	"VND": true,
	"CLP": true,
	"ISK": true,
}

func decimalsFor(code string) int32 {
	if zeroDecimal[code] {
		return 0
	}
	return 2
}

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
	"KRW": "₩",
}

// Format renders an amount with its currency symbol and the currency's
// decimal convention, e.g. Format(1234.5, "USD") == "$1,234.50",
// Format(1234.5, "JPY") == "¥1,235".
func Format(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	digits := decimalsFor(code)

	d := decimal.NewFromFloat(amount).Round(digits)
	abs := d.Abs()

	rendered := humanize.Comma(abs.IntPart())
	if digits > 0 {
		frac := abs.Sub(decimal.NewFromInt(abs.IntPart()))
		rendered += frac.StringFixed(digits)[1:] // ".50"
	}
	if d.IsNegative() {
		rendered = "-" + rendered
	}

	if sym, ok := symbols[code]; ok {
		return sym + rendered
	}
	return rendered + " " + code
}
