package reference

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/logger"
)

// Currency is one entry in the selectable currency list.
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Seed catalog used until the first successful remote refresh.
var seedCurrencies = []Currency{
	{Code: "PKR", Name: "Pakistani rupee", Symbol: "₨"},
	{Code: "USD", Name: "United States dollar", Symbol: "$"},
	{Code: "EUR", Name: "Euro", Symbol: "€"},
	{Code: "GBP", Name: "British pound", Symbol: "£"},
	{Code: "INR", Name: "Indian rupee", Symbol: "₹"},
	{Code: "BDT", Name: "Bangladeshi taka", Symbol: "৳"},
	{Code: "LKR", Name: "Sri Lankan rupee", Symbol: "Rs"},
	{Code: "NPR", Name: "Nepalese rupee", Symbol: "₨"},
	{Code: "AED", Name: "United Arab Emirates dirham", Symbol: "د.إ"},
	{Code: "SAR", Name: "Saudi riyal", Symbol: "﷼"},
	{Code: "QAR", Name: "Qatari riyal", Symbol: "﷼"},
	{Code: "KWD", Name: "Kuwaiti dinar", Symbol: "د.ك"},
	{Code: "CAD", Name: "Canadian dollar", Symbol: "$"},
	{Code: "AUD", Name: "Australian dollar", Symbol: "$"},
	{Code: "JPY", Name: "Japanese yen", Symbol: "¥"},
	{Code: "CNY", Name: "Chinese yuan", Symbol: "¥"},
	{Code: "SGD", Name: "Singapore dollar", Symbol: "$"},
	{Code: "MYR", Name: "Malaysian ringgit", Symbol: "RM"},
	{Code: "TRY", Name: "Turkish lira", Symbol: "₺"},
	{Code: "ZAR", Name: "South African rand", Symbol: "R"},
}

// CurrencyCatalog holds the currency list and refreshes it from a remote
// country dataset once the configured TTL has elapsed. Safe for concurrent
// use.
type CurrencyCatalog struct {
	mu          sync.RWMutex
	currencies  []Currency
	refreshedAt time.Time

	url    string
	ttl    time.Duration
	client *http.Client
}

// NewCurrencyCatalog builds a catalog seeded with the built-in list.
// A zero ttl disables remote refreshes.
func NewCurrencyCatalog(url string, ttl time.Duration) *CurrencyCatalog {
	seed := make([]Currency, len(seedCurrencies))
	copy(seed, seedCurrencies)
	return &CurrencyCatalog{
		currencies: seed,
		url:        url,
		ttl:        ttl,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// All returns the catalog sorted by code.
func (c *CurrencyCatalog) All() []Currency {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Currency, len(c.currencies))
	copy(out, c.currencies)
	return out
}

// ByCode looks up a currency by its ISO 4217 code.
func (c *CurrencyCatalog) ByCode(code string) *Currency {
	code = strings.ToUpper(code)
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.currencies {
		if c.currencies[i].Code == code {
			cur := c.currencies[i]
			return &cur
		}
	}
	return nil
}

// RefreshIfStale refreshes the catalog when the TTL has elapsed since the
// last successful refresh. Fetch failures leave the current list in place.
func (c *CurrencyCatalog) RefreshIfStale(ctx context.Context) error {
	c.mu.RLock()
	stale := c.ttl > 0 && time.Since(c.refreshedAt) >= c.ttl
	c.mu.RUnlock()
	if !stale {
		return nil
	}
	return c.Refresh(ctx)
}

// Refresh fetches the remote country dataset and replaces the catalog with
// the currencies it contains.
func (c *CurrencyCatalog) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return fmt.Errorf("building currency request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching currencies: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching currencies: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading currency response: %w", err)
	}
	currencies, err := parseCountryCurrencies(body)
	if err != nil {
		return err
	}
	if len(currencies) == 0 {
		return fmt.Errorf("currency response contained no currencies")
	}

	c.mu.Lock()
	c.currencies = currencies
	c.refreshedAt = time.Now()
	c.mu.Unlock()

	logger.Debug("currency catalog refreshed", "count", len(currencies))
	return nil
}

// parseCountryCurrencies flattens the restcountries response, an array of
// countries each carrying a currencies map keyed by code, into a deduplicated
// list sorted by code.
func parseCountryCurrencies(body []byte) ([]Currency, error) {
	var countries []struct {
		Currencies map[string]struct {
			Name   string `json:"name"`
			Symbol string `json:"symbol"`
		} `json:"currencies"`
	}
	if err := json.Unmarshal(body, &countries); err != nil {
		return nil, fmt.Errorf("decoding currency response: %w", err)
	}

	byCode := make(map[string]Currency)
	for _, country := range countries {
		for code, cur := range country.Currencies {
			code = strings.ToUpper(code)
			if _, ok := byCode[code]; ok {
				continue
			}
			symbol := cur.Symbol
			if symbol == "" {
				symbol = code
			}
			byCode[code] = Currency{Code: code, Name: cur.Name, Symbol: symbol}
		}
	}

	out := make([]Currency, 0, len(byCode))
	for _, cur := range byCode {
		out = append(out, cur)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
