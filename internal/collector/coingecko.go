package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// CoinGecko implements QuoteFetcher using the public simple/price endpoint.
type CoinGecko struct {
	BaseURL string
	Client  *http.Client
}

// NewCoinGecko creates a CoinGecko fetcher with optional proxy support.
func NewCoinGecko(baseURL, proxyURL string, timeout time.Duration) *CoinGecko {
	return &CoinGecko{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  newHTTPClient(proxyURL, timeout),
	}
}

func (g *CoinGecko) Name() string { return "coingecko" }

// FetchRates returns the BTC price for each requested fiat code in one batched
// request. Codes missing from the response are missing from the map.
func (g *CoinGecko) FetchRates(ctx context.Context, codes []string) (map[string]decimal.Decimal, error) {
	if len(codes) == 0 {
		return map[string]decimal.Decimal{}, nil
	}
	lower := make([]string, len(codes))
	for i, c := range codes {
		lower[i] = strings.ToLower(c)
	}
	u := fmt.Sprintf("%s/api/v3/simple/price?ids=bitcoin&vs_currencies=%s", g.BaseURL, strings.Join(lower, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coingecko fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("coingecko read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko: status %d, body: %s", resp.StatusCode, string(body))
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("coingecko decode: invalid json")
	}

	btc := gjson.GetBytes(body, "bitcoin")
	if !btc.IsObject() {
		return nil, fmt.Errorf("coingecko: no bitcoin quote in response")
	}

	rates := make(map[string]decimal.Decimal, len(codes))
	for _, code := range lower {
		v := btc.Get(code)
		if !v.Exists() || v.Type != gjson.Number {
			continue
		}
		rate, err := decimal.NewFromString(v.Raw)
		if err != nil {
			rate = decimal.NewFromFloat(v.Float())
		}
		rates[strings.ToUpper(code)] = rate
	}
	return rates, nil
}
