package collector

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"MarketPress/internal/httpx"
)

// StooqFetcher implements QuoteFetcher against the Stooq CSV endpoints.
type StooqFetcher struct {
	BaseURL string
	Client  *httpx.Client
}

// NewStooqFetcher creates a Stooq fetcher sharing the given HTTP client.
func NewStooqFetcher(client *httpx.Client) *StooqFetcher {
	return &StooqFetcher{BaseURL: "https://stooq.com", Client: client}
}

func (f *StooqFetcher) Name() string { return "stooq" }

// DailyHistory fetches the full daily OHLC history for symbol.
func (f *StooqFetcher) DailyHistory(ctx context.Context, symbol string) (string, error) {
	u := fmt.Sprintf("%s/q/d/l/?s=%s&i=d", f.BaseURL, url.QueryEscape(stooqSymbol(symbol)))
	body, err := f.Client.Get(ctx, u)
	if err != nil {
		return "", fmt.Errorf("stooq daily %s: %w", symbol, err)
	}
	return body, nil
}

// Quote fetches the current-value quote row for symbol.
func (f *StooqFetcher) Quote(ctx context.Context, symbol string) (string, error) {
	u := fmt.Sprintf("%s/q/l/?s=%s&f=sd2t2c&h&e=csv", f.BaseURL, url.QueryEscape(stooqSymbol(symbol)))
	body, err := f.Client.Get(ctx, u)
	if err != nil {
		return "", fmt.Errorf("stooq quote %s: %w", symbol, err)
	}
	return body, nil
}

func stooqSymbol(symbol string) string {
	return strings.ToLower(strings.TrimSpace(symbol))
}
