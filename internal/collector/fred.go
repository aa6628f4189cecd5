package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"MarketPress/internal/httpx"
	"MarketPress/internal/model"

	"github.com/shopspring/decimal"
)

// FREDFetcher implements SeriesFetcher against the FRED observations API.
type FREDFetcher struct {
	BaseURL string
	APIKey  string
	Client  *httpx.Client
}

func NewFREDFetcher(apiKey string, client *httpx.Client) *FREDFetcher {
	return &FREDFetcher{BaseURL: "https://api.stlouisfed.org", APIKey: apiKey, Client: client}
}

func (f *FREDFetcher) Name() string { return "fred" }

type fredResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// Observations fetches seriesID from startDate forward. FRED marks missing
// values with "." — those rows are dropped here, along with anything else
// that does not parse as a decimal.
func (f *FREDFetcher) Observations(ctx context.Context, seriesID, startDate string) ([]model.Observation, error) {
	q := url.Values{}
	q.Set("series_id", seriesID)
	q.Set("api_key", f.APIKey)
	q.Set("file_type", "json")
	q.Set("sort_order", "asc")
	if startDate != "" {
		q.Set("observation_start", startDate)
	}
	u := fmt.Sprintf("%s/fred/series/observations?%s", f.BaseURL, q.Encode())

	body, err := f.Client.Get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fred %s: %w", seriesID, err)
	}
	var resp fredResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, fmt.Errorf("fred %s: decode: %w", seriesID, err)
	}

	obs := make([]model.Observation, 0, len(resp.Observations))
	for _, o := range resp.Observations {
		if o.Date == "" || o.Value == "." {
			continue
		}
		v, err := decimal.NewFromString(o.Value)
		if err != nil {
			continue
		}
		obs = append(obs, model.Observation{Date: o.Date, Value: v})
	}
	return obs, nil
}
