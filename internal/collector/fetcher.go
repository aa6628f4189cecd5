package collector

import (
	"context"

	"MarketPress/internal/model"
)

// QuoteFetcher retrieves raw quote CSVs for one symbol.
type QuoteFetcher interface {
	// DailyHistory returns a Date,Open,High,Low,Close,Volume CSV.
	DailyHistory(ctx context.Context, symbol string) (string, error)
	// Quote returns a one-row Symbol,Date,Time,Close CSV.
	Quote(ctx context.Context, symbol string) (string, error)
	Name() string
}

// SeriesFetcher retrieves economic series observations from startDate on.
type SeriesFetcher interface {
	Observations(ctx context.Context, seriesID, startDate string) ([]model.Observation, error)
	Name() string
}

// FeedFetcher retrieves a raw RSS/XML document.
type FeedFetcher interface {
	Feed(ctx context.Context, url string) (string, error)
}
