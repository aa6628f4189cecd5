package collector

import (
	"context"
	"fmt"

	"MarketPress/internal/httpx"
)

// HTTPFeedFetcher implements FeedFetcher over the shared retrying client.
type HTTPFeedFetcher struct {
	Client *httpx.Client
}

func NewHTTPFeedFetcher(client *httpx.Client) *HTTPFeedFetcher {
	return &HTTPFeedFetcher{Client: client}
}

func (f *HTTPFeedFetcher) Feed(ctx context.Context, url string) (string, error) {
	body, err := f.Client.Get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetch feed: %w", err)
	}
	return body, nil
}
