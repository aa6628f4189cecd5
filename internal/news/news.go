package news

import (
	"context"
	"fmt"
	"time"

	"MarketPress/internal/collector"
	"MarketPress/internal/model"
	"MarketPress/internal/parse"
)

// Pipeline fetches one RSS feed and flattens it into the headlines snapshot.
type Pipeline struct {
	Fetcher   collector.FeedFetcher
	Extractor parse.ItemExtractor
	FeedURL   string
	Source    string
	MaxItems  int
}

func (p *Pipeline) Run(ctx context.Context) (*model.NewsSnapshot, error) {
	raw, err := p.Fetcher.Feed(ctx, p.FeedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", p.FeedURL, err)
	}
	items, err := p.Extractor.Extract(raw, p.MaxItems)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", p.FeedURL, err)
	}
	if items == nil {
		items = []model.NewsItem{}
	}
	return &model.NewsSnapshot{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Source:      p.Source,
		Feed:        p.FeedURL,
		Items:       items,
	}, nil
}
