// Package tape runs the batched quote pipeline behind the site's market tape
// and heatmap: sequential fetches with polite jittered pacing, a per-item
// fallback chain, and error-stub isolation so one bad symbol never sinks a run.
package tape

import (
	"context"
	"errors"
	"log"
	"math"
	"math/rand"
	"time"

	"MarketPress/internal/collector"
	"MarketPress/internal/model"
	"MarketPress/internal/parse"
)

// ErrAllFailed reports that not a single watch item produced a quote. It maps
// to its own exit code so operators can tell a systemic block from isolated
// symbol problems.
var ErrAllFailed = errors.New("all watch items failed")

// Prior exposes the previous run's artifact as a fallback source for a
// missing previous close.
type Prior interface {
	ItemBySymbol(symbol string) *model.Quote
}

// Pacing spaces requests out to stay under upstream rate limits.
type Pacing struct {
	BatchSize   int
	ItemDelay   time.Duration
	ItemJitter  time.Duration
	BatchDelay  time.Duration
	BatchJitter time.Duration
}

// Runner executes one tape run over an ordered watch list.
type Runner struct {
	Fetcher collector.QuoteFetcher
	Pacing  Pacing
	Prior   Prior                 // optional
	Sleep   func(d time.Duration) // test hook, defaults to time.Sleep
}

// Run processes items sequentially in fixed-size chunks. Every item yields a
// Quote: fully populated on success, an error stub otherwise. When nothing
// succeeds the quotes are still returned alongside ErrAllFailed.
func (r *Runner) Run(ctx context.Context, items []model.WatchItem) ([]model.Quote, error) {
	sleep := r.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	batchSize := r.Pacing.BatchSize
	if batchSize <= 0 {
		batchSize = len(items)
	}

	quotes := make([]model.Quote, 0, len(items))
	succeeded := 0
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return quotes, err
		}
		q := r.fetchOne(ctx, item)
		if q.Ok {
			succeeded++
		} else {
			log.Printf("[WARN] %s: %s", item.Symbol, q.Error)
		}
		quotes = append(quotes, q)

		if i == len(items)-1 {
			break
		}
		if (i+1)%batchSize == 0 {
			sleep(jittered(r.Pacing.BatchDelay, r.Pacing.BatchJitter))
		} else {
			sleep(jittered(r.Pacing.ItemDelay, r.Pacing.ItemJitter))
		}
	}

	if succeeded == 0 && len(items) > 0 {
		return quotes, ErrAllFailed
	}
	return quotes, nil
}

// fetchOne walks the fallback chain for a single watch item:
// daily history, then the single-quote endpoint when the history is empty or
// unusable, then the prior run's artifact to recover a comparison point.
func (r *Runner) fetchOne(ctx context.Context, item model.WatchItem) model.Quote {
	q := model.Quote{
		Symbol:      item.Symbol,
		DisplayName: item.DisplayName,
		Group:       item.Group,
	}

	body, err := r.Fetcher.DailyHistory(ctx, item.Symbol)
	if err == nil {
		d, perr := parse.DailyCSV(body)
		switch {
		case perr == nil && d.HasPrev:
			q.Date, q.Close = d.Date, d.Close
			q.PrevDate, q.PrevClose = d.PrevDate, d.PrevClose
			q.Ok = true
		case perr == nil:
			// Single data row: prefer a live quote for the bare current value.
			if date, close, qerr := r.bareQuote(ctx, item.Symbol); qerr == nil {
				q.Date, q.Close, q.Ok = date, close, true
			} else {
				log.Printf("[WARN] %s: quote fallback failed (%v), using lone daily row", item.Symbol, qerr)
				q.Date, q.Close, q.Ok = d.Date, d.Close, true
			}
		default:
			// Unusable history; the quote endpoint is the last resort.
			if date, close, qerr := r.bareQuote(ctx, item.Symbol); qerr == nil {
				q.Date, q.Close, q.Ok = date, close, true
			} else {
				return model.ErrorQuote(item, perr)
			}
		}
	} else {
		if date, close, qerr := r.bareQuote(ctx, item.Symbol); qerr == nil {
			q.Date, q.Close, q.Ok = date, close, true
		} else {
			return model.ErrorQuote(item, err)
		}
	}

	// Recover a previous close from the prior run's artifact, but never
	// compare a date against itself.
	if q.PrevClose == 0 && r.Prior != nil {
		if p := r.Prior.ItemBySymbol(item.Symbol); p != nil && p.Ok && p.Close > 0 && p.Date != q.Date {
			q.PrevDate, q.PrevClose = p.Date, p.Close
		}
	}

	if q.PrevClose != 0 && !math.IsNaN(q.PrevClose) && !math.IsInf(q.PrevClose, 0) {
		q.DeltaPct = (q.Close/q.PrevClose - 1) * 100
	}
	return q
}

func (r *Runner) bareQuote(ctx context.Context, symbol string) (date string, close float64, err error) {
	body, err := r.Fetcher.Quote(ctx, symbol)
	if err != nil {
		return "", 0, err
	}
	return parse.QuoteCSV(body)
}

// NewSnapshot stamps the run's quotes into the snapshot envelope.
func NewSnapshot(source string, quotes []model.Quote) *model.TapeSnapshot {
	return &model.TapeSnapshot{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Source:      source,
		Items:       quotes,
	}
}

func jittered(base, jitter time.Duration) time.Duration {
	if jitter <= 0 {
		return base
	}
	return base + time.Duration(rand.Int63n(int64(jitter)))
}
