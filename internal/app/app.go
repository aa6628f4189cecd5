// Package app wires the configured fetchers, pipelines and recorder into the
// runnable tasks the CLI and the cron daemon both invoke.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"MarketPress/internal/collector"
	"MarketPress/internal/config"
	"MarketPress/internal/httpx"
	"MarketPress/internal/model"
	"MarketPress/internal/news"
	"MarketPress/internal/parse"
	"MarketPress/internal/recorder"
	"MarketPress/internal/series"
	"MarketPress/internal/snapshot"
	"MarketPress/internal/tape"
)

// App holds the long-lived collaborators shared by all tasks.
type App struct {
	Cfg    *config.Config
	Quotes collector.QuoteFetcher
	Series collector.SeriesFetcher
	Feed   collector.FeedFetcher
	Rec    recorder.Recorder

	sleep func(time.Duration) // test hook
}

// New builds an App from config with the shared retrying HTTP client.
func New(cfg *config.Config, rec recorder.Recorder) *App {
	client := httpx.New(cfg.Timeout(), cfg.Proxy)
	client.Retry = httpx.RetryPolicy{
		MaxRetries: cfg.HTTP.MaxRetries,
		BaseDelay:  time.Duration(cfg.HTTP.BaseDelayMs) * time.Millisecond,
		MaxDelay:   time.Duration(cfg.HTTP.MaxDelaySec) * time.Second,
		Jitter:     300 * time.Millisecond,
	}
	return &App{
		Cfg:    cfg,
		Quotes: collector.NewStooqFetcher(client),
		Series: collector.NewFREDFetcher(cfg.FRED.APIKey, client),
		Feed:   collector.NewHTTPFeedFetcher(client),
		Rec:    rec,
	}
}

// RunTape refreshes the market tape snapshot.
func (a *App) RunTape(ctx context.Context) error {
	return a.runWatch(ctx, "tape", a.Cfg.Tape.Watch, a.Cfg.Tape.PacingConfig, a.Cfg.Tape.OutFile)
}

// RunHeatmap refreshes the sector heatmap snapshot with its own pacing.
func (a *App) RunHeatmap(ctx context.Context) error {
	return a.runWatch(ctx, "heatmap", a.Cfg.Heatmap.Watch, a.Cfg.Heatmap.PacingConfig, a.Cfg.Heatmap.OutFile)
}

func (a *App) runWatch(ctx context.Context, task string, watch []model.WatchItem, pacing config.PacingConfig, outFile string) error {
	if err := a.Cfg.ValidateFor(task); err != nil {
		return err
	}
	outPath := filepath.Join(a.Cfg.OutputDir, outFile)

	prior, err := snapshot.ReadTape(outPath)
	if err != nil {
		// A corrupt prior artifact only disables the prevClose fallback.
		log.Printf("[WARN] %s: prior snapshot unusable: %v", task, err)
	}

	runner := &tape.Runner{
		Fetcher: a.Quotes,
		Pacing:  pacingFor(pacing),
		Sleep:   a.sleep,
	}
	if prior != nil {
		runner.Prior = prior
	}

	started := time.Now()
	quotes, runErr := runner.Run(ctx, watch)
	if runErr != nil && !errors.Is(runErr, tape.ErrAllFailed) {
		return runErr
	}

	succeeded, failed := 0, 0
	for _, q := range quotes {
		if q.Ok {
			succeeded++
		} else {
			failed++
		}
		if err := a.Rec.RecordItem(&recorder.ItemRecord{
			Task: task, Symbol: q.Symbol, Ok: q.Ok, Error: q.Error,
		}); err != nil {
			log.Printf("[ERROR] record item: %v", err)
		}
	}

	// The snapshot is written even on a total failure so the artifact's
	// timestamp reflects the attempt; error stubs keep the diagnostics.
	snap := tape.NewSnapshot(a.Quotes.Name(), quotes)
	if err := snapshot.WriteJSON(outPath, snap); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	log.Printf("[INFO] %s: wrote %s (%d ok, %d failed)", task, outPath, succeeded, failed)

	a.recordRun(task, succeeded, failed, started, runErr)
	return runErr
}

// RunFRED syncs every configured economic series, isolating per-series
// failures the same way the tape isolates per-symbol ones.
func (a *App) RunFRED(ctx context.Context) error {
	if err := a.Cfg.ValidateFor("fred"); err != nil {
		return err
	}
	started := time.Now()
	succeeded, failed := 0, 0
	for _, spec := range a.Cfg.FRED.Series {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.syncSeries(ctx, spec); err != nil {
			log.Printf("[WARN] series %s: %v", spec.ID, err)
			failed++
			continue
		}
		succeeded++
	}
	var runErr error
	if succeeded == 0 && failed > 0 {
		runErr = tape.ErrAllFailed
	}
	a.recordRun("fred", succeeded, failed, started, runErr)
	return runErr
}

func (a *App) syncSeries(ctx context.Context, spec model.SeriesSpec) error {
	file := spec.File
	if file == "" {
		file = spec.ID
	}
	path := filepath.Join(a.Cfg.OutputDir, file+".csv")

	table, err := series.Load(path)
	if err != nil {
		return err
	}
	start := series.FetchWindow(table.LastDate(), a.Cfg.FRED.BackfillYears, a.Cfg.FRED.FallbackStart)

	obs, err := a.Series.Observations(ctx, spec.ID, start)
	if err != nil {
		return err
	}
	changed := table.Merge(obs)
	if err := snapshot.WriteFile(path, series.EncodeCSV(table)); err != nil {
		return err
	}
	log.Printf("[INFO] series %s: %d observations fetched, %d changed, %d total",
		spec.ID, len(obs), changed, table.Len())

	if err := a.Rec.RecordSeries(&recorder.SeriesRecord{
		SeriesID: spec.ID, Fetched: len(obs), Changed: changed,
	}); err != nil {
		log.Printf("[ERROR] record series: %v", err)
	}
	return nil
}

// RunRatio derives the configured ratio series from two persisted tables.
func (a *App) RunRatio() error {
	numPath := filepath.Join(a.Cfg.OutputDir, a.Cfg.Ratio.Numerator+".csv")
	denPath := filepath.Join(a.Cfg.OutputDir, a.Cfg.Ratio.Denominator+".csv")

	num, err := series.Load(numPath)
	if err != nil {
		return err
	}
	den, err := series.Load(denPath)
	if err != nil {
		return err
	}
	if num.Len() == 0 || den.Len() == 0 {
		return fmt.Errorf("ratio inputs missing: %s (%d rows), %s (%d rows)",
			numPath, num.Len(), denPath, den.Len())
	}

	out := series.Ratio(num, den)
	outPath := filepath.Join(a.Cfg.OutputDir, a.Cfg.Ratio.OutFile+".csv")
	if err := snapshot.WriteFile(outPath, series.EncodeCSV(out)); err != nil {
		return err
	}
	log.Printf("[INFO] ratio: wrote %s (%d rows)", outPath, out.Len())
	return nil
}

// RunNews refreshes the headlines snapshot.
func (a *App) RunNews(ctx context.Context) error {
	if err := a.Cfg.ValidateFor("news"); err != nil {
		return err
	}
	started := time.Now()
	p := &news.Pipeline{
		Fetcher:   a.Feed,
		Extractor: parse.RSSExtractor{},
		FeedURL:   a.Cfg.News.FeedURL,
		Source:    a.Cfg.News.Source,
		MaxItems:  a.Cfg.News.MaxItems,
	}
	snap, err := p.Run(ctx)
	if err != nil {
		a.recordRun("news", 0, 1, started, err)
		return err
	}
	outPath := filepath.Join(a.Cfg.OutputDir, a.Cfg.News.OutFile)
	if err := snapshot.WriteJSON(outPath, snap); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	log.Printf("[INFO] news: wrote %s (%d items)", outPath, len(snap.Items))
	a.recordRun("news", len(snap.Items), 0, started, nil)
	return nil
}

func pacingFor(p config.PacingConfig) tape.Pacing {
	return tape.Pacing{
		BatchSize:   p.BatchSize,
		ItemDelay:   time.Duration(p.ItemDelayMs) * time.Millisecond,
		ItemJitter:  time.Duration(p.ItemJitterMs) * time.Millisecond,
		BatchDelay:  time.Duration(p.BatchDelayMs) * time.Millisecond,
		BatchJitter: time.Duration(p.BatchJitterMs) * time.Millisecond,
	}
}

func (a *App) recordRun(task string, succeeded, failed int, started time.Time, runErr error) {
	note := ""
	if runErr != nil {
		note = runErr.Error()
	}
	if err := a.Rec.RecordRun(&recorder.RunRecord{
		Task:      task,
		Succeeded: succeeded,
		Failed:    failed,
		Duration:  time.Since(started),
		Note:      note,
	}); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}
